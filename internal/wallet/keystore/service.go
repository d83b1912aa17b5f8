package keystore

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/pkg/errors"
)

// Service provides keystore encryption and decryption functionality
type Service interface {
	// CreateKeystore encrypts a mnemonic and writes it to the keystore file
	CreateKeystore(ctx context.Context, mnemonic string, password string) (*Keystore, error)

	// DecryptMnemonic decrypts mnemonic from keystore
	DecryptMnemonic(ctx context.Context, keystore *Keystore, password string) (string, error)

	// GetKeystore reads the keystore file
	GetKeystore(ctx context.Context) (*Keystore, error)

	// Exists checks if keystore exists
	Exists(ctx context.Context) (bool, error)
}

type service struct {
	path   string
	params *ScryptParams
}

// Option configures the keystore service
type Option func(*service)

// WithScryptParams overrides the KDF parameters used for new keystores
func WithScryptParams(params *ScryptParams) Option {
	return func(s *service) {
		s.params = params
	}
}

// NewService creates a new KeystoreService backed by the file at path
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(path string, opts ...Option) (Service, error) {
	if path == "" {
		return nil, errors.New("keystore path is empty")
	}

	s := &service{
		path:   path,
		params: DefaultScryptParams(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CreateKeystore encrypts a mnemonic and writes it to the keystore file
func (s *service) CreateKeystore(ctx context.Context, mnemonic string, password string) (*Keystore, error) {
	log := util.LogFromContext(ctx)

	// Check if keystore already exists
	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return nil, errors.Wrapf(ErrAlreadyExists, "path %s", s.path)
	}

	// Encrypt mnemonic
	keystoreJSON, err := s.sealMnemonic(mnemonic, password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt mnemonic")
		return nil, errors.Wrap(err, "failed to encrypt mnemonic")
	}

	err = writeExclusive(s.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(keystoreJSON)
	})
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("Failed to write keystore")
		return nil, errors.Wrap(err, "failed to write keystore")
	}

	log.Info().Str("path", s.path).Str("id", keystoreJSON.ID).Msg("Keystore created")

	return &Keystore{Path: s.path, JSON: keystoreJSON}, nil
}

// DecryptMnemonic decrypts mnemonic from keystore
func (s *service) DecryptMnemonic(ctx context.Context, keystore *Keystore, password string) (string, error) {
	log := util.LogFromContext(ctx)

	if keystore == nil || keystore.JSON == nil {
		return "", errors.New("keystore is empty")
	}

	// Decrypt mnemonic
	mnemonic, err := openMnemonic(keystore.JSON, password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decrypt mnemonic")
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return mnemonic, nil
}

// GetKeystore reads the keystore file
func (s *service) GetKeystore(_ context.Context) (*Keystore, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "path %s", s.path)
		}
		return nil, errors.Wrap(err, "failed to read keystore")
	}

	var keystoreJSON KeystoreJSON
	if err := json.Unmarshal(data, &keystoreJSON); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal keystore JSON")
	}

	if keystoreJSON.Version != keystoreVersion || keystoreJSON.Crypto.Cipher != cipherName || keystoreJSON.Crypto.KDF != kdfName {
		return nil, errors.Errorf("unsupported keystore: version %d, cipher %q, kdf %q",
			keystoreJSON.Version, keystoreJSON.Crypto.Cipher, keystoreJSON.Crypto.KDF)
	}

	return &Keystore{Path: s.path, JSON: &keystoreJSON}, nil
}

// Exists checks if keystore exists
func (s *service) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, errors.Wrap(err, "failed to stat keystore")
}

// writeExclusive creates path with owner-only permissions, failing if it
// exists, and fills it with write. A failed write removes the file again.
func writeExclusive(path string, write func(io.Writer) error) error {
	const (
		dirPerm  = 0o700
		filePerm = 0o600
	)

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrap(err, "failed to create keystore directory")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}

	err = write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			return errors.Wrapf(err, "failed to remove partial keystore: %v", removeErr)
		}
		return err
	}

	return nil
}
