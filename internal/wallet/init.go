package wallet

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/wallet/keystore"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/term"
)

const (
	mnemonicEntropyBits = 256 // 24 words
	minPasswordLength   = 8
)

// PasswordReader reads a secret after printing prompt
type PasswordReader func(prompt string) (string, error)

// InitializeSeed loads the mnemonic and initializes the seed manager.
// The mnemonic comes from configuration when set, otherwise it is decrypted
// from the keystore using the configured password or a terminal prompt.
func InitializeSeed(ctx context.Context, cfg config.Wallet, seedManager seed.Manager, keystoreService keystore.Service, readPassword PasswordReader) error {
	log := log.With().Str("component", "wallet_init").Logger()

	if cfg.Mnemonic != "" {
		if err := seedManager.Initialize(cfg.Mnemonic, cfg.Passphrase); err != nil {
			return errors.Wrap(err, "failed to initialize seed manager")
		}

		log.Debug().Msg("Seed manager initialized from configured mnemonic")
		return nil
	}

	if keystoreService == nil {
		return errors.New("no mnemonic configured: set SIGNER_WALLET_MNEMONIC or a keystore path")
	}

	//nolint:varnamelen // ks is a common abbreviation for keystore
	ks, err := keystoreService.GetKeystore(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get keystore")
	}

	password := cfg.KeystorePassword
	if password == "" {
		log.Info().Str("path", ks.Path).Msg("Keystore found. Please enter password to unlock...")

		password, err = readPassword("Enter keystore password: ")
		if err != nil {
			return errors.Wrap(err, "failed to read password")
		}
	}

	mnemonic, err := keystoreService.DecryptMnemonic(ctx, ks, password)
	if err != nil {
		return errors.Wrap(err, "failed to decrypt keystore (invalid password?)")
	}

	if err := seedManager.Initialize(mnemonic, cfg.Passphrase); err != nil {
		return errors.Wrap(err, "failed to initialize seed manager")
	}

	log.Info().Msg("Seed manager initialized successfully")
	return nil
}

// CreateKeystore encrypts mnemonic into a new keystore, generating a 24 word
// mnemonic when none is given. It returns the stored mnemonic.
func CreateKeystore(ctx context.Context, keystoreService keystore.Service, mnemonic string, password string, readPassword PasswordReader) (string, error) {
	log := log.With().Str("component", "wallet_init").Logger()

	exists, err := keystoreService.Exists(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return "", keystore.ErrAlreadyExists
	}

	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if mnemonic == "" {
		log.Info().Msg("Generating new mnemonic...")

		mnemonic, err = GenerateMnemonic()
		if err != nil {
			return "", err
		}
	} else if !bip39.IsMnemonicValid(mnemonic) {
		return "", txerrors.NewCrypto("invalid mnemonic", errors.New("wordlist or checksum mismatch"))
	}

	if password == "" {
		password, err = readNewPassword(readPassword)
		if err != nil {
			return "", err
		}
	}

	if len(password) < minPasswordLength {
		return "", errors.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := keystoreService.CreateKeystore(ctx, mnemonic, password); err != nil {
		return "", errors.Wrap(err, "failed to create keystore")
	}

	log.Info().Msg("Keystore created successfully")
	return mnemonic, nil
}

// GenerateMnemonic returns a new random 24 word BIP-39 mnemonic
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

func readNewPassword(readPassword PasswordReader) (string, error) {
	password, err := readPassword(fmt.Sprintf("Enter password for keystore (min %d characters): ", minPasswordLength))
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	passwordConfirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", errors.Wrap(err, "failed to read password confirmation")
	}

	if password != passwordConfirm {
		return "", errors.New("passwords do not match")
	}

	return password, nil
}

// PromptPassword prompts for password input on stderr (hides input)
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	// Read password from terminal (hides input)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
	if err != nil {
		return "", errors.Wrap(err, "failed to read password from terminal")
	}

	fmt.Fprintln(os.Stderr) // New line after password input

	return string(passwordBytes), nil
}

// Open wires the pipeline from cfg and unlocks the key material it names.
// Callers must Close the returned components.
func Open(ctx context.Context, cfg config.Signer, readPassword PasswordReader) (*Components, error) {
	components, err := InitializeComponents(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize components")
	}

	if err := components.Unlock(ctx, cfg.Wallet, readPassword); err != nil {
		return nil, err
	}

	return components, nil
}

// Unlock initializes the seed manager of c from the mnemonic or keystore
// named by cfg. On failure the seed manager is cleared.
func (c *Components) Unlock(ctx context.Context, cfg config.Wallet, readPassword PasswordReader) error {
	var keystoreService keystore.Service
	if cfg.Mnemonic == "" && cfg.KeystorePath != "" {
		var err error
		keystoreService, err = keystore.NewService(cfg.KeystorePath)
		if err != nil {
			return errors.Wrap(err, "failed to create keystore service")
		}
	}

	if err := InitializeSeed(ctx, cfg, c.SeedManager, keystoreService, readPassword); err != nil {
		c.Close()
		return err
	}

	return nil
}
