package seed

import (
	"strings"
	"sync"

	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

var ErrNotInitialized = errors.New("seed not initialized")

// manager implements root key management with thread-safe access
type manager struct {
	rootKey     []byte
	mu          sync.RWMutex
	initialized bool
}

// NewManager creates a new seed Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{
		rootKey:     nil,
		initialized: false,
	}
}

// Initialize validates the mnemonic and derives the Icarus root key.
// The mnemonic is NFKD-normalized and its whitespace collapsed first.
// The mnemonic is decoded to entropy (BIP39 checksum and wordlist are
// enforced) and the root key is PBKDF2(passphrase, entropy) as Cardano
// wallets do, not the BIP39 seed.
func (m *manager) Initialize(mnemonic string, passphrase string) error {
	normalized := strings.Join(strings.Fields(norm.NFKD.String(mnemonic)), " ")

	entropy, err := bip39.EntropyFromMnemonic(normalized)
	if err != nil {
		return txerrors.NewCrypto("invalid mnemonic", err)
	}
	defer zero(entropy)

	root, err := hdkey.FromBIP39Entropy(entropy, []byte(passphrase))
	if err != nil {
		return txerrors.NewCrypto("failed to derive root key", err)
	}
	defer root.Clear()

	m.mu.Lock()
	defer m.mu.Unlock()

	zero(m.rootKey)
	m.rootKey = root.Bytes()
	m.initialized = true

	return nil
}

// GetRootKey gets the root key (returns a copy to prevent external modification)
func (m *manager) GetRootKey() (*hdkey.ExtendedPrivateKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.rootKey == nil {
		return nil, ErrNotInitialized
	}

	return hdkey.New(m.rootKey)
}

// IsInitialized checks if seed is initialized
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear clears the root key from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	zero(m.rootKey)
	m.rootKey = nil
	m.initialized = false
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
