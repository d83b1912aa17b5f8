package seed

import "github.com/chapool/rosetta-signer/internal/wallet/hdkey"

// Manager provides root key management functionality
type Manager interface {
	// Initialize decodes the mnemonic and derives the root key (called once per run)
	Initialize(mnemonic string, passphrase string) error

	// GetRootKey returns a copy of the root key; caller must Clear it
	GetRootKey() (*hdkey.ExtendedPrivateKey, error)

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the root key from memory
	Clear()
}
