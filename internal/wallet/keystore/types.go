package keystore

import "github.com/pkg/errors"

const (
	keystoreVersion = 3
	cipherName      = "aes-128-ctr"
	kdfName         = "scrypt"
)

var (
	ErrNotFound        = errors.New("keystore not found")
	ErrAlreadyExists   = errors.New("keystore already exists")
	ErrInvalidPassword = errors.New("invalid password: MAC mismatch")
)

// Keystore is an encrypted mnemonic stored at Path
type Keystore struct {
	Path string
	JSON *KeystoreJSON
}

// KeystoreJSON is the keystore v3 JSON structure, holding a mnemonic instead of a private key
//
//nolint:revive // KeystoreJSON is the standard name for keystore JSON structure
type KeystoreJSON struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines scrypt KDF parameters
type ScryptParams struct {
	DKLen int // Derived key length (32 bytes)
	Salt  []byte
	N     int // CPU/memory cost parameter (262144)
	R     int // Block size parameter (8)
	P     int // Parallelization parameter (1)
}

// DefaultScryptParams returns default scrypt parameters for keystore v3
func DefaultScryptParams() *ScryptParams {
	const (
		scryptDKLen = 32     // Derived key length (32 bytes)
		scryptN     = 262144 // CPU/memory cost parameter (2^18)
		scryptR     = 8      // Block size parameter
		scryptP     = 1      // Parallelization parameter
	)

	return &ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}

// LightScryptParams returns cheap scrypt parameters (2^12) for tests and throwaway keystores
func LightScryptParams() *ScryptParams {
	p := DefaultScryptParams()
	p.N = 4096
	return p
}
