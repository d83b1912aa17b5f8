// Package hdkey wraps the BIP32-Ed25519 keys of cardano-go (Icarus master
// key, V2 child derivation) behind the key type the wallet passes around.
package hdkey

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/echovl/cardano-go/crypto"
	"github.com/pkg/errors"
)

const (
	// HardenedOffset is added to an index to request hardened derivation
	HardenedOffset uint32 = 0x80000000

	// ExtendedKeySize is kL || kR || chain code
	ExtendedKeySize = 96
	// RawKeySize is kL || kR, the extended Ed25519 signing key without chain code
	RawKeySize = 64
)

var (
	ErrInvalidKeySize = errors.New("invalid extended key size")
	ErrInvalidEntropy = errors.New("entropy must not be empty")
)

// Harden returns the hardened form of index
func Harden(index uint32) uint32 {
	return HardenedOffset + index
}

// IsHardened reports whether index is in the hardened range
func IsHardened(index uint32) bool {
	return index >= HardenedOffset
}

// ExtendedPrivateKey is a BIP32-Ed25519 extended private key
type ExtendedPrivateKey struct {
	xprv crypto.XPrvKey
}

// FromBIP39Entropy derives the Icarus master key from BIP-39 entropy:
// PBKDF2-HMAC-SHA512(passphrase, entropy, 4096, 96) with kL clamped.
func FromBIP39Entropy(entropy []byte, passphrase []byte) (*ExtendedPrivateKey, error) {
	if len(entropy) == 0 {
		return nil, ErrInvalidEntropy
	}

	xprv := crypto.NewXPrvKeyFromEntropy(entropy, string(passphrase))
	defer zero(xprv)

	return New(xprv)
}

// New creates a key from its 96 byte encoding
func New(b []byte) (*ExtendedPrivateKey, error) {
	if len(b) != ExtendedKeySize {
		return nil, errors.Wrapf(ErrInvalidKeySize, "got %d bytes", len(b))
	}

	return &ExtendedPrivateKey{xprv: crypto.XPrvKey(clone(b))}, nil
}

// Bytes returns kL || kR || chain code. Caller must clear the result.
func (k *ExtendedPrivateKey) Bytes() []byte {
	return clone(k.xprv)
}

// RawKey returns the non-extended signing form (kL || kR) of k.
// Caller must Clear the result.
func (k *ExtendedPrivateKey) RawKey() *RawKey {
	return &RawKey{prv: crypto.PrvKey(clone(k.xprv[:RawKeySize]))}
}

// PublicKey returns A = kL·B
func (k *ExtendedPrivateKey) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(k.xprv.PrvKey().PubKey())
}

// PublicKeyHex returns the hex encoded public key
func (k *ExtendedPrivateKey) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey())
}

// Derive returns the child key at index
func (k *ExtendedPrivateKey) Derive(index uint32) (*ExtendedPrivateKey, error) {
	if len(k.xprv) != ExtendedKeySize {
		return nil, errors.Wrapf(ErrInvalidKeySize, "got %d bytes", len(k.xprv))
	}

	return &ExtendedPrivateKey{xprv: k.xprv.Derive(index)}, nil
}

// DerivePath applies Derive for each index in order
func (k *ExtendedPrivateKey) DerivePath(indices ...uint32) (*ExtendedPrivateKey, error) {
	current := k
	for _, index := range indices {
		next, err := current.Derive(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
		if current != k {
			current.Clear()
		}
		current = next
	}
	return current, nil
}

// Sign produces a deterministic Ed25519 signature of message with the extended key
func (k *ExtendedPrivateKey) Sign(message []byte) []byte {
	prv := k.xprv.PrvKey()
	return prv.Sign(message)
}

// Clear zeroes the key material
func (k *ExtendedPrivateKey) Clear() {
	zero(k.xprv)
}

// RawKey is a 64 byte kL || kR signing key
type RawKey struct {
	prv crypto.PrvKey
}

// PublicKey returns the verification key of r
func (r *RawKey) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(r.prv.PubKey())
}

// Sign produces an Ed25519 signature of message
func (r *RawKey) Sign(message []byte) []byte {
	return r.prv.Sign(message)
}

// Clear zeroes the key material
func (r *RawKey) Clear() {
	zero(r.prv)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
