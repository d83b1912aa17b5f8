package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

const (
	saltLen   = 32
	ivLen     = aes.BlockSize
	cipherKey = 16 // aes-128
	minDKLen  = 2 * cipherKey
)

// sealKeys is the scrypt output split into the AES key and the MAC key
type sealKeys struct {
	cipher []byte
	mac    []byte
}

func deriveSealKeys(password string, salt []byte, n, r, p, dkLen int) (sealKeys, error) {
	if dkLen < minDKLen {
		return sealKeys{}, errors.Errorf("dklen %d is too short", dkLen)
	}

	derived, err := scrypt.Key([]byte(password), salt, n, r, p, dkLen)
	if err != nil {
		return sealKeys{}, errors.Wrap(err, "failed to derive key")
	}

	return sealKeys{cipher: derived[:cipherKey], mac: derived[cipherKey:minDKLen]}, nil
}

// mac is keccak256(macKey || ciphertext)
func (k sealKeys) sum(ciphertext []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(k.mac)
	h.Write(ciphertext)
	return h.Sum(nil)
}

// xorCTR runs AES-128-CTR; the same call encrypts and decrypts
func (k sealKeys) xorCTR(iv []byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(k.cipher)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes")
	}
	return b, nil
}

// sealMnemonic encrypts mnemonic into a v3-style keystore document
func (s *service) sealMnemonic(mnemonic string, password string) (*KeystoreJSON, error) {
	salt, err := randomBytes(saltLen)
	if err != nil {
		return nil, err
	}

	iv, err := randomBytes(ivLen)
	if err != nil {
		return nil, err
	}

	keys, err := deriveSealKeys(password, salt, s.params.N, s.params.R, s.params.P, s.params.DKLen)
	if err != nil {
		return nil, err
	}

	ciphertext, err := keys.xorCTR(iv, []byte(mnemonic))
	if err != nil {
		return nil, err
	}

	doc := &KeystoreJSON{Version: keystoreVersion, ID: uuid.New().String()}
	doc.Crypto.Cipher = cipherName
	doc.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	doc.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	doc.Crypto.KDF = kdfName
	doc.Crypto.KDFParams.DKLen = s.params.DKLen
	doc.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	doc.Crypto.KDFParams.N = s.params.N
	doc.Crypto.KDFParams.R = s.params.R
	doc.Crypto.KDFParams.P = s.params.P
	doc.Crypto.MAC = hex.EncodeToString(keys.sum(ciphertext))

	return doc, nil
}

// openMnemonic checks the MAC and decrypts the mnemonic of doc
func openMnemonic(doc *KeystoreJSON, password string) (string, error) {
	fields := map[string]string{
		"salt":       doc.Crypto.KDFParams.Salt,
		"iv":         doc.Crypto.CipherParams.IV,
		"ciphertext": doc.Crypto.Ciphertext,
		"mac":        doc.Crypto.MAC,
	}

	raw := make(map[string][]byte, len(fields))
	for name, value := range fields {
		b, err := hex.DecodeString(value)
		if err != nil {
			return "", errors.Wrapf(err, "failed to decode %s", name)
		}
		raw[name] = b
	}

	if len(raw["iv"]) != ivLen {
		return "", errors.Errorf("iv must be %d bytes", ivLen)
	}

	kdf := doc.Crypto.KDFParams
	keys, err := deriveSealKeys(password, raw["salt"], kdf.N, kdf.R, kdf.P, kdf.DKLen)
	if err != nil {
		return "", err
	}

	if subtle.ConstantTimeCompare(keys.sum(raw["ciphertext"]), raw["mac"]) != 1 {
		return "", ErrInvalidPassword
	}

	plaintext, err := keys.xorCTR(raw["iv"], raw["ciphertext"])
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
