package address

import (
	"context"
	"crypto/ed25519"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// KeyHashSize is the size of a blake2b-224 key hash
	KeyHashSize = 28

	// CIP-19 header types, shifted into the high nibble
	headerBase       byte = 0b0000 << 4
	headerEnterprise byte = 0b0110 << 4
	headerReward     byte = 0b1110 << 4

	hrpMainnet      = "addr"
	hrpTestnet      = "addr_test"
	hrpStakeMainnet = "stake"
	hrpStakeTestnet = "stake_test"
)

type service struct{}

// NewService creates a new address Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// DerivePrivateKey derives the extended private key at path
// WARNING: Caller must clear the private key after use
func (s *service) DerivePrivateKey(ctx context.Context, root *hdkey.ExtendedPrivateKey, path DerivationPath) (*hdkey.ExtendedPrivateKey, error) {
	if root == nil {
		return nil, txerrors.NewCrypto("failed to derive private key", errors.New("root key is nil"))
	}

	if err := path.Validate(); err != nil {
		return nil, txerrors.NewCrypto("failed to derive private key", err)
	}

	key, err := root.DerivePath(path.Indices()...)
	if err != nil {
		return nil, txerrors.NewCrypto("failed to derive private key", errors.Wrapf(err, "path %s", path))
	}

	util.LogFromContext(ctx).Debug().
		Str("path", path.String()).
		Str("role", path.RoleName()).
		Msg("Derived key")

	return key, nil
}

// DerivePublicKey derives only the public key at path
func (s *service) DerivePublicKey(ctx context.Context, root *hdkey.ExtendedPrivateKey, path DerivationPath) (ed25519.PublicKey, error) {
	key, err := s.DerivePrivateKey(ctx, root, path)
	if err != nil {
		return nil, err
	}
	defer key.Clear()

	return key.PublicKey(), nil
}

// KeyHash returns blake2b-224(pub)
func (s *service) KeyHash(pub ed25519.PublicKey) []byte {
	return KeyHash(pub)
}

// EnterpriseAddress returns header(0110|network) || payment key hash
func (s *service) EnterpriseAddress(network Network, payment ed25519.PublicKey) (string, error) {
	raw := make([]byte, 0, 1+KeyHashSize)
	raw = append(raw, headerEnterprise|byte(network))
	raw = append(raw, KeyHash(payment)...)

	return encode(addressHRP(network), raw)
}

// BaseAddress returns header(0000|network) || payment key hash || stake key hash
func (s *service) BaseAddress(network Network, payment ed25519.PublicKey, stake ed25519.PublicKey) (string, error) {
	raw := make([]byte, 0, 1+2*KeyHashSize)
	raw = append(raw, headerBase|byte(network))
	raw = append(raw, KeyHash(payment)...)
	raw = append(raw, KeyHash(stake)...)

	return encode(addressHRP(network), raw)
}

// RewardAddress returns header(1110|network) || stake key hash
func (s *service) RewardAddress(network Network, stake ed25519.PublicKey) (string, error) {
	raw := make([]byte, 0, 1+KeyHashSize)
	raw = append(raw, headerReward|byte(network))
	raw = append(raw, KeyHash(stake)...)

	hrp := hrpStakeTestnet
	if network == Mainnet {
		hrp = hrpStakeMainnet
	}

	return encode(hrp, raw)
}

// KeyHash returns blake2b-224(pub)
func KeyHash(pub ed25519.PublicKey) []byte {
	h, err := blake2b.New(KeyHashSize, nil)
	if err != nil {
		// only fails for sizes above 64 or an oversized key
		panic(err)
	}
	_, _ = h.Write(pub)
	return h.Sum(nil)
}

func addressHRP(network Network) string {
	if network == Mainnet {
		return hrpMainnet
	}
	return hrpTestnet
}

func encode(hrp string, raw []byte) (string, error) {
	data, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert address bits")
	}

	addr, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode bech32 address")
	}

	return addr, nil
}
