package address

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
)

// CIP-1852 derivation path constants
const (
	PurposeCIP1852 uint32 = 1852
	CoinTypeADA    uint32 = 1815

	RolePayment uint32 = 0
	RoleChange  uint32 = 1
	RoleStake   uint32 = 2

	DefaultAccount uint32 = 0
	DefaultIndex   uint32 = 0
)

// DerivationPath is m / purpose' / coin_type' / account' / role / index
type DerivationPath struct {
	Purpose  uint32
	CoinType uint32
	Account  uint32
	Role     uint32
	Index    uint32
}

// PaymentPath returns the payment key path for account and index
func PaymentPath(account uint32, index uint32) DerivationPath {
	return DerivationPath{Purpose: PurposeCIP1852, CoinType: CoinTypeADA, Account: account, Role: RolePayment, Index: index}
}

// StakePath returns the stake key path for account and index
func StakePath(account uint32, index uint32) DerivationPath {
	return DerivationPath{Purpose: PurposeCIP1852, CoinType: CoinTypeADA, Account: account, Role: RoleStake, Index: index}
}

// Indices returns the derivation indices, hardening purpose, coin type and account
func (p DerivationPath) Indices() []uint32 {
	return []uint32{
		hdkey.Harden(p.Purpose),
		hdkey.Harden(p.CoinType),
		hdkey.Harden(p.Account),
		p.Role,
		p.Index,
	}
}

// Validate rejects components that would wrap into the hardened range
func (p DerivationPath) Validate() error {
	for _, c := range []struct {
		name  string
		value uint32
	}{
		{"purpose", p.Purpose},
		{"coin type", p.CoinType},
		{"account", p.Account},
		{"role", p.Role},
		{"index", p.Index},
	} {
		if hdkey.IsHardened(c.value) {
			return fmt.Errorf("%s %d is out of range (max %d)", c.name, c.value, hdkey.HardenedOffset-1)
		}
	}
	return nil
}

func (p DerivationPath) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", p.Purpose, p.CoinType, p.Account, p.Role, p.Index)
}

// RoleName returns a label for the path role
func (p DerivationPath) RoleName() string {
	switch p.Role {
	case RolePayment:
		return "payment"
	case RoleChange:
		return "change"
	case RoleStake:
		return "stake"
	default:
		return fmt.Sprintf("role_%d", p.Role)
	}
}

// Network selects the address network tag and bech32 prefix
type Network byte

const (
	Testnet Network = 0
	Mainnet Network = 1
)

// ParseNetwork parses "mainnet" / "testnet" (and preprod/preview as testnet)
func ParseNetwork(name string) (Network, error) {
	switch name {
	case "mainnet":
		return Mainnet, nil
	case "testnet", "preprod", "preview":
		return Testnet, nil
	default:
		return Testnet, fmt.Errorf("unsupported network: %s", name)
	}
}

// Service provides key derivation and address functionality
type Service interface {
	// DerivePrivateKey derives the extended private key at path from the root key
	// WARNING: Caller must Clear the key after use
	DerivePrivateKey(ctx context.Context, root *hdkey.ExtendedPrivateKey, path DerivationPath) (*hdkey.ExtendedPrivateKey, error)

	// DerivePublicKey derives only the public key at path
	DerivePublicKey(ctx context.Context, root *hdkey.ExtendedPrivateKey, path DerivationPath) (ed25519.PublicKey, error)

	// KeyHash returns the blake2b-224 hash of a public key
	KeyHash(pub ed25519.PublicKey) []byte

	// EnterpriseAddress returns the bech32 enterprise address of a payment key
	EnterpriseAddress(network Network, payment ed25519.PublicKey) (string, error)

	// BaseAddress returns the bech32 base address of a payment and stake key pair
	BaseAddress(network Network, payment ed25519.PublicKey, stake ed25519.PublicKey) (string, error)

	// RewardAddress returns the bech32 reward (stake) address of a stake key
	RewardAddress(network Network, stake ed25519.PublicKey) (string, error)
}
