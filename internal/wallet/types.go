package wallet

import (
	"context"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/payload"
	"github.com/pkg/errors"
)

// Service runs the Rosetta unsigned transaction → signed transaction pipeline
type Service interface {
	// Normalize turns a Rosetta unsigned transaction into a signable envelope
	Normalize(ctx context.Context, unsignedTx string) (payload.Result, error)

	// SignRosettaTransaction normalizes, derives the requested keys and signs
	SignRosettaTransaction(ctx context.Context, req *SignRequest) (*SignResult, error)

	// SignNormalized signs the output of Normalize; req.UnsignedTx is ignored
	SignNormalized(ctx context.Context, normalized payload.Result, req *SignRequest) (*SignResult, error)

	// DeriveKeys derives the payment and stake keys and their addresses
	DeriveKeys(ctx context.Context, account uint32, index uint32) (*KeySet, error)

	// DeriveKeysAtPath derives the key at paymentPath and the stake key of its account
	DeriveKeysAtPath(ctx context.Context, paymentPath address.DerivationPath) (*KeySet, error)

	// Inspect decodes a transaction envelope and verifies its vkey witnesses
	Inspect(ctx context.Context, envelopeHex string) (*Inspection, error)
}

// SignRequest represents a request to sign a Rosetta unsigned transaction
type SignRequest struct {
	UnsignedTx      string // Rosetta unsigned_transaction hex
	Account         uint32
	Index           uint32
	WithStakeKey    bool
	StakeIndex      uint32
	ExpectedKeyHash string // Optional payment key hash the mnemonic must derive
	Path            string // Optional payment key path, overrides Account and Index
}

// PaymentPath returns the key path the transaction is signed with
func (r *SignRequest) PaymentPath() (address.DerivationPath, error) {
	if r.Path == "" {
		return address.PaymentPath(r.Account, r.Index), nil
	}

	path, err := address.ParsePath(r.Path)
	if err != nil {
		return address.DerivationPath{}, errors.Wrap(err, "invalid payment path")
	}
	return path, nil
}

// SignResult represents a signed Cardano transaction
type SignResult struct {
	UnsignedTx string // Normalized envelope hex
	Source     payload.Source
	SignedTx   string
	TxHash     string
	Witnesses  []WitnessInfo
}

// WitnessInfo describes one key that witnessed the transaction
type WitnessInfo struct {
	Path      string `json:"path"`
	Role      string `json:"role"`
	PublicKey string `json:"public_key"`
	KeyHash   string `json:"key_hash"`
	Added     bool   `json:"added"`
}

// KeySet holds the public side of a payment/stake key pair
type KeySet struct {
	Network           string `json:"network" toml:"network"`
	PaymentPath       string `json:"payment_path" toml:"payment_path"`
	PaymentPublicKey  string `json:"payment_public_key" toml:"payment_public_key"`
	PaymentKeyHash    string `json:"payment_key_hash" toml:"payment_key_hash"`
	StakePath         string `json:"stake_path" toml:"stake_path"`
	StakePublicKey    string `json:"stake_public_key" toml:"stake_public_key"`
	StakeKeyHash      string `json:"stake_key_hash" toml:"stake_key_hash"`
	EnterpriseAddress string `json:"enterprise_address" toml:"enterprise_address"`
	BaseAddress       string `json:"base_address" toml:"base_address"`
	RewardAddress     string `json:"reward_address" toml:"reward_address"`
}

// Inspection is the decoded view of a transaction envelope
type Inspection struct {
	TxHash    string         `json:"tx_hash"`
	IsValid   bool           `json:"is_valid"`
	Witnesses []WitnessCheck `json:"witnesses"`
}

// WitnessCheck is the verification result of one vkey witness
type WitnessCheck struct {
	PublicKey string `json:"public_key"`
	KeyHash   string `json:"key_hash"`
	Valid     bool   `json:"valid"`
}

// AllValid reports whether every witness verified
func (i *Inspection) AllValid() bool {
	for _, w := range i.Witnesses {
		if !w.Valid {
			return false
		}
	}
	return true
}
