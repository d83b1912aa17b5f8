package signer

import (
	"context"
	"crypto/ed25519"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
)

// Service provides transaction signing functionality
type Service interface {
	// SignTransaction adds a vkey witness per requested path to a Cardano transaction envelope
	SignTransaction(ctx context.Context, req *SignRequest) (*SignResponse, error)
}

// SignRequest represents a request to sign a Cardano transaction
type SignRequest struct {
	Envelope []byte                   // CBOR [body, witness_set, is_valid, auxiliary_data]
	Paths    []address.DerivationPath // One witness per path; payment key first by convention
}

// SignResponse represents a signed Cardano transaction
type SignResponse struct {
	SignedTx  []byte    // CBOR-encoded signed transaction
	TxHash    string    // blake2b-256 of the body, hex
	Witnesses []Witness // In request order
}

// Witness describes the key behind one requested signature
type Witness struct {
	Path      address.DerivationPath
	PublicKey ed25519.PublicKey
	KeyHash   []byte
	Added     bool // false if the transaction already carried this key's witness
}
