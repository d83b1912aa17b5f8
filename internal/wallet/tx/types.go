package tx

import (
	"crypto/ed25519"

	"github.com/fxamacker/cbor/v2"
)

// Transaction body keys that must be present
const (
	BodyKeyInputs  uint64 = 0
	BodyKeyOutputs uint64 = 1
	BodyKeyFee     uint64 = 2
)

// Witness set keys
const (
	WitnessKeyVkey uint64 = 0
)

// tagSet is the CBOR tag for sets (#6.258) used by Conway era encodings
const tagSet uint64 = 258

// VkeyWitness is [vkey, signature]
type VkeyWitness struct {
	_         struct{} `cbor:",toarray"`
	VKey      []byte
	Signature []byte
}

// Signer is a key able to witness a transaction
type Signer interface {
	PublicKey() ed25519.PublicKey
	Sign(message []byte) []byte
}

// WitnessCheck is the verification result of one vkey witness
type WitnessCheck struct {
	VKey  []byte
	Valid bool
}

// envelope is [body, witness_set, is_valid, auxiliary_data]
type envelope struct {
	_          struct{} `cbor:",toarray"`
	Body       cbor.RawMessage
	WitnessSet cbor.RawMessage
	IsValid    cbor.RawMessage
	AuxData    cbor.RawMessage
}
