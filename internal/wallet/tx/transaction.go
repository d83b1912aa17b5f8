// Package tx parses and witnesses Cardano transaction envelopes.
//
// A Transaction keeps the body, validity flag and auxiliary data as the exact
// bytes it was given. Only the witness set is re-encoded when vkey witnesses
// are added, so the body hash that signatures commit to never changes.
package tx

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"

	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	cborFalse byte = 0xf4
	cborTrue  byte = 0xf5
	cborNull  byte = 0xf6

	majorTypeMap = 5
)

//nolint:gochecknoglobals // immutable codec modes
var (
	decMode = mustDecMode(cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF})
	encMode = mustEncMode(cbor.EncOptions{Sort: cbor.SortLengthFirst})

	setTagPrefix     = []byte{0xd9, 0x01, 0x02}
	auxDataTagPrefix = []byte{0xd9, 0x01, 0x03}
)

// Transaction is a Cardano transaction with a fixed body encoding
type Transaction struct {
	body          []byte
	witnessSet    map[uint64]cbor.RawMessage
	vkeyWitnesses []VkeyWitness
	vkeySetTag    bool
	isValid       []byte
	auxData       []byte
}

// Parse decodes a 4-element transaction envelope
func Parse(envelopeBytes []byte) (*Transaction, error) {
	var env envelope
	if err := decMode.Unmarshal(envelopeBytes, &env); err != nil {
		return nil, txerrors.NewCrypto("malformed transaction", err)
	}

	if err := validateBody(env.Body); err != nil {
		return nil, txerrors.NewCrypto("malformed transaction body", err)
	}

	if len(env.IsValid) != 1 || (env.IsValid[0] != cborTrue && env.IsValid[0] != cborFalse) {
		return nil, txerrors.NewCrypto("malformed transaction", errors.New("is_valid is not a boolean"))
	}

	if err := validateAuxData(env.AuxData); err != nil {
		return nil, txerrors.NewCrypto("malformed auxiliary data", err)
	}

	t := &Transaction{
		body:    clone(env.Body),
		isValid: clone(env.IsValid),
		auxData: clone(env.AuxData),
	}

	if err := t.decodeWitnessSet(env.WitnessSet); err != nil {
		return nil, txerrors.NewCrypto("malformed witness set", err)
	}

	return t, nil
}

// ParseHex decodes a hex encoded transaction envelope
func ParseHex(envelopeHex string) (*Transaction, error) {
	raw, err := hex.DecodeString(envelopeHex)
	if err != nil {
		return nil, txerrors.NewCrypto("malformed transaction hex", err)
	}
	return Parse(raw)
}

// NewFixed wraps body bytes into a transaction with an empty witness set,
// is_valid = true and no auxiliary data. The body bytes are kept verbatim.
func NewFixed(body []byte) (*Transaction, error) {
	if err := validateBody(body); err != nil {
		return nil, txerrors.NewCrypto("malformed transaction body", err)
	}

	return &Transaction{
		body:       clone(body),
		witnessSet: map[uint64]cbor.RawMessage{},
		isValid:    []byte{cborTrue},
		auxData:    []byte{cborNull},
	}, nil
}

// Fixed returns a copy of t built by NewFixed from its own body bytes.
// Existing witnesses, the validity flag and auxiliary data are carried over.
func (t *Transaction) Fixed() (*Transaction, error) {
	c, err := NewFixed(t.body)
	if err != nil {
		return nil, err
	}

	for k, v := range t.witnessSet {
		c.witnessSet[k] = clone(v)
	}
	c.vkeyWitnesses = make([]VkeyWitness, len(t.vkeyWitnesses))
	copy(c.vkeyWitnesses, t.vkeyWitnesses)
	c.vkeySetTag = t.vkeySetTag
	c.isValid = clone(t.isValid)
	c.auxData = clone(t.auxData)

	return c, nil
}

// Body returns a copy of the body bytes
func (t *Transaction) Body() []byte {
	return clone(t.body)
}

// Hash returns blake2b-256 of the body bytes
func (t *Transaction) Hash() [32]byte {
	return blake2b.Sum256(t.body)
}

// HashHex returns the hex encoded transaction id
func (t *Transaction) HashHex() string {
	h := t.Hash()
	return hex.EncodeToString(h[:])
}

// IsValid reports the is_valid flag
func (t *Transaction) IsValid() bool {
	return len(t.isValid) == 1 && t.isValid[0] == cborTrue
}

// VkeyWitnesses returns the vkey witnesses in order
func (t *Transaction) VkeyWitnesses() []VkeyWitness {
	out := make([]VkeyWitness, len(t.vkeyWitnesses))
	copy(out, t.vkeyWitnesses)
	return out
}

// AddVkeyWitness appends a witness. It returns false without changes if a
// witness for vkey is already present.
func (t *Transaction) AddVkeyWitness(vkey []byte, signature []byte) (bool, error) {
	if len(vkey) != ed25519.PublicKeySize {
		return false, errors.Errorf("vkey has %d bytes", len(vkey))
	}
	if len(signature) != ed25519.SignatureSize {
		return false, errors.Errorf("signature has %d bytes", len(signature))
	}

	for _, w := range t.vkeyWitnesses {
		if bytes.Equal(w.VKey, vkey) {
			return false, nil
		}
	}

	t.vkeyWitnesses = append(t.vkeyWitnesses, VkeyWitness{VKey: clone(vkey), Signature: clone(signature)})
	return true, nil
}

// SignAndAddVkeyWitness signs the body hash with s and appends the witness
func (t *Transaction) SignAndAddVkeyWitness(s Signer) (bool, error) {
	hash := t.Hash()
	sig := s.Sign(hash[:])

	added, err := t.AddVkeyWitness(s.PublicKey(), sig)
	if err != nil {
		return false, txerrors.NewCrypto("failed to add vkey witness", err)
	}
	return added, nil
}

// Verify checks every vkey witness against the body hash
func (t *Transaction) Verify() []WitnessCheck {
	hash := t.Hash()
	checks := make([]WitnessCheck, 0, len(t.vkeyWitnesses))
	for _, w := range t.vkeyWitnesses {
		checks = append(checks, WitnessCheck{
			VKey:  clone(w.VKey),
			Valid: ed25519.Verify(ed25519.PublicKey(w.VKey), hash[:], w.Signature),
		})
	}
	return checks
}

// Bytes encodes [body, witness_set, is_valid, auxiliary_data]
func (t *Transaction) Bytes() ([]byte, error) {
	witnessSet, err := t.encodeWitnessSet()
	if err != nil {
		return nil, err
	}

	out, err := encMode.Marshal(envelope{
		Body:       t.body,
		WitnessSet: witnessSet,
		IsValid:    t.isValid,
		AuxData:    t.auxData,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transaction")
	}

	return out, nil
}

// Hex returns the hex encoded transaction
func (t *Transaction) Hex() (string, error) {
	b, err := t.Bytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (t *Transaction) decodeWitnessSet(raw cbor.RawMessage) error {
	if len(raw) == 0 || raw[0]>>5 != majorTypeMap {
		return errors.New("witness set is not a map")
	}

	witnessSet := map[uint64]cbor.RawMessage{}
	if err := decMode.Unmarshal(raw, &witnessSet); err != nil {
		return errors.Wrap(err, "failed to decode witness set")
	}

	if vkeys, ok := witnessSet[WitnessKeyVkey]; ok {
		if bytes.HasPrefix(vkeys, setTagPrefix) {
			t.vkeySetTag = true
			vkeys = vkeys[len(setTagPrefix):]
		}

		var witnesses []VkeyWitness
		if err := decMode.Unmarshal(vkeys, &witnesses); err != nil {
			return errors.Wrap(err, "failed to decode vkey witnesses")
		}
		for _, w := range witnesses {
			if len(w.VKey) != ed25519.PublicKeySize || len(w.Signature) != ed25519.SignatureSize {
				return errors.New("vkey witness has invalid sizes")
			}
		}

		t.vkeyWitnesses = witnesses
		delete(witnessSet, WitnessKeyVkey)
	}

	t.witnessSet = witnessSet
	return nil
}

func (t *Transaction) encodeWitnessSet() ([]byte, error) {
	witnessSet := make(map[uint64]cbor.RawMessage, len(t.witnessSet)+1)
	for k, v := range t.witnessSet {
		witnessSet[k] = v
	}

	if len(t.vkeyWitnesses) > 0 {
		var content any = t.vkeyWitnesses
		if t.vkeySetTag {
			content = cbor.Tag{Number: tagSet, Content: t.vkeyWitnesses}
		}

		vkeys, err := encMode.Marshal(content)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode vkey witnesses")
		}
		witnessSet[WitnessKeyVkey] = vkeys
	}

	out, err := encMode.Marshal(witnessSet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode witness set")
	}
	return out, nil
}

// validateBody checks the body is a map with unsigned keys holding inputs, outputs and fee
func validateBody(body []byte) error {
	if len(body) == 0 || body[0]>>5 != majorTypeMap {
		return errors.New("body is not a map")
	}

	fields := map[uint64]cbor.RawMessage{}
	if err := decMode.Unmarshal(body, &fields); err != nil {
		return errors.Wrap(err, "failed to decode body")
	}

	for _, key := range []uint64{BodyKeyInputs, BodyKeyOutputs, BodyKeyFee} {
		if _, ok := fields[key]; !ok {
			return errors.Errorf("body is missing field %d", key)
		}
	}

	return nil
}

// validateAuxData accepts null, a metadata map or a #6.259 tagged map
func validateAuxData(aux []byte) error {
	if len(aux) == 1 && aux[0] == cborNull {
		return nil
	}

	content := bytes.TrimPrefix(aux, auxDataTagPrefix)
	if len(content) == 0 || content[0]>>5 != majorTypeMap {
		return errors.New("auxiliary data is neither null nor a map")
	}

	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}
