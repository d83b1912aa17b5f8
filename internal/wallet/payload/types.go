package payload

import "github.com/fxamacker/cbor/v2"

const (
	// ArrayPrefix declares a 4-element CBOR array: [body, witness_set, is_valid, auxiliary_data]
	ArrayPrefix = "84"
	// ArraySuffix encodes an empty witness set, is_valid = true and no auxiliary data
	ArraySuffix = "a0f5f6"
)

// DefaultMapPrefixes are the top-level markers of a map-shaped Rosetta payload
// (a transaction body with four or five fields).
//
//nolint:gochecknoglobals // read-only defaults
var DefaultMapPrefixes = []string{"a4", "a5"}

// Kind is the top-level CBOR shape of a decoded payload
type Kind int

const (
	KindOther Kind = iota
	KindMap
	KindArray
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Decoded is the tagged result of decoding a payload once.
// Items is set for KindArray, Text for KindText.
type Decoded struct {
	Kind  Kind
	Raw   cbor.RawMessage
	Items []cbor.RawMessage
	Text  string
}

// Source tells which input shape a normalized envelope came from
type Source string

const (
	SourceMapPayload     Source = "map_payload"
	SourceWrappedPayload Source = "wrapped_payload"
	SourceEnvelope       Source = "envelope"
)

// Result is a normalized, signable envelope
type Result struct {
	Envelope string
	Source   Source
}
