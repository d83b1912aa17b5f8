// Package payload turns a Rosetta unsigned transaction into a signable
// Cardano transaction envelope.
//
// Rosetta construction APIs emit either the bare transaction body (a CBOR map)
// or a CBOR array whose first element is that body as a hex text string,
// followed by Rosetta metadata. Both are spliced into the same envelope
// without re-encoding the body, so the body bytes stay exactly as supplied.
package payload

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

const (
	majorTypeText  = 3
	majorTypeArray = 4
	majorTypeMap   = 5

	envelopeItems = 4
)

// Normalizer produces canonical envelopes from Rosetta payloads
type Normalizer struct {
	mapPrefixes   []string
	allowEnvelope bool
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithMapPrefixes overrides the recognized map-shaped payload prefixes
func WithMapPrefixes(prefixes ...string) Option {
	return func(n *Normalizer) {
		n.mapPrefixes = make([]string, 0, len(prefixes))
		for _, p := range prefixes {
			n.mapPrefixes = append(n.mapPrefixes, strings.ToLower(p))
		}
	}
}

// WithEnvelopePassThrough controls whether an input that already is a
// 4-element envelope is returned unchanged (true) or rejected (false).
func WithEnvelopePassThrough(allow bool) Option {
	return func(n *Normalizer) {
		n.allowEnvelope = allow
	}
}

// New creates a Normalizer. By default a4/a5 payloads are recognized and
// envelopes pass through.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		mapPrefixes:   append([]string(nil), DefaultMapPrefixes...),
		allowEnvelope: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the signable envelope hex for unsignedTx
func (n *Normalizer) Normalize(ctx context.Context, unsignedTx string) (string, error) {
	res, err := n.NormalizeDetailed(ctx, unsignedTx)
	if err != nil {
		return "", err
	}
	return res.Envelope, nil
}

// NormalizeDetailed is Normalize but also reports which shape the input had
func (n *Normalizer) NormalizeDetailed(ctx context.Context, unsignedTx string) (Result, error) {
	log := util.LogFromContext(ctx).With().Str("component", "payload_normalizer").Logger()

	candidate, raw, err := decodeHex(unsignedTx)
	if err != nil {
		return Result{}, err
	}

	if n.hasMapPrefix(candidate) {
		log.Debug().Msg("Map-shaped payload, wrapping into envelope")
		return Result{Envelope: Splice(candidate), Source: SourceMapPayload}, nil
	}

	decoded, err := Classify(raw)
	if err != nil {
		return Result{}, txerrors.NewFormat("payload is not valid CBOR", err)
	}

	if decoded.Kind != KindArray {
		return Result{}, txerrors.NewFormat("unexpected top-level "+decoded.Kind.String(), nil)
	}

	return n.normalizeArray(ctx, candidate, decoded)
}

func (n *Normalizer) normalizeArray(ctx context.Context, candidate string, decoded Decoded) (Result, error) {
	log := util.LogFromContext(ctx).With().Str("component", "payload_normalizer").Logger()

	if len(decoded.Items) == 0 {
		return Result{}, txerrors.NewFormat("empty array", nil)
	}

	first, err := Classify(decoded.Items[0])
	if err != nil {
		return Result{}, txerrors.NewFormat("invalid first array element", err)
	}

	switch first.Kind {
	case KindText:
		body, bodyRaw, err := decodeHex(first.Text)
		if err != nil {
			return Result{}, err
		}
		if len(bodyRaw) == 0 || bodyRaw[0]>>5 != majorTypeMap {
			return Result{}, txerrors.NewFormat("embedded transaction body is not a CBOR map", nil)
		}
		log.Debug().Int("array_items", len(decoded.Items)).Msg("Rosetta payload array, wrapping embedded body")
		return Result{Envelope: Splice(body), Source: SourceWrappedPayload}, nil

	case KindMap:
		if len(decoded.Items) != envelopeItems {
			return Result{}, txerrors.NewFormat("array with map body is not a 4-element envelope", nil)
		}
		if !n.allowEnvelope {
			return Result{}, txerrors.NewFormat("input is already an envelope", nil)
		}
		log.Debug().Msg("Input already is an envelope, passing through")
		return Result{Envelope: candidate, Source: SourceEnvelope}, nil

	default:
		return Result{}, txerrors.NewFormat("first array element is "+first.Kind.String(), nil)
	}
}

func (n *Normalizer) hasMapPrefix(candidate string) bool {
	for _, prefix := range n.mapPrefixes {
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	return false
}

// Splice wraps a hex encoded transaction body into an envelope
func Splice(body string) string {
	return ArrayPrefix + body + ArraySuffix
}

// Classify decodes a single CBOR data item into its tagged shape.
// Trailing bytes are an error.
func Classify(raw []byte) (Decoded, error) {
	if len(raw) == 0 {
		return Decoded{}, errors.New("empty input")
	}
	if err := cbor.Wellformed(raw); err != nil {
		return Decoded{}, errors.Wrap(err, "malformed CBOR")
	}

	decoded := Decoded{Kind: KindOther, Raw: cbor.RawMessage(raw)}

	switch raw[0] >> 5 {
	case majorTypeMap:
		decoded.Kind = KindMap
	case majorTypeArray:
		var items []cbor.RawMessage
		if err := cbor.Unmarshal(raw, &items); err != nil {
			return Decoded{}, errors.Wrap(err, "failed to decode array")
		}
		decoded.Kind = KindArray
		decoded.Items = items
	case majorTypeText:
		var text string
		if err := cbor.Unmarshal(raw, &text); err != nil {
			return Decoded{}, errors.Wrap(err, "failed to decode text string")
		}
		decoded.Kind = KindText
		decoded.Text = text
	}

	return decoded, nil
}

// decodeHex returns the trimmed, lower-cased hex string and its bytes
func decodeHex(s string) (string, []byte, error) {
	candidate := strings.ToLower(strings.TrimSpace(s))
	if candidate == "" {
		return "", nil, txerrors.NewFormat("empty hex string", nil)
	}

	raw, err := hex.DecodeString(candidate)
	if err != nil {
		return "", nil, txerrors.NewFormat("malformed hex", err)
	}

	return candidate, raw, nil
}
