// Package txerrors holds the two error kinds the signing pipeline reports.
//
// A FormatError means the supplied transaction hex is in neither recognized
// shape; nothing has touched key material yet. A CryptoError means mnemonic
// decoding, key derivation, transaction parsing or signing failed. Both are
// deterministic: retrying with the same input reproduces them.
package txerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatError reports an unrecognized payload format
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unrecognized transaction format: %s: %v", e.Reason, e.Err)
	}
	return "unrecognized transaction format: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// CryptoError reports a failure in key handling or signing
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewFormat creates a FormatError
func NewFormat(reason string, err error) error {
	return &FormatError{Reason: reason, Err: err}
}

// NewCrypto creates a CryptoError
func NewCrypto(op string, err error) error {
	return &CryptoError{Op: op, Err: err}
}

// IsFormat reports whether err (or anything it wraps) is a FormatError
func IsFormat(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

// IsCrypto reports whether err (or anything it wraps) is a CryptoError
func IsCrypto(err error) bool {
	var target *CryptoError
	return errors.As(err, &target)
}

// Kind returns a short label for metrics and logs
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsFormat(err):
		return "format"
	case IsCrypto(err):
		return "crypto"
	default:
		return "other"
	}
}
