package wallet

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/tx"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrKeyHashMismatch means the mnemonic (or passphrase) does not derive the expected payment key
var ErrKeyHashMismatch = errors.New("derived payment key hash does not match expected key hash")

// VerifyExpectedKeyHash derives the key at path and compares its hash with expected (hex).
// It guards against signing with the wrong mnemonic or passphrase, which would
// otherwise produce a well-formed transaction the node rejects.
func VerifyExpectedKeyHash(ctx context.Context, seedManager seed.Manager, addressService address.Service, path address.DerivationPath, expected string) error {
	log := log.With().Str("component", "key_verification").Logger()

	root, err := seedManager.GetRootKey()
	if err != nil {
		return errors.Wrap(err, "failed to get root key")
	}
	defer root.Clear()

	pub, err := addressService.DerivePublicKey(ctx, root, path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to derive verification key")
		return errors.Wrap(err, "failed to derive verification key")
	}

	derived := hex.EncodeToString(addressService.KeyHash(pub))
	if derived != strings.ToLower(strings.TrimSpace(expected)) {
		log.Warn().
			Str("derived", derived).
			Str("expected", expected).
			Str("path", path.String()).
			Msg("Key verification failed: key hashes do not match")
		return txerrors.NewCrypto("key verification failed", ErrKeyHashMismatch)
	}

	log.Debug().Str("key_hash", derived).Msg("Key verification successful")
	return nil
}

// VerifyWitnesses checks every vkey witness of transaction against its body hash
func VerifyWitnesses(transaction *tx.Transaction) []WitnessCheck {
	checks := transaction.Verify()
	out := make([]WitnessCheck, 0, len(checks))
	for _, c := range checks {
		out = append(out, ToWitnessCheck(c))
	}
	return out
}
