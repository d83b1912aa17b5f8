package signer

import (
	"context"
	"encoding/hex"

	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
	"github.com/chapool/rosetta-signer/internal/wallet/tx"
	"github.com/pkg/errors"
)

// signFixedTransaction parses the envelope, rebuilds it around the body's own
// bytes and appends one vkey witness per path
func (s *service) signFixedTransaction(ctx context.Context, req *SignRequest, root *hdkey.ExtendedPrivateKey) (*SignResponse, error) {
	log := util.LogFromContext(ctx).With().Str("component", "signer").Logger()

	parsed, err := tx.Parse(req.Envelope)
	if err != nil {
		return nil, err
	}

	transaction, err := parsed.Fixed()
	if err != nil {
		return nil, err
	}
	txHash := transaction.HashHex()

	witnesses := make([]Witness, 0, len(req.Paths))
	for _, path := range req.Paths {
		witness, err := s.witness(ctx, transaction, root, path)
		if err != nil {
			return nil, err
		}

		log.Debug().
			Str("tx_hash", txHash).
			Str("path", path.String()).
			Str("key_hash", hex.EncodeToString(witness.KeyHash)).
			Bool("added", witness.Added).
			Msg("Signed transaction body")

		witnesses = append(witnesses, witness)
	}

	// Encode transaction to CBOR
	signed, err := transaction.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode signed transaction")
	}

	return &SignResponse{
		SignedTx:  signed,
		TxHash:    txHash,
		Witnesses: witnesses,
	}, nil
}

func (s *service) witness(ctx context.Context, transaction *tx.Transaction, root *hdkey.ExtendedPrivateKey, path address.DerivationPath) (Witness, error) {
	key, err := s.addressService.DerivePrivateKey(ctx, root, path)
	if err != nil {
		return Witness{}, errors.Wrapf(err, "failed to derive key %s", path)
	}

	raw := key.RawKey()
	key.Clear()
	defer raw.Clear()

	added, err := transaction.SignAndAddVkeyWitness(raw)
	if err != nil {
		return Witness{}, err
	}

	pub := raw.PublicKey()
	return Witness{
		Path:      path,
		PublicKey: pub,
		KeyHash:   s.addressService.KeyHash(pub),
		Added:     added,
	}, nil
}
