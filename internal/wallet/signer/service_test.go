package signer_test

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/chapool/rosetta-signer/internal/test"
	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/signer"
	"github.com/chapool/rosetta-signer/internal/wallet/tx"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T) signer.Service {
	t.Helper()

	seedManager := seed.NewManager()
	require.NoError(t, seedManager.Initialize(test.ZeroEntropyMnemonic, ""))
	t.Cleanup(seedManager.Clear)

	s, err := signer.NewService(seedManager, address.NewService())
	require.NoError(t, err)

	return s
}

func unsignedEnvelope(t *testing.T) []byte {
	t.Helper()

	b, err := hex.DecodeString("84" + test.MapPayload + "a0f5f6")
	require.NoError(t, err)
	return b
}

func TestSignTransactionPaymentKey(t *testing.T) {
	res, err := newSigner(t).SignTransaction(t.Context(), &signer.SignRequest{
		Envelope: unsignedEnvelope(t),
		Paths:    []address.DerivationPath{address.PaymentPath(0, 0)},
	})
	require.NoError(t, err)

	assert.Equal(t, test.SignedMapPayload(), hex.EncodeToString(res.SignedTx))
	assert.Equal(t, test.MapPayloadHash, res.TxHash)

	require.Len(t, res.Witnesses, 1)
	assert.True(t, res.Witnesses[0].Added)
	assert.Equal(t, test.ZeroEntropyPaymentKey, hex.EncodeToString(res.Witnesses[0].PublicKey))
	assert.Equal(t, test.ZeroEntropyPaymentKeyHash, hex.EncodeToString(res.Witnesses[0].KeyHash))
}

func TestSignTransactionPaymentAndStakeKeys(t *testing.T) {
	res, err := newSigner(t).SignTransaction(t.Context(), &signer.SignRequest{
		Envelope: unsignedEnvelope(t),
		Paths:    []address.DerivationPath{address.PaymentPath(0, 0), address.StakePath(0, 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, test.DoubleSignedMapPayload(), hex.EncodeToString(res.SignedTx))

	signed, err := tx.Parse(res.SignedTx)
	require.NoError(t, err)

	hash := signed.Hash()
	for _, w := range signed.VkeyWitnesses() {
		assert.True(t, ed25519.Verify(w.VKey, hash[:], w.Signature))
	}
}

func TestSignTransactionDuplicatePath(t *testing.T) {
	res, err := newSigner(t).SignTransaction(t.Context(), &signer.SignRequest{
		Envelope: unsignedEnvelope(t),
		Paths:    []address.DerivationPath{address.PaymentPath(0, 0), address.PaymentPath(0, 0)},
	})
	require.NoError(t, err)

	assert.Equal(t, test.SignedMapPayload(), hex.EncodeToString(res.SignedTx))
	require.Len(t, res.Witnesses, 2)
	assert.True(t, res.Witnesses[0].Added)
	assert.False(t, res.Witnesses[1].Added)
}

func TestSignTransactionAlreadySigned(t *testing.T) {
	signedOnce, err := hex.DecodeString(test.SignedMapPayload())
	require.NoError(t, err)

	res, err := newSigner(t).SignTransaction(t.Context(), &signer.SignRequest{
		Envelope: signedOnce,
		Paths:    []address.DerivationPath{address.PaymentPath(0, 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, test.SignedMapPayload(), hex.EncodeToString(res.SignedTx))
	assert.False(t, res.Witnesses[0].Added)
}

func TestSignTransactionDeterministic(t *testing.T) {
	req := &signer.SignRequest{
		Envelope: unsignedEnvelope(t),
		Paths:    []address.DerivationPath{address.PaymentPath(0, 3)},
	}

	first, err := newSigner(t).SignTransaction(t.Context(), req)
	require.NoError(t, err)
	second, err := newSigner(t).SignTransaction(t.Context(), req)
	require.NoError(t, err)

	assert.Equal(t, first.SignedTx, second.SignedTx)
}

func TestSignTransactionMalformedEnvelope(t *testing.T) {
	body, err := hex.DecodeString(test.MapPayload)
	require.NoError(t, err)

	_, err = newSigner(t).SignTransaction(t.Context(), &signer.SignRequest{
		Envelope: body,
		Paths:    []address.DerivationPath{address.PaymentPath(0, 0)},
	})
	require.Error(t, err)
	assert.True(t, txerrors.IsCrypto(err))
}

func TestSignTransactionInvalidRequest(t *testing.T) {
	s := newSigner(t)

	_, err := s.SignTransaction(t.Context(), &signer.SignRequest{})
	require.Error(t, err)

	_, err = s.SignTransaction(t.Context(), &signer.SignRequest{Envelope: unsignedEnvelope(t)})
	require.Error(t, err)
}

func TestSignTransactionSeedNotInitialized(t *testing.T) {
	s, err := signer.NewService(seed.NewManager(), address.NewService())
	require.NoError(t, err)

	_, err = s.SignTransaction(t.Context(), &signer.SignRequest{
		Envelope: unsignedEnvelope(t),
		Paths:    []address.DerivationPath{address.PaymentPath(0, 0)},
	})
	require.ErrorIs(t, err, seed.ErrNotInitialized)
}
