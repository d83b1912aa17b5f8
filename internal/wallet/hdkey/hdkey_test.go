package hdkey_test

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const (
	// CIP-19 test mnemonic; its 1852'/1815'/0'/0/0 key is addr_vk1w0l2sr2zgfm26ztc6nl9xy8ghsk5sh6ldwemlpmp9xylzy4dtf7st80zhd
	cip19Mnemonic   = "test walk nut penalty hip pave soap entry language right filter choice"
	cip19PaymentKey = "73fea80d424276ad0978d4fe5310e8bc2d485f5f6bb3bf87612989f112ad5a7d"

	zeroEntropyPaymentKey = "63c5d69570349e4233a0575811464f0e8a3fd329abe76e9bdc3d3f1b95982179"
	zeroEntropyStakeKey   = "366598ec425ab8140830c4b5f91716d0f7b113fd7013ef3c90487e9dd1535437"

	sampleBodyHash  = "60434a3e586236dd4108866af64842d8167072a81f8e31e13fce39d961b319fc"
	sampleSignature = "c97d41642f308e2d69013319a98e4022ac1abb07d3ff234ea13be524a2be57279095149654e20ac53a40ce33384e584be38385ce81fd4d936fd4e5a688e5ee0b"
)

func accountKey(t *testing.T, entropy []byte) *hdkey.ExtendedPrivateKey {
	t.Helper()

	root, err := hdkey.FromBIP39Entropy(entropy, nil)
	require.NoError(t, err)

	account, err := root.DerivePath(hdkey.Harden(1852), hdkey.Harden(1815), hdkey.Harden(0))
	require.NoError(t, err)

	return account
}

func TestHarden(t *testing.T) {
	assert.Equal(t, uint32(0x8000073c), hdkey.Harden(1852))
	assert.Equal(t, uint32(0x80000717), hdkey.Harden(1815))
	assert.True(t, hdkey.IsHardened(hdkey.Harden(0)))
	assert.False(t, hdkey.IsHardened(2))
}

func TestDeriveCIP19PaymentKey(t *testing.T) {
	entropy, err := bip39.EntropyFromMnemonic(cip19Mnemonic)
	require.NoError(t, err)

	payment, err := accountKey(t, entropy).DerivePath(0, 0)
	require.NoError(t, err)

	assert.Equal(t, cip19PaymentKey, payment.PublicKeyHex())
}

func TestDeriveZeroEntropy(t *testing.T) {
	account := accountKey(t, make([]byte, 32))

	payment, err := account.DerivePath(0, 0)
	require.NoError(t, err)
	assert.Equal(t, zeroEntropyPaymentKey, payment.PublicKeyHex())

	stake, err := account.DerivePath(2, 0)
	require.NoError(t, err)
	assert.Equal(t, zeroEntropyStakeKey, stake.PublicKeyHex())
}

func TestDeriveIsDeterministic(t *testing.T) {
	a, err := accountKey(t, make([]byte, 16)).DerivePath(0, 7)
	require.NoError(t, err)
	b, err := accountKey(t, make([]byte, 16)).DerivePath(0, 7)
	require.NoError(t, err)

	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Len(t, a.Bytes(), hdkey.ExtendedKeySize)
}

func TestPassphraseChangesRoot(t *testing.T) {
	plain, err := hdkey.FromBIP39Entropy(make([]byte, 32), nil)
	require.NoError(t, err)
	withPass, err := hdkey.FromBIP39Entropy(make([]byte, 32), []byte("foo"))
	require.NoError(t, err)

	assert.NotEqual(t, plain.PublicKeyHex(), withPass.PublicKeyHex())
}

func TestSignIsDeterministicAndVerifies(t *testing.T) {
	payment, err := accountKey(t, make([]byte, 32)).DerivePath(0, 0)
	require.NoError(t, err)

	msg, err := hex.DecodeString(sampleBodyHash)
	require.NoError(t, err)

	sig := payment.Sign(msg)
	assert.Equal(t, sampleSignature, hex.EncodeToString(sig))
	assert.True(t, ed25519.Verify(payment.PublicKey(), msg, sig))

}

func TestRawKeySignsLikeExtendedKey(t *testing.T) {
	payment, err := accountKey(t, make([]byte, 32)).DerivePath(0, 0)
	require.NoError(t, err)

	msg, err := hex.DecodeString(sampleBodyHash)
	require.NoError(t, err)

	raw := payment.RawKey()
	assert.Equal(t, payment.PublicKey(), raw.PublicKey())
	assert.Equal(t, sampleSignature, hex.EncodeToString(raw.Sign(msg)))

	raw.Clear()
	assert.Equal(t, zeroEntropyPaymentKey, payment.PublicKeyHex())
}

func TestInvalidInput(t *testing.T) {
	_, err := hdkey.FromBIP39Entropy(nil, nil)
	require.ErrorIs(t, err, hdkey.ErrInvalidEntropy)

	_, err = hdkey.New(make([]byte, 64))
	require.ErrorIs(t, err, hdkey.ErrInvalidKeySize)
}

func TestNewRoundTrip(t *testing.T) {
	root, err := hdkey.FromBIP39Entropy(make([]byte, 32), nil)
	require.NoError(t, err)

	restored, err := hdkey.New(root.Bytes())
	require.NoError(t, err)
	assert.Equal(t, root.PublicKeyHex(), restored.PublicKeyHex())
	assert.Equal(t, root.Bytes(), restored.Bytes())

	restored.Clear()
	assert.Equal(t, make([]byte, hdkey.ExtendedKeySize), restored.Bytes())
}
