package wallet_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/test"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/keystore"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func newKeystore(t *testing.T) keystore.Service {
	t.Helper()

	s, err := keystore.NewService(filepath.Join(t.TempDir(), "keystore.json"), keystore.WithScryptParams(keystore.LightScryptParams()))
	require.NoError(t, err)
	return s
}

// answers returns a PasswordReader replying with the given answers in order
func answers(t *testing.T, replies ...string) wallet.PasswordReader {
	t.Helper()

	return func(_ string) (string, error) {
		if len(replies) == 0 {
			return "", errors.New("unexpected prompt")
		}
		reply := replies[0]
		replies = replies[1:]
		return reply, nil
	}
}

func TestInitializeSeedFromKeystore(t *testing.T) {
	ctx := t.Context()
	ks := newKeystore(t)

	_, err := wallet.CreateKeystore(ctx, ks, test.ZeroEntropyMnemonic, "", answers(t, "password1", "password1"))
	require.NoError(t, err)

	seedManager := seed.NewManager()
	require.NoError(t, wallet.InitializeSeed(ctx, config.Wallet{}, seedManager, ks, answers(t, "password1")))
	assert.True(t, seedManager.IsInitialized())

	root, err := seedManager.GetRootKey()
	require.NoError(t, err)
	defer root.Clear()

	payment, err := root.DerivePath(address.PaymentPath(0, 0).Indices()...)
	require.NoError(t, err)
	assert.Equal(t, test.ZeroEntropyPaymentKey, payment.PublicKeyHex())
}

func TestInitializeSeedConfiguredPassword(t *testing.T) {
	ctx := t.Context()
	ks := newKeystore(t)

	_, err := wallet.CreateKeystore(ctx, ks, test.CIP19Mnemonic, "password1", nil)
	require.NoError(t, err)

	seedManager := seed.NewManager()
	cfg := config.Wallet{KeystorePassword: "password1"}
	require.NoError(t, wallet.InitializeSeed(ctx, cfg, seedManager, ks, nil))
	assert.True(t, seedManager.IsInitialized())
}

func TestInitializeSeedWrongPassword(t *testing.T) {
	ctx := t.Context()
	ks := newKeystore(t)

	_, err := wallet.CreateKeystore(ctx, ks, test.CIP19Mnemonic, "password1", nil)
	require.NoError(t, err)

	seedManager := seed.NewManager()
	err = wallet.InitializeSeed(ctx, config.Wallet{}, seedManager, ks, answers(t, "password2"))
	require.ErrorIs(t, err, keystore.ErrInvalidPassword)
	assert.False(t, seedManager.IsInitialized())
}

func TestInitializeSeedWithoutSource(t *testing.T) {
	err := wallet.InitializeSeed(t.Context(), config.Wallet{}, seed.NewManager(), nil, nil)
	require.Error(t, err)
}

func TestInitializeSeedInvalidMnemonic(t *testing.T) {
	err := wallet.InitializeSeed(t.Context(), config.Wallet{Mnemonic: "abandon abandon"}, seed.NewManager(), nil, nil)
	require.Error(t, err)
	assert.True(t, txerrors.IsCrypto(err))
}

func TestCreateKeystoreGeneratesMnemonic(t *testing.T) {
	mnemonic, err := wallet.CreateKeystore(t.Context(), newKeystore(t), "", "password1", nil)
	require.NoError(t, err)

	assert.Len(t, strings.Fields(mnemonic), 24)
	assert.True(t, bip39.IsMnemonicValid(mnemonic))
}

func TestCreateKeystoreErrors(t *testing.T) {
	ctx := t.Context()

	_, err := wallet.CreateKeystore(ctx, newKeystore(t), "abandon abandon abandon", "password1", nil)
	require.Error(t, err)
	assert.True(t, txerrors.IsCrypto(err))

	_, err = wallet.CreateKeystore(ctx, newKeystore(t), test.CIP19Mnemonic, "short", nil)
	require.Error(t, err)

	_, err = wallet.CreateKeystore(ctx, newKeystore(t), test.CIP19Mnemonic, "", answers(t, "password1", "password2"))
	require.Error(t, err)

	ks := newKeystore(t)
	_, err = wallet.CreateKeystore(ctx, ks, test.CIP19Mnemonic, "password1", nil)
	require.NoError(t, err)
	_, err = wallet.CreateKeystore(ctx, ks, test.CIP19Mnemonic, "password1", nil)
	require.ErrorIs(t, err, keystore.ErrAlreadyExists)
}

func TestGenerateMnemonic(t *testing.T) {
	first, err := wallet.GenerateMnemonic()
	require.NoError(t, err)
	second, err := wallet.GenerateMnemonic()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, bip39.IsMnemonicValid(first))
}
