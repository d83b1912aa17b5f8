package address_test

import (
	"encoding/hex"
	"testing"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const cip19Mnemonic = "test walk nut penalty hip pave soap entry language right filter choice"

func rootKey(t *testing.T, mnemonic string) *hdkey.ExtendedPrivateKey {
	t.Helper()

	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	require.NoError(t, err)

	root, err := hdkey.FromBIP39Entropy(entropy, nil)
	require.NoError(t, err)

	return root
}

func TestDerivePaymentKeyHash(t *testing.T) {
	ctx := t.Context()
	svc := address.NewService()
	root := rootKey(t, cip19Mnemonic)

	pub, err := svc.DerivePublicKey(ctx, root, address.PaymentPath(address.DefaultAccount, address.DefaultIndex))
	require.NoError(t, err)

	assert.Equal(t, "9493315cd92eb5d8c4304e67b7e16ae36d61d34502694657811a2c8e", hex.EncodeToString(svc.KeyHash(pub)))
}

func TestDeriveOtherAccountAndIndex(t *testing.T) {
	ctx := t.Context()
	svc := address.NewService()
	root := rootKey(t, cip19Mnemonic)

	pub, err := svc.DerivePublicKey(ctx, root, address.PaymentPath(0, 5))
	require.NoError(t, err)
	assert.Equal(t, "2ce5ad7fe8d0b4a8dedfb42e51f7779adf56943a1b4285ef3c6b434ce2618ded", hex.EncodeToString(pub))

	pub, err = svc.DerivePublicKey(ctx, root, address.PaymentPath(1, 0))
	require.NoError(t, err)
	assert.Equal(t, "b5d5ba48b46e3e8d89f8203f730cd6ca06f71b56762430b45f1a5858e7baffce", hex.EncodeToString(pub))
}

func TestAddresses(t *testing.T) {
	ctx := t.Context()
	svc := address.NewService()
	root := rootKey(t, cip19Mnemonic)

	payment, err := svc.DerivePublicKey(ctx, root, address.PaymentPath(0, 0))
	require.NoError(t, err)
	stake, err := svc.DerivePublicKey(ctx, root, address.StakePath(0, 0))
	require.NoError(t, err)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{
			name: "enterprise mainnet",
			fn:   func() (string, error) { return svc.EnterpriseAddress(address.Mainnet, payment) },
			want: "addr1vx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzers66hrl8",
		},
		{
			name: "enterprise testnet",
			fn:   func() (string, error) { return svc.EnterpriseAddress(address.Testnet, payment) },
			want: "addr_test1vz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzerspjrlsz",
		},
		{
			name: "base testnet",
			fn:   func() (string, error) { return svc.BaseAddress(address.Testnet, payment, stake) },
			want: "addr_test1qz2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3jcu5d8ps7zex2k2xt3uqxgjqnnj83ws8lhrn648jjxtwq2ytjqp",
		},
		{
			name: "base mainnet",
			fn:   func() (string, error) { return svc.BaseAddress(address.Mainnet, payment, stake) },
			want: "addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3jcu5d8ps7zex2k2xt3uqxgjqnnj83ws8lhrn648jjxtwqfjkjv7",
		},
		{
			name: "reward testnet",
			fn:   func() (string, error) { return svc.RewardAddress(address.Testnet, stake) },
			want: "stake_test1uqevw2xnsc0pvn9t9r9c7qryfqfeerchgrlm3ea2nefr9hqp8n5xl",
		},
		{
			name: "reward mainnet",
			fn:   func() (string, error) { return svc.RewardAddress(address.Mainnet, stake) },
			want: "stake1uyevw2xnsc0pvn9t9r9c7qryfqfeerchgrlm3ea2nefr9hqxdekzz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveWithoutRoot(t *testing.T) {
	_, err := address.NewService().DerivePrivateKey(t.Context(), nil, address.PaymentPath(0, 0))
	require.Error(t, err)
}

func TestDeriveRejectsOutOfRangePath(t *testing.T) {
	ctx := t.Context()
	svc := address.NewService()
	root := rootKey(t, cip19Mnemonic)

	for name, path := range map[string]address.DerivationPath{
		"account": address.PaymentPath(hdkey.HardenedOffset, 0),
		"index":   address.PaymentPath(0, hdkey.HardenedOffset+5),
		"role":    {Purpose: address.PurposeCIP1852, CoinType: address.CoinTypeADA, Role: hdkey.Harden(2)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.DerivePrivateKey(ctx, root, path)
			require.Error(t, err)
			assert.True(t, txerrors.IsCrypto(err))
			assert.Contains(t, err.Error(), "out of range")
		})
	}

	// account 2^31 must not silently derive account 0
	_, err := svc.DerivePublicKey(ctx, root, address.PaymentPath(hdkey.HardenedOffset, 0))
	require.Error(t, err)
}
