package address_test

import (
	"testing"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivationPathString(t *testing.T) {
	assert.Equal(t, "m/1852'/1815'/0'/0/0", address.PaymentPath(0, 0).String())
	assert.Equal(t, "m/1852'/1815'/3'/2/7", address.StakePath(3, 7).String())
	assert.Equal(t, []uint32{0x8000073c, 0x80000717, 0x80000000, 0, 0}, address.PaymentPath(0, 0).Indices())
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want address.DerivationPath
	}{
		{"m/1852'/1815'/0'/0/0", address.PaymentPath(0, 0)},
		{"m/1852h/1815h/4h/2/9", address.StakePath(4, 9)},
		{" m/1852'/1815'/0'/1/3 ", address.DerivationPath{Purpose: 1852, CoinType: 1815, Role: address.RoleChange, Index: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := address.ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := address.ParsePath(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParsePathInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"1852'/1815'/0'/0/0",
		"m/1852'/1815'/0'/0",
		"m/1852'/1815'/0'/0/0/1",
		"m/1852/1815'/0'/0/0",
		"m/1852'/1815'/0'/0'/0",
		"m/1852'/1815'/x'/0/0",
		"m/1852'/1815'/2147483648'/0/0",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := address.ParsePath(in)
			require.Error(t, err)
		})
	}
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "payment", address.PaymentPath(0, 0).RoleName())
	assert.Equal(t, "stake", address.StakePath(0, 0).RoleName())
	assert.Equal(t, "role_9", address.DerivationPath{Role: 9}.RoleName())
}

func TestParseNetwork(t *testing.T) {
	n, err := address.ParseNetwork("mainnet")
	require.NoError(t, err)
	assert.Equal(t, address.Mainnet, n)

	n, err = address.ParseNetwork("preprod")
	require.NoError(t, err)
	assert.Equal(t, address.Testnet, n)

	_, err = address.ParseNetwork("moon")
	require.Error(t, err)
}
