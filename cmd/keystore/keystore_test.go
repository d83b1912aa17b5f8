package keystore_test

import (
	"bytes"
	"testing"

	"github.com/chapool/rosetta-signer/cmd/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystoreCommandRequiresPath(t *testing.T) {
	t.Setenv("SIGNER_WALLET_KEYSTORE_PATH", "")

	for _, sub := range []string{"create", "import"} {
		t.Run(sub, func(t *testing.T) {
			cmd := keystore.New()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{sub})

			err := cmd.ExecuteContext(t.Context())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no keystore path")
		})
	}
}

func TestKeystoreCommandGroupHelp(t *testing.T) {
	var out bytes.Buffer
	cmd := keystore.New()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Contains(t, out.String(), "create")
	assert.Contains(t, out.String(), "import")
}
