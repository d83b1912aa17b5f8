package keystore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExclusiveRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "wallet.json")
	errDiskFull := errors.New("disk full")

	err := writeExclusive(path, func(w io.Writer) error {
		_, _ = w.Write([]byte(`{"version":`))
		return errDiskFull
	})
	require.ErrorIs(t, err, errDiskFull)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// a retry is not blocked by the failed attempt
	err = writeExclusive(path, func(w io.Writer) error {
		_, err := w.Write([]byte("{}"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteExclusiveRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o600))

	err := writeExclusive(path, func(io.Writer) error { return nil })
	require.ErrorIs(t, err, os.ErrExist)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
