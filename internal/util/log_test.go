package util_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLogFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := util.WithLogger(t.Context(), zerolog.New(&buf))

	util.LogFromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestLogFromContextFallsBackToGlobal(t *testing.T) {
	assert.Same(t, &log.Logger, util.LogFromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, &log.Logger, util.LogFromContext(nil))
}
