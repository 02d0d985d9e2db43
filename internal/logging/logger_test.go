package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zerolog.Disabled, parseLevel("disabled"))
}

func TestCtxCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: "info", Format: "json"}) })

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))

	Ctx(ctx).Info().Str("movie", "Blade Runner").Msg("rated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "Blade Runner", entry["movie"])
	assert.Equal(t, "rated", entry["message"])
}

func TestRequestIDMissing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.NotEmpty(t, NewRequestID())
}
