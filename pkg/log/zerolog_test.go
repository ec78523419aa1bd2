package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Info("bean configured",
		String("bean", "server"),
		Strings("missing", []string{"host", "port"}),
		Int("applied", 3),
		Bool("ok", true),
		Duration("took", 2*time.Second),
		Err(errors.New("boom")),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "bean configured", entry["message"])
	assert.Equal(t, "server", entry["bean"])
	assert.Equal(t, []any{"host", "port"}, entry["missing"])
	assert.Equal(t, float64(3), entry["applied"])
	assert.Equal(t, true, entry["ok"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry, "took")
}

func TestZerologAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	z.Debug("hidden")
	assert.Zero(t, buf.Len())

	z.Warn("shown")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("a")
	l.Info("b", String("k", "v"))
	l.Warn("c")
	l.Error("d", Err(errors.New("x")))
}
