package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ivsremote/internal/shared/types"
)

// captureGlobal points the global logger at a buffer and restores it
// after the test.
func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestInit(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	require.NoError(t, Init(types.LogConf{Level: "debug"}))
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())

	// An unknown level falls back to info instead of failing.
	require.NoError(t, Init(types.LogConf{Level: "chatty"}))
	assert.Equal(t, zerolog.InfoLevel, log.Logger.GetLevel())
}

func TestEventFields(t *testing.T) {
	buf := captureGlobal(t)

	Info().
		Str("command", "Swing").
		Int("reply_bytes", 2).
		Dur("elapsed", 1500*time.Millisecond).
		Msg("exchange complete")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"command":"Swing"`)
	assert.Contains(t, out, `"reply_bytes":2`)
	assert.Contains(t, out, `"elapsed":1500`)
	assert.Contains(t, out, `"message":"exchange complete"`)
}

func TestEventErr(t *testing.T) {
	buf := captureGlobal(t)

	Error().Err(errors.New("connection refused")).Msg("dial failed")

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"error":"connection refused"`)
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t)

	l := WithComponent("rcmd-client")
	l.Info().Msg("connected")

	assert.Contains(t, buf.String(), `"component":"rcmd-client"`)
}
