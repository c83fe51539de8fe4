package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(LOG_LEVEL_WARN))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewLoggerWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	t.Setenv(LevelEnv, LOG_LEVEL_DEBUG)

	log := NewLogger("Test")
	log.Debug().Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "Test", line["component"])
	require.Equal(t, "hello", line["message"])
}

func TestHandlePanicRecovers(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	func() {
		defer HandlePanic(log)
		panic("boom")
	}()

	require.Contains(t, buf.String(), "boom")
}
