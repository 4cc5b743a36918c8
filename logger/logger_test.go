package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(LevelWarn))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewLoggerTo(t *testing.T) {
	t.Setenv(EnvLogLevel, LevelWarn)
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "test")

	log.Info().Msg("не должно попасть в журнал")
	assert.Zero(t, buf.Len())

	log.Warn().Int("paradigms", 3).Msg("предупреждение")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry["component"])
	assert.EqualValues(t, 3, entry["paradigms"])
}
