package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "%q", in)
	}
}

func TestNewWritesToEveryWriter(t *testing.T) {
	var console, file bytes.Buffer
	log := New("info", &console, &file)

	log.Debug().Msg("hidden")
	log.Info().Str("side", "host").Msg("turn advanced")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "turn advanced")
	assert.Contains(t, file.String(), "turn advanced")
	assert.Contains(t, file.String(), "side=host")
	assert.NotContains(t, file.String(), "\x1b[", "file output is uncolored")
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ginseng.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}
