package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		description string
		level       string
		want        zerolog.Level
	}{
		{description: "debug", level: "debug", want: zerolog.DebugLevel},
		{description: "info", level: "info", want: zerolog.InfoLevel},
		{description: "warn", level: "warn", want: zerolog.WarnLevel},
		{description: "error", level: "error", want: zerolog.ErrorLevel},
		{description: "unknown falls back to info", level: "verbose", want: zerolog.InfoLevel},
		{description: "empty falls back to info", level: "", want: zerolog.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.level))
		})
	}
}

func TestWriterConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(Writer(&buf, ""))

	logger.Info().Str("handler", "/ping").Msg("adding command handler to registry")

	assert.Contains(t, buf.String(), "adding command handler to registry")
	assert.Contains(t, buf.String(), "/ping")
}

func TestWriterWithFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "bot.log")
	logger := zerolog.New(Writer(&buf, path))

	logger.Info().Msg("bot listening")

	assert.Contains(t, buf.String(), "bot listening")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"bot listening"`)
}

func TestSetup(t *testing.T) {
	previous := zerolog.GlobalLevel()
	previousCtxLogger := zerolog.DefaultContextLogger
	previousLogger := log.Logger
	t.Cleanup(func() {
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previous)
		zerolog.DefaultContextLogger = previousCtxLogger
	})

	Setup("debug", "")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Setup("error", "")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	assert.Same(t, &log.Logger, zerolog.Ctx(context.Background()))
}
