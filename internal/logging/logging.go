// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 50
	maxBackups = 3
	maxAgeDays = 7
)

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Writer returns the log output: console on stderr, plus a rotating JSON
// file when file is set.
func Writer(stderr io.Writer, file string) io.Writer {
	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	if file == "" {
		return console
	}

	return zerolog.MultiLevelWriter(console, &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	})
}

// Setup sets the global level and replaces the global logger, which also
// serves contexts that carry no logger of their own.
func Setup(level, file string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(Writer(os.Stderr, file)).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}
