// Package observability provides structured logging for the extraction
// pipeline.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string // debug, info, warn, error
	Format      string // json or console
	Output      io.Writer
	ServiceName string
}

// NewLogger creates a zerolog.Logger with the given configuration.
func NewLogger(cfg LogConfig) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		})
	} else {
		zl = zerolog.New(output)
	}

	zl = zl.Level(parseLevel(cfg.Level)).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()

	return zl
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
