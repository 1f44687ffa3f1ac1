package helpers

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the diagnostic logger. User-facing output goes through
// the color printers; this logger carries request latencies, statuses and
// fallback activations. Debug level is opt-in via PRICINGAI_DEBUG.
func NewLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("PRICINGAI_DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", "pricingai").
		Logger()
}
