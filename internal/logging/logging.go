// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger based on verbosity level.
// 0 logs warnings and errors, 1 adds info, 2 debug, anything higher trace.
// A nil out writes to stderr.
func Setup(verbosity int, out io.Writer) {
	switch {
	case verbosity <= 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case verbosity == 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	if out == nil {
		out = os.Stderr
	}
	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// Get returns a logger tagged with the given component name.
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
