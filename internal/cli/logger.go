package cli

import (
	"os"

	"github.com/rs/zerolog"
)

// initLogger configures the CLI logger based on verbosity flags:
// verbose selects debug, quiet selects warn, otherwise info.
func initLogger(verbose, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case verbose:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.WarnLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
