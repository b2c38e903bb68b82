package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Unknown levels fall back to info.
func Setup(level, format string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	log.Logger = l
	return l
}
