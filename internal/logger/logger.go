package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog Logger writing to stderr.
// env=dev (or development) uses a human-friendly console writer.
func New(env string) zerolog.Logger {
	return NewWithWriter(os.Stderr, env)
}

// NewWithWriter is New with an explicit destination, used by tests.
func NewWithWriter(w io.Writer, env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
