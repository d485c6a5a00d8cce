// Package logging provides component-scoped structured loggers for the
// transport and holonrpc packages.
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()
)

// SetLevel adjusts the global minimum log level (e.g. zerolog.DebugLevel).
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	base = base.Level(level)
}

// SetOutput redirects the base logger's writer, mainly for tests that want
// to capture log output without console coloring.
func SetOutput(w zerolog.ConsoleWriter) {
	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(w).With().Timestamp().Logger()
}

// Component returns a logger tagged component=name.
func Component(name string) *zerolog.Logger {
	mu.Lock()
	l := base.With().Str("component", name).Logger()
	mu.Unlock()
	return &l
}
