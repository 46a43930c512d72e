package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/config"
)

var (
	mu           sync.RWMutex
	globalLogger zerolog.Logger
	initialized  bool
)

// GetLogger returns the process-wide logger, defaulting to console output at info level.
func GetLogger() zerolog.Logger {
	mu.RLock()
	if initialized {
		defer mu.RUnlock()
		return globalLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		globalLogger = newLogger(os.Stdout, "console", zerolog.InfoLevel)
		initialized = true
	}
	return globalLogger
}

// New constructs the service logger from configuration and installs it as the global logger.
func New(cfg *config.Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log := newLogger(os.Stdout, cfg.LogFormat, lvl).With().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	mu.Lock()
	globalLogger = log
	initialized = true
	mu.Unlock()
	return log
}

func newLogger(out io.Writer, format string, lvl zerolog.Level) zerolog.Logger {
	if strings.EqualFold(format, "json") {
		return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(consoleWriter).With().Timestamp().Logger().Level(lvl)
}
