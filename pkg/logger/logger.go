package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const serviceFieldName = "service"

// Config controls logger construction.
type Config struct {
	Level       string
	ServiceName string
	Output      io.Writer
}

// New builds the process-wide structured logger. Unknown levels fall back
// to info rather than failing startup.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ServiceName != "" {
		logger = logger.Str(serviceFieldName, cfg.ServiceName)
	}

	return logger.Logger()
}
