// Package logging builds the zap loggers used by the CLI and the dashboard.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level, encoding and destination of a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string
	// Format is "json" or "console".
	Format string
	// File, when set, receives all output instead of stderr. A leading ~ is
	// expanded and missing parent directories are created.
	File string
}

// ParseLevel maps a level name onto a zapcore.Level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New creates a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	var config zap.Config
	if opts.Format == "json" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if opts.File != "" {
		path, err := homedir.Expand(opts.File)
		if err != nil {
			return nil, fmt.Errorf("logging: expand %q: %w", opts.File, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log directory: %w", err)
		}
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service_name", "warden")), nil
}

// Must is New for callers that cannot proceed without a logger; on failure it
// returns a no-op logger and reports the problem on stderr.
func Must(opts Options) *zap.Logger {
	logger, err := New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
