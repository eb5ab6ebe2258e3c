// Package logging builds the zap loggers used by the corrprune command.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats lists the supported encodings.
var Formats = []string{"console", "json"}

// Validate checks a level and format pair without building a logger.
func Validate(level, format string) error {
	_, err := buildConfig(level, format)
	return err
}

// New builds a logger writing to stderr at the given level ("debug", "info",
// "warn", "error") and format ("console" or "json").
func New(level, format string) (*zap.Logger, error) {
	config, err := buildConfig(level, format)
	if err != nil {
		return nil, err
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func buildConfig(level, format string) (zap.Config, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var config zap.Config
	switch strings.ToLower(format) {
	case "", "console":
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.DisableStacktrace = true
	case "json":
		config = zap.NewProductionConfig()
	default:
		return zap.Config{}, fmt.Errorf("invalid log format %q (valid: %v)", format, Formats)
	}

	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config, nil
}
