// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger appending to path. The terminal belongs to the
// UI, so nothing is written to stderr unless path is "stderr".
func New(path string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	if path == "" {
		return zap.NewNop(), nil
	}
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
