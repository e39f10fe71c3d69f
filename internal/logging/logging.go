// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file written under the data directory while the TUI
// owns the terminal.
const FileName = "puzzlequest.log"

// New returns a production logger writing JSON to outputs. With verbose set
// the level drops to debug; otherwise only warnings and errors are kept.
// Outputs default to stderr.
func New(verbose bool, outputs ...string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = !verbose
	if len(outputs) > 0 {
		config.OutputPaths = outputs
		config.ErrorOutputPaths = outputs
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// FilePath returns the log file location inside dataDir.
func FilePath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}
