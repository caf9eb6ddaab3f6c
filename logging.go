package stremio

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new logger with sane defaults and the passed level.
// Supported levels are: debug, info, warn, error, dpanic, panic, fatal.
// Supported encodings are: console, json.
func NewLogger(level, encoding string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse log level: %w", err)
	}
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("unsupported log encoding %q", encoding)
	}

	logConfig := zap.NewProductionConfig()
	logConfig.Level = logLevel
	logConfig.Encoding = encoding
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConfig.EncoderConfig.StacktraceKey = ""
	if encoding == "console" {
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return logConfig.Build()
}
