package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger and installs it as the zap global, so
// helpers without an injected logger can use zap.S().
func NewLogger(level string) (*zap.SugaredLogger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	return logger.Sugar(), nil
}

// MustNewLogger falls back to a development logger when level is invalid.
func MustNewLogger(level string) *zap.SugaredLogger {
	logger, err := NewLogger(level)
	if err == nil {
		return logger
	}

	fallback := zap.Must(zap.NewDevelopment())
	zap.ReplaceGlobals(fallback)
	fallback.Sugar().Warnf("invalid log level %q, using development logger: %v", level, err)
	return fallback.Sugar()
}
