package internal

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. It always writes to stderr so that
// counts written to stdout stay machine-readable.
func NewLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev", "development", "debug":
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		return cfg.Build()
	case "quiet":
		return zap.NewNop(), nil
	default:
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.DisableStacktrace = true
		return cfg.Build()
	}
}
