// Package logger builds the structured logger threaded through every
// Ignite component. It wraps go.uber.org/zap so callers never construct
// a *zap.SugaredLogger by hand.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production-configured, JSON-encoded logger tagged with
// service. It falls back to a no-op logger that discards everything if
// zap's own construction fails, which only happens on a malformed config.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
	}

	return log.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything, for use in tests
// that don't care about log output.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// NewDevelopment returns a human-readable, stderr logger suitable for
// the cmd/ignite CLI.
func NewDevelopment(service string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			zapcore.DebugLevel,
		)).Sugar().With("service", service)
	}

	return log.Sugar().With("service", service)
}
