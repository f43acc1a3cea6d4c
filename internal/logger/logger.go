// Package logger builds the zap logger shared by the CLI and the mock auth server.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const TimeFormat = "2006-01-02 15:04:05.999"

// AtomicLevel lets callers change the level of every logger built by New at runtime.
var AtomicLevel = zap.NewAtomicLevel()

// New builds a console logger. env "prod" switches to JSON output.
func New(env, level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if env != "prod" {
		config.Encoding = "console"
	}
	if err := AtomicLevel.UnmarshalText([]byte(level)); err != nil {
		AtomicLevel.SetLevel(zapcore.InfoLevel)
	}
	config.Level = AtomicLevel
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeFormat)
	config.DisableStacktrace = true
	config.Sampling = nil
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

// Must is New that falls back to a no-op logger.
func Must(env, level string) *zap.Logger {
	l, err := New(env, level)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
