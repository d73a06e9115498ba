package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(debug bool) (*zap.Logger, error) {
	logCfg := zap.NewDevelopmentConfig()

	logCfg.EncoderConfig.EncodeLevel = levelEncoder
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.ErrorOutputPaths = []string{"stderr"}

	if debug {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		logCfg.DisableStacktrace = false
	} else {
		logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		logCfg.DisableStacktrace = true
		logCfg.DisableCaller = true
	}

	return logCfg.Build()
}

func levelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("vimson: " + level.CapitalString())
}

// zapTracer reports parser productions at debug level.
type zapTracer struct {
	logger *zap.Logger
}

func (t zapTracer) Enter(production string, offset int) {
	t.logger.Debug("parse", zap.String("production", production), zap.Int("offset", offset))
}
