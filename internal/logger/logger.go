package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Name is the root logger name. Packages add their own segment with Named.
const Name = "cv-ranker"

// New builds the process logger. Console output is meant for people watching a
// ranking run, json output for collecting runs and grouping them by run_id.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:          "console",
		Level:             zap.NewAtomicLevelAt(level),
		DisableStacktrace: !debug,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig:     encoderConfig(json),
	}
	if json {
		cfg.Encoding = "json"
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Named(Name), nil
}

func encoderConfig(json bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		MessageKey: "step",
		LevelKey:   "level",
		NameKey:    "logger",
		TimeKey:    "time",
		CallerKey:  "caller",

		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	if json {
		cfg.StacktraceKey = "stacktrace"
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncodeTime = zapcore.RFC3339TimeEncoder
		cfg.EncodeDuration = zapcore.MillisDurationEncoder
	}

	return cfg
}
