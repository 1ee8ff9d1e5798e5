package dnamat

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// LogLevel is a configurable log level for the dnamat package.
	LogLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

	l = zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			LogLevel,
		),
	)

	// dlog is the package's default sugared logger.
	dlog = l.Sugar()
)
