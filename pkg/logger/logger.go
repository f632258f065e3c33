// Package logger is the process-wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init builds the logger for the given environment. "development" and
// "local" log at debug level to a colored console; anything else logs JSON
// at info level.
func Init(env string) {
	var zapConfig zap.Config

	switch env {
	case "development", "local":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapConfig = zap.NewProductionConfig()
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			zapConfig.Level = level
		}
	}
	zapConfig.OutputPaths = []string{"stdout"}

	l, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	sugar = l.Sugar()
}

// Debug, Info, Warn, Error and Fatal take a message followed by key/value
// pairs. A single unpaired error is logged under "error".
func Debug(msg string, args ...any) {
	sugar.Debugw(msg, fields(args)...)
}

func Info(msg string, args ...any) {
	sugar.Infow(msg, fields(args)...)
}

func Warn(msg string, args ...any) {
	sugar.Warnw(msg, fields(args)...)
}

func Error(msg string, args ...any) {
	sugar.Errorw(msg, fields(args)...)
}

func Fatal(msg string, args ...any) {
	sugar.Fatalw(msg, fields(args)...)
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = sugar.Sync()
}

func fields(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	if err, ok := last.(error); ok {
		return append(out, "error", err)
	}
	return append(out, "extra", last)
}
