// ABOUTME: Leveled logging wrapper around zap for server and CLI output
// ABOUTME: Global level via SetLevel; writes to stderr so stdout stays free for stdio JSON-RPC

package log

import (
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level constants matching zap levels.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var level = zap.NewAtomicLevelAt(LevelInfo)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	SetOutput(os.Stderr)
}

// SetOutput redirects log output to w. Used by tests and by the serve command
// when a log file is configured.
func SetOutput(w io.Writer) {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	sugar.Store(zap.New(core).Sugar())
}

// SetLevel sets the global log level.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// GetLevel returns the current log level.
func GetLevel() zapcore.Level {
	return level.Level()
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	sugar.Load().Debugf(format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	sugar.Load().Infof(format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	sugar.Load().Warnf(format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	sugar.Load().Errorf(format, args...)
}

// Sync flushes buffered output.
func Sync() {
	_ = sugar.Load().Sync()
}
