// Package logger provides a unified leveled logging facade for the engine.
// It wraps a zap SugaredLogger so the rest of the code can log through
// package-level functions without threading a logger everywhere.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	sugar = l.Sugar()
}

// SetLevel sets the minimum level for all subsequent log calls.
func SetLevel(l zapcore.Level) { level.SetLevel(l) }

// Silence replaces the backend with a no-op logger. Used by tests.
func Silence() { Use(zap.NewNop()) }

// Use swaps the backing logger, e.g. to share the host application's logger.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debugf logs a debug message.
func Debugf(format string, args ...interface{}) { logger().Debugf(format, args...) }

// Infof logs an info message.
func Infof(format string, args ...interface{}) { logger().Infof(format, args...) }

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) { logger().Warnf(format, args...) }

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) { logger().Errorf(format, args...) }
