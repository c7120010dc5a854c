package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZap(zap.NewNop())
)

// SetGlobalLogger replaces the logger used by package level functions.
// Nil is ignored.
func SetGlobalLogger(l Logger) {
	if l == nil {
		return
	}

	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

func global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(ctx context.Context, msg string, fields ...KeyValue) {
	global().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...KeyValue) {
	global().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...KeyValue) {
	global().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...KeyValue) {
	global().Error(ctx, msg, fields...)
}

func Access(ctx context.Context, data AccessLogData) {
	global().Access(ctx, data)
}
