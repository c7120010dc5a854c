package logger

import "context"

type logCtxKey struct{}

var logTracerKey = logCtxKey{}

// Tracer is the request scoped data printed on every log line.
type Tracer struct {
	RemoteAddr string `json:"remote_addr,omitempty"`
	AppTraceID string `json:"app_trace_id,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
}

func Inject(ctx context.Context, data Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, logTracerKey, data)
}

func Extract(ctx context.Context) (Tracer, bool) {
	if ctx == nil {
		return Tracer{}, false
	}

	data, ok := ctx.Value(logTracerKey).(Tracer)
	return data, ok
}

// MustExtract returns empty Tracer when none is injected.
func MustExtract(ctx context.Context) Tracer {
	data, _ := Extract(ctx)
	return data
}

// Detach copies the Tracer into a fresh background context,
// for work that must outlive the request which started it.
func Detach(ctx context.Context) context.Context {
	return Inject(context.Background(), MustExtract(ctx))
}
