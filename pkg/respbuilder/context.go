package respbuilder

import "context"

const (
	HeaderTraceID   = "Tracer-ID"
	HeaderSessionID = "Session-ID"
)

type tracerKey struct{}

// Tracer identifies the request a response belongs to.
// SessionID is only set on routes scoped to a session.
type Tracer struct {
	RemoteAddr string
	AppTraceID string
	SessionID  string
}

func Inject(ctx context.Context, t Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithSession tags the tracer already in ctx with the session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	t := MustExtract(ctx)
	t.SessionID = sessionID
	return Inject(ctx, t)
}

func Extract(ctx context.Context) (Tracer, bool) {
	t, ok := ctx.Value(tracerKey{}).(Tracer)
	return t, ok
}

// MustExtract returns the zero Tracer when ctx carries none.
func MustExtract(ctx context.Context) Tracer {
	t, _ := Extract(ctx)
	return t
}

func setHeaders(h interface{ Set(key, value string) }, t Tracer) {
	h.Set(HeaderTraceID, t.AppTraceID)
	if t.SessionID != "" {
		h.Set(HeaderSessionID, t.SessionID)
	}
}
