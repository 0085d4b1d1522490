// Package context carries request-scoped values from the HTTP edge into
// handlers, services and log lines.
package context

import "context"

// Current describes the request being served.
type Current struct {
	RequestID string
	Method    string
	Path      string
	ClientIP  string
	UserAgent string
}

type contextKey struct{}

func WithCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, contextKey{}, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(contextKey{}).(*Current)
	return current, ok
}

// GetCurrent returns the Current stored in ctx, or an empty one.
func GetCurrent(ctx context.Context) *Current {
	if current, ok := FromContext(ctx); ok {
		return current
	}
	return &Current{}
}
