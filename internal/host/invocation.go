package host

import (
	"context"

	"github.com/google/uuid"
)

type invocationKey struct{}

// WithInvocationID returns a context carrying the invocation id.
func WithInvocationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationIDFromContext returns the invocation id from context, if present.
func InvocationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(invocationKey{}).(string)
	return id, ok && id != ""
}

func invocationID(ctx context.Context) string {
	if id, ok := InvocationIDFromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}
