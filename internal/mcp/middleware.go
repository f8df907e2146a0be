package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/peerconnect/internal/host"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const callerKey contextKey = iota

// getCaller extracts the caller identity from context.
func getCaller(ctx context.Context) string {
	v, _ := ctx.Value(callerKey).(string)
	return v
}

// CallerResolver resolves a caller identity from a bearer token.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (string, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver CallerResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			caller, err := resolver.ResolveCaller(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}
			if caller == "" {
				return nil, fmt.Errorf("unauthorized: invalid bearer token")
			}

			ctx = context.WithValue(ctx, callerKey, caller)
			return next(ctx, method, req)
		}
	}
}

// noAuthMiddleware injects a default caller when auth is disabled.
func noAuthMiddleware(defaultCaller string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx = context.WithValue(ctx, callerKey, defaultCaller)
			return next(ctx, method, req)
		}
	}
}

// invocationMiddleware takes the invocation id from the X-Request-Id header
// (HTTP) or _meta.request_id (stdio). The host generates one otherwise.
func invocationMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var id string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				id = extra.Header.Get("X-Request-Id")
			}

			// Some notifications carry nil params behind a non-nil interface.
			if id == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if rid, ok := meta["request_id"].(string); ok {
								id = rid
							}
						}
					}()
				}
			}

			return next(host.WithInvocationID(ctx, id), method, req)
		}
	}
}
