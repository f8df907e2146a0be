package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/peerconnect/internal/host"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxLoggedPayload caps how much of a params or result body reaches the log.
const maxLoggedPayload = 2048

// trafficLoggingMiddleware logs each MCP message at debug level with the
// caller and invocation id it runs under. Notifications get no response line.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			invocationID, _ := host.InvocationIDFromContext(ctx)
			l := logger.With(
				"direction", direction,
				"method", method,
				"caller", getCaller(ctx),
				"invocation_id", invocationID,
				"session_id", sessionID(req),
			)
			if tool := toolName(req); tool != "" {
				l = l.With("tool", tool)
			}
			l.DebugContext(ctx, "mcp traffic", "stage", "request", "params", loggedPayload(requestParams(req)))

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := []any{"stage", "response", "elapsed", time.Since(start), "result", loggedPayload(result)}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			l.DebugContext(ctx, "mcp traffic", attrs...)
			return result, err
		}
	}
}

func toolName(req sdkmcp.Request) string {
	call, ok := req.(*sdkmcp.CallToolRequest)
	if !ok || call.Params == nil {
		return ""
	}
	return call.Params.Name
}

// sessionID and requestParams tolerate requests whose session or params
// are typed nil pointers.
func sessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

func requestParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func loggedPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	if len(data) > maxLoggedPayload {
		return fmt.Sprintf("%s...(%d bytes)", data[:maxLoggedPayload], len(data))
	}
	return string(data)
}
