package transport

import (
	"net/http"

	"github.com/ganot/peerconnect/internal/host"
	"github.com/go-chi/chi/v5/middleware"
)

// InvocationMiddleware carries the request id (see middleware.RequestID) into
// the host as the invocation id and echoes it back to the client.
func InvocationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(host.WithInvocationID(r.Context(), id)))
	})
}
