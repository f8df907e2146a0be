package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler dispatches JSON-RPC methods on behalf of a caller.
type Handler interface {
	Handle(ctx context.Context, caller, method string, params json.RawMessage) (any, error)
}

// Options configures the HTTP server.
type Options struct {
	// Auth resolves the caller. Nil leaves every RPC request unauthenticated.
	Auth func(http.Handler) http.Handler
	// Metrics is served at /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler Handler
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(handler Handler, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(InvocationMiddleware)

	srv := &Server{handler: handler, logger: logger}

	r.Get("/health", srv.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Post("/rpc", srv.handleRPC)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		code := ErrInvalidReq
		if errors.Is(err, errParse) {
			code = ErrParseCode
		}
		WriteError(w, nil, code, err.Error(), nil)
		return
	}

	caller, ok := CallerFromContext(r.Context())
	if !ok || caller == "" {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}

	result, err := s.handler.Handle(r.Context(), caller, req.Method, req.Params)
	if err != nil {
		code, message := MapError(err)
		if code == ErrInternal {
			s.logger.Error("rpc failed", "method", req.Method, "caller", caller, "error", err)
		} else {
			s.logger.Debug("rpc rejected", "method", req.Method, "caller", caller, "error", err)
		}
		WriteError(w, req.ID, code, message, nil)
		return
	}

	WriteResult(w, req.ID, result)
}
