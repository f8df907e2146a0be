package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/peerconnect/internal/repository"
	"github.com/ganot/peerconnect/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testResolver struct {
	tokenToCaller map[string]string
	err           error
}

func (r *testResolver) ResolveCaller(_ context.Context, token string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	caller, ok := r.tokenToCaller[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return caller, nil
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &testResolver{tokenToCaller: map[string]string{"token": "alice"}}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "alice", caller)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Invalid(t *testing.T) {
	resolver := &testResolver{err: errors.New("invalid")}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDefaultCallerMiddleware(t *testing.T) {
	handler := DefaultCallerMiddleware("local")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ := CallerFromContext(r.Context())
		require.Equal(t, "local", caller)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthMiddleware_APIKeyRepository(t *testing.T) {
	keys := &mocks.APIKeyRepository{}
	keys.On("ResolveCaller", mock.Anything, "good").Return("bob", nil)
	keys.On("ResolveCaller", mock.Anything, "stale").Return("", repository.ErrNotFound)

	var seen string
	handler := AuthMiddleware(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	for token, code := range map[string]int{"good": http.StatusOK, "stale": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodPost, "/rpc", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, code, rec.Code, token)
	}
	require.Equal(t, "bob", seen)
	keys.AssertExpectations(t)
}
