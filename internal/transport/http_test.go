package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/host"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	caller       string
	method       string
	invocationID string
	err          error
}

func (h *testHandler) Handle(ctx context.Context, caller, method string, params json.RawMessage) (any, error) {
	h.caller = caller
	h.method = method
	h.invocationID, _ = host.InvocationIDFromContext(ctx)
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"caller": caller}, nil
}

type staticResolver struct {
	caller string
}

func (r *staticResolver) ResolveCaller(_ context.Context, token string) (string, error) {
	if token != "token" {
		return "", ErrUnauthorized
	}
	return r.caller, nil
}

func postRPC(t *testing.T, url, body string, headers map[string]string) (*http.Response, Response) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/rpc", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var out Response
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{Auth: AuthMiddleware(&staticResolver{caller: "alice"})}))
	t.Cleanup(server.Close)

	resp, out := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"query","params":{"ListProjects":{}},"id":1}`, map[string]string{
		"Authorization": "Bearer token",
		"X-Request-Id":  "req-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, out.Error)
	require.Equal(t, "query", handler.method)
	require.Equal(t, "alice", handler.caller)
	require.Equal(t, "req-1", handler.invocationID)
	require.Equal(t, "req-1", resp.Header.Get("X-Request-Id"))
}

func TestHTTPServer_GeneratesInvocationID(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{Auth: DefaultCallerMiddleware("local")}))
	t.Cleanup(server.Close)

	resp, _ := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"query","id":1}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "local", handler.caller)
	require.NotEmpty(t, handler.invocationID)
	require.Equal(t, handler.invocationID, resp.Header.Get("X-Request-Id"))
}

func TestHTTPServer_RejectsMissingToken(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{Auth: AuthMiddleware(&staticResolver{caller: "alice"})}))
	t.Cleanup(server.Close)

	resp, _ := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"query","id":1}`, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, handler.method)
}

func TestHTTPServer_NoCaller(t *testing.T) {
	server := httptest.NewServer(NewServer(&testHandler{}, Options{}))
	t.Cleanup(server.Close)

	resp, _ := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"query","id":1}`, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_MapsErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{project.ErrUnauthorized, ErrUnauthorizedCode},
		{fmt.Errorf("wrapped: %w", project.ErrProjectNotFound), ErrNotFoundCode},
		{project.ErrNotInitialized, ErrNotInitializedCode},
		{project.ErrInvalidStatus, ErrInvalidParams},
		{host.ErrUnknownMethod, ErrMethodNotFound},
		{io.ErrUnexpectedEOF, ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			handler := &testHandler{err: tt.err}
			server := httptest.NewServer(NewServer(handler, Options{Auth: DefaultCallerMiddleware("local")}))
			t.Cleanup(server.Close)

			resp, out := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"execute","id":7}`, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NotNil(t, out.Error)
			require.Equal(t, tt.code, out.Error.Code)
			require.EqualValues(t, 7, out.ID)
		})
	}
}

func TestHTTPServer_InvalidRequest(t *testing.T) {
	server := httptest.NewServer(NewServer(&testHandler{}, Options{Auth: DefaultCallerMiddleware("local")}))
	t.Cleanup(server.Close)

	_, out := postRPC(t, server.URL, `{not json`, nil)
	require.Equal(t, ErrParseCode, out.Error.Code)

	_, out = postRPC(t, server.URL, `{"jsonrpc":"1.0","method":"query"}`, nil)
	require.Equal(t, ErrInvalidReq, out.Error.Code)
}

func TestHTTPServer_Health(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("peerconnect_invocations_total 0\n"))
	})
	server := httptest.NewServer(NewServer(&testHandler{}, Options{Metrics: metrics}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "peerconnect_invocations_total")
}
