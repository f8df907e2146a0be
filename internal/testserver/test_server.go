// Package testserver runs the full HTTP stack against an in-memory database.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/host"
	"github.com/ganot/peerconnect/internal/sqlite"
	"github.com/ganot/peerconnect/internal/transport"
	"github.com/juju/clock/testclock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

// Genesis is the block time the test clock starts at.
var Genesis = time.Unix(1700000000, 0)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Host   *host.Host
	Clock  *testclock.Clock

	nextID int
}

// New starts a server with bearer auth enabled. Register callers with AddAPIKey.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	clk := testclock.NewClock(Genesis)
	metrics := host.NewMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics)

	h := host.New(db, contract.New(nil, nil), clk, metrics, nil)
	router := transport.NewServer(h, transport.Options{
		Auth:    transport.AuthMiddleware(sqlite.NewAPIKeyRepository(db)),
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Host: h, Clock: clk}
}

// AddAPIKey registers token for caller.
func (ts *TestServer) AddAPIKey(t *testing.T, token, caller string) {
	t.Helper()
	require.NoError(t, sqlite.NewAPIKeyRepository(ts.DB).Add(context.Background(), token, caller, "test"))
}

// Call sends a JSON-RPC request with token and returns the decoded envelope.
func (ts *TestServer) Call(t *testing.T, token, method string, params any) transport.Response {
	t.Helper()

	ts.nextID++
	payload := map[string]any{"jsonrpc": "2.0", "method": method, "id": ts.nextID}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out transport.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Result calls method and decodes a successful result into out.
func (ts *TestServer) Result(t *testing.T, token, method string, params, out any) {
	t.Helper()
	resp := ts.Call(t, token, method, params)
	require.Nil(t, resp.Error, "%s returned error: %+v", method, resp.Error)
	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}
