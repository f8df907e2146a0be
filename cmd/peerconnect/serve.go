package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganot/peerconnect/internal/config"
	"github.com/ganot/peerconnect/internal/host"
	"github.com/ganot/peerconnect/internal/mcp"
	"github.com/ganot/peerconnect/internal/sqlite"
	"github.com/ganot/peerconnect/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON-RPC and MCP server",
	Long: `Run the server on the configured transport.

In http mode the server exposes:
  POST /rpc      JSON-RPC 2.0 (instantiate, execute, query, list_events)
  /mcp           MCP streamable HTTP
  GET  /health
  GET  /metrics  (when metrics are enabled)

In stdio mode only MCP is served, on stdin/stdout, as the default caller.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := current.cfg
	logger := current.logger

	db, err := current.openDB()
	if err != nil {
		return err
	}

	var metrics *host.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		metrics = host.NewMetrics()
		registry.MustRegister(
			metrics,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	rt := current.newHost(db, metrics)
	if initialized, err := rt.Initialized(cmd.Context()); err != nil {
		return err
	} else if !initialized {
		logger.Warn("contract not initialized; run `peerconnect init` or call instantiate")
	}

	apiKeys := sqlite.NewAPIKeyRepository(db)
	mcpServer := mcp.NewServer(mcp.Config{
		Runtime:       rt,
		Resolver:      apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		DefaultCaller: cfg.Auth.DefaultCaller,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(logger, mcpServer)
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}
	return runHTTPMode(logger, cfg, rt, apiKeys, mcpServer, metricsHandler)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func runHTTPMode(logger *slog.Logger, cfg config.Config, rt *host.Host, apiKeys *sqlite.APIKeyRepository, mcpServer *sdkmcp.Server, metrics http.Handler) error {
	auth := transport.DefaultCallerMiddleware(cfg.Auth.DefaultCaller)
	if cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(apiKeys)
	}
	router := transport.NewServer(rt, transport.Options{
		Auth:    auth,
		Metrics: metrics,
		Logger:  logger,
	})

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
