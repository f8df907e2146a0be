// Package main implements the peerconnect server and its operator commands.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ganot/peerconnect/internal/address"
	"github.com/ganot/peerconnect/internal/config"
	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/host"
	"github.com/ganot/peerconnect/internal/sqlite"
	"github.com/juju/clock"
	"github.com/spf13/cobra"
)

var version = "dev"

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
}

var current app

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "peerconnect",
	Short: "Project board for finding collaborators",
	Long: `peerconnect keeps a board of projects looking for collaborators.

Configuration comes from the YAML file named by PEERCONNECT_CONFIG_PATH and
PEERCONNECT_* environment variables.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(serveCmd, initCmd, apikeyCmd, queryCmd)
	cobra.OnFinalize(current.close)
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Only serve in http mode may write logs to stdout; stdio keeps stdout
	// clean for JSON-RPC and operator commands print their results there.
	logWriter := io.Writer(os.Stderr)
	if cmd.Name() == serveCmd.Name() && cfg.Transport.Mode == "http" {
		logWriter = os.Stdout
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			current.closers = append(current.closers, file)
			logWriter = fileWriter
		}
	}

	current.cfg = cfg
	current.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return nil
}

// openDB opens the configured database and applies the schema.
func (a *app) openDB() (*sqlite.DB, error) {
	if err := ensureDBDir(a.cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(a.cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	a.closers = append(a.closers, db)
	return db, nil
}

func (a *app) newHost(db *sqlite.DB, metrics *host.Metrics) *host.Host {
	c := contract.New(address.New(a.cfg.Contract.AddressPrefix), a.logger)
	return host.New(db, c, clock.WallClock, metrics, a.logger)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
