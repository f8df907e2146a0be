// Package host runs contract entry points against SQLite. It gives every
// state-changing invocation its own transaction, stamps it with block time
// and records the emitted attributes in the event log.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/sqlite"
	"github.com/ganot/peerconnect/internal/state"
	"github.com/juju/clock"
)

// Host executes contract entry points.
type Host struct {
	db       *sqlite.DB
	contract *contract.Contract
	clock    clock.Clock
	metrics  *Metrics
	logger   *slog.Logger
}

// New creates a Host. A nil clock uses the wall clock; nil metrics disables
// instrumentation.
func New(db *sqlite.DB, c *contract.Contract, clk clock.Clock, metrics *Metrics, logger *slog.Logger) *Host {
	if clk == nil {
		clk = clock.WallClock
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{
		db:       db,
		contract: c,
		clock:    clk,
		metrics:  metrics,
		logger:   logger,
	}
}

// Initialized reports whether the contract has been instantiated.
func (h *Host) Initialized(ctx context.Context) (bool, error) {
	return state.New(sqlite.NewKVStore(h.db)).Initialized(ctx)
}

// Instantiate initializes the contract state. It fails with
// ErrAlreadyInitialized once the state exists.
func (h *Host) Instantiate(ctx context.Context, caller string, msg contract.InstantiateMsg) (*project.Response, error) {
	now := h.clock.Now()
	var resp *project.Response
	err := h.db.InTx(ctx, func(tx sqlite.Querier) error {
		kv := sqlite.NewKVStore(tx)
		initialized, err := state.New(kv).Initialized(ctx)
		if err != nil {
			return err
		}
		if initialized {
			return ErrAlreadyInitialized
		}

		resp, err = h.contract.Instantiate(ctx, kv, contract.Env{BlockTime: now}, contract.MessageInfo{Sender: caller}, msg)
		if err != nil {
			return err
		}
		return h.record(ctx, tx, event.EntryInstantiate, caller, resp, now)
	})
	h.metrics.observe(string(event.EntryInstantiate), "instantiate", h.clock.Now().Sub(now), err)
	if err != nil {
		h.logger.Debug("instantiate failed", "caller", caller, "error", err)
		return nil, err
	}
	return resp, nil
}

// Execute runs one state-changing message. Nothing is persisted unless the
// operation and its event record both succeed.
func (h *Host) Execute(ctx context.Context, caller string, msg contract.ExecuteMsg) (*project.Response, error) {
	method, err := msg.Method()
	if err != nil {
		h.metrics.observe(string(event.EntryExecute), "unknown", 0, err)
		return nil, err
	}

	now := h.clock.Now()
	var resp *project.Response
	err = h.db.InTx(ctx, func(tx sqlite.Querier) error {
		kv := sqlite.NewKVStore(tx)
		var err error
		resp, err = h.contract.Execute(ctx, kv, contract.Env{BlockTime: now}, contract.MessageInfo{Sender: caller}, msg)
		if err != nil {
			return err
		}
		if msg.DeleteProject != nil {
			if err := collaborations(tx, h.logger).Forget(ctx, msg.DeleteProject.ProjectID); err != nil {
				return err
			}
		}
		return h.record(ctx, tx, event.EntryExecute, caller, resp, now)
	})
	h.metrics.observe(string(event.EntryExecute), method, h.clock.Now().Sub(now), err)
	if err != nil {
		h.logger.Debug("execute failed", "method", method, "caller", caller, "error", err)
		return nil, err
	}

	h.logger.Info("execute", "method", method, "caller", caller)
	return resp, nil
}

// Query runs a read-only message outside a transaction.
func (h *Host) Query(ctx context.Context, msg contract.QueryMsg) (any, error) {
	method, err := msg.Method()
	if err != nil {
		h.metrics.observe("query", "unknown", 0, err)
		return nil, err
	}

	now := h.clock.Now()
	result, err := h.contract.Query(ctx, sqlite.NewKVStore(h.db), contract.Env{BlockTime: now}, msg)
	h.metrics.observe("query", method, h.clock.Now().Sub(now), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListEvents returns recorded events, newest first.
func (h *Host) ListEvents(ctx context.Context, opts event.ListOptions) ([]event.Event, error) {
	return event.NewService(sqlite.NewEventRepository(h.db), h.logger).List(ctx, opts)
}

func (h *Host) record(ctx context.Context, tx sqlite.Querier, entry event.EntryPoint, caller string, resp *project.Response, at time.Time) error {
	events := event.NewService(sqlite.NewEventRepository(tx), h.logger)
	if _, err := events.Record(ctx, invocationID(ctx), entry, caller, resp, at); err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}
