package strata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Archiver periodically runs archival passes against a store. New starts one
// automatically when Config.Archiver.Interval is set; callers that schedule
// archival themselves construct one directly and drive Start and Stop.
//
// Every pass runs from the archiver's single loop goroutine, which keeps the
// one-logical-writer-per-type discipline Archive documents.
type Archiver struct {
	store    *Store
	interval time.Duration
	types    []string
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewArchiver creates an archiver for store. The interval must be positive
// by the time Start is called.
func NewArchiver(store *Store, cfg ArchiverConfig) *Archiver {
	return &Archiver{
		store:    store,
		interval: cfg.Interval,
		types:    cfg.Types,
		logger:   store.logger,
	}
}

// Start begins the archival loop. The first pass runs immediately; further
// passes run every interval until the context is cancelled or Stop is
// called.
func (a *Archiver) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("archiver: already running")
	}
	if a.interval <= 0 {
		a.mu.Unlock()
		return fmt.Errorf("archiver: interval must be positive")
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.running = true
	a.done = make(chan struct{})
	a.mu.Unlock()

	a.logger.Info("archiver started", "interval", a.interval)
	go a.run(ctx)
	return nil
}

// Stop halts the archival loop and waits for the in-flight pass to finish.
// Stopping an archiver that is not running is a no-op.
func (a *Archiver) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return nil
	}
	a.cancel()
	<-a.done
	a.running = false
	a.logger.Info("archiver stopped")
	return nil
}

// run is the main archival loop.
func (a *Archiver) run(ctx context.Context) {
	defer close(a.done)

	a.runOnce()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runOnce()
		}
	}
}

// runOnce archives the configured types, or every type currently in the
// store when none are configured.
func (a *Archiver) runOnce() {
	types := a.types
	if len(types) == 0 {
		types = a.store.Types()
	}
	for _, t := range types {
		if err := a.store.Archive(t); err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			a.logger.Warn("archive pass failed", "type", t, "error", err)
		}
	}
	a.logger.Debug("archive pass complete", "types", len(types))
}
