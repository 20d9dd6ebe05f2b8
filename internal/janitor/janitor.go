package janitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// janitorLockName elects a single instance per sweep.
const janitorLockName = "janitor:sweep"

// Janitor periodically removes expired OAuth states and sessions. Each
// sweep runs under a distributed lock so only one instance does the work.
type Janitor struct {
	states   driven.OAuthStateStore
	sessions driven.SessionStore
	lock     driven.DistributedLock
	logger   *slog.Logger
	interval time.Duration

	// Internal state
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the janitor.
type Config struct {
	StateStore   driven.OAuthStateStore
	SessionStore driven.SessionStore
	Lock         driven.DistributedLock
	Logger       *slog.Logger
	Interval     time.Duration
}

// New creates a janitor.
func New(cfg Config) *Janitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Janitor{
		states:   cfg.StateStore,
		sessions: cfg.SessionStore,
		lock:     cfg.Lock,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the sweep loop. It runs until Stop is called or the context
// is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})
	j.mu.Unlock()

	j.logger.Info("janitor starting", "interval", j.interval)

	go func() {
		defer close(j.doneCh)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-j.stopCh:
				return
			case <-ticker.C:
				j.sweep(ctx)
			}
		}
	}()
}

// Stop gracefully stops the janitor.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	j.mu.Unlock()

	<-j.doneCh

	j.mu.Lock()
	j.running = false
	j.mu.Unlock()

	j.logger.Info("janitor stopped")
}

// sweep runs one cleanup pass. Skipped when another instance holds the
// lock.
func (j *Janitor) sweep(ctx context.Context) {
	acquired, err := j.lock.Acquire(ctx, janitorLockName, j.interval)
	if err != nil {
		j.logger.Error("janitor lock acquire failed", "error", err)
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := j.lock.Release(ctx, janitorLockName); err != nil {
			j.logger.Error("janitor lock release failed", "error", err)
		}
	}()

	states, err := j.states.Cleanup(ctx)
	if err != nil {
		j.logger.Error("oauth state cleanup failed", "error", err)
	}

	sessions, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("session cleanup failed", "error", err)
	}

	if states > 0 || sessions > 0 {
		j.logger.Info("janitor sweep complete",
			"expired_states", states,
			"expired_sessions", sessions,
		)
	}
}
