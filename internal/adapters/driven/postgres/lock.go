package postgres

import (
	"context"
	"database/sql"
	"hash/fnv"
	"sync"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DistributedLock = (*AdvisoryLock)(nil)

// AdvisoryLock implements DistributedLock using PostgreSQL advisory locks.
//
// Advisory locks are session-scoped, so each acquired lock pins a dedicated
// connection checked out of the pool and the unlock runs on that same
// connection before it is returned. Running both calls through the pooled
// handle would release on an arbitrary connection: the unlock silently fails
// and the lock stays stuck on an idle connection until the pool recycles it.
//
// IMPORTANT LIMITATIONS:
// - TTL parameter is ignored (locks don't expire automatically)
// - If the pinned connection is lost, the server releases the lock
// - Each held lock occupies one pool connection for its lifetime
//
// For multi-instance deployments, Redis locks are preferred. This is the
// fallback when Redis is unavailable.
type AdvisoryLock struct {
	db *DB

	mu    sync.Mutex
	conns map[string]*sql.Conn
}

// NewAdvisoryLock creates a new PostgreSQL advisory lock adapter.
func NewAdvisoryLock(db *DB) *AdvisoryLock {
	return &AdvisoryLock{db: db, conns: make(map[string]*sql.Conn)}
}

// hashLockName converts a string lock name to a 64-bit integer for PostgreSQL advisory locks.
// Uses FNV-1a hash for consistent, well-distributed values.
func hashLockName(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte("studydeck:lock:" + name))
	return int64(h.Sum64())
}

// Acquire attempts to acquire a named advisory lock on a dedicated
// connection. Uses pg_try_advisory_lock which returns immediately without
// blocking.
//
// Note: The TTL parameter is ignored - PostgreSQL advisory locks don't have TTL.
// The lock is held until explicitly released or the pinned connection closes.
func (l *AdvisoryLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	_, held := l.conns[name]
	l.mu.Unlock()
	if held {
		// Advisory locks stack within a session, so re-acquiring on the
		// pinned connection would succeed and break mutual exclusion.
		return false, nil
	}

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return false, err
	}

	var acquired bool
	err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", hashLockName(name)).Scan(&acquired)
	if err != nil {
		conn.Close()
		return false, err
	}
	if !acquired {
		conn.Close()
		return false, nil
	}

	l.mu.Lock()
	l.conns[name] = conn
	l.mu.Unlock()
	return true, nil
}

// Release releases a named advisory lock on the connection that acquired it,
// then returns that connection to the pool.
// Safe to call when the lock is not held by this instance.
func (l *AdvisoryLock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	conn := l.conns[name]
	delete(l.conns, name)
	l.mu.Unlock()

	if conn == nil {
		return nil
	}
	// If the unlock fails because the connection died, the server already
	// dropped the lock with the session.
	defer conn.Close()

	var released bool
	return conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", hashLockName(name)).Scan(&released)
}

// Ping checks if the PostgreSQL backend is healthy.
func (l *AdvisoryLock) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}
