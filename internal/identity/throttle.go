// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"context"
	"sync"
	"time"
)

// LoginThrottle counts failed logins per client key.
type LoginThrottle interface {
	// Locked reports how long key must still wait; zero means it may try.
	Locked(context context.Context, key string) (time.Duration, error)

	// Fail records a failed attempt for key.
	Fail(context context.Context, key string) error

	// Reset clears the failures of key after a successful login.
	Reset(context context.Context, key string) error
}

// MemoryThrottle is a process-local [LoginThrottle].
//
// After maxFailures failures within the lockout window the key is locked
// until the window expires.
type MemoryThrottle struct {
	mu          sync.Mutex
	entries     map[string]*failureEntry
	maxFailures int
	lockout     time.Duration
	now         func() time.Time
}

type failureEntry struct {
	count     int
	expiresAt time.Time
}

// NewMemoryThrottle creates an in-memory throttle.
func NewMemoryThrottle(maxFailures int, lockout time.Duration) *MemoryThrottle {
	return &MemoryThrottle{
		entries:     make(map[string]*failureEntry),
		maxFailures: maxFailures,
		lockout:     lockout,
		now:         time.Now,
	}
}

// WithClock replaces the time source. Tests only.
func (throttle *MemoryThrottle) WithClock(now func() time.Time) *MemoryThrottle {
	throttle.now = now
	return throttle
}

// Locked implements [LoginThrottle].
func (throttle *MemoryThrottle) Locked(_ context.Context, key string) (time.Duration, error) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	entry := throttle.live(key)
	if entry == nil || entry.count < throttle.maxFailures {
		return 0, nil
	}
	return entry.expiresAt.Sub(throttle.now()), nil
}

// Fail implements [LoginThrottle].
func (throttle *MemoryThrottle) Fail(_ context.Context, key string) error {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	entry := throttle.live(key)
	if entry == nil {
		entry = &failureEntry{expiresAt: throttle.now().Add(throttle.lockout)}
		throttle.entries[key] = entry
	}
	entry.count++
	return nil
}

// Reset implements [LoginThrottle].
func (throttle *MemoryThrottle) Reset(_ context.Context, key string) error {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	delete(throttle.entries, key)
	return nil
}

// # Housekeeping

// Sweep drops every entry whose window has passed.
func (throttle *MemoryThrottle) Sweep() {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	now := throttle.now()
	for key, entry := range throttle.entries {
		if !now.Before(entry.expiresAt) {
			delete(throttle.entries, key)
		}
	}
}

// Run sweeps every interval until ctx is cancelled.
func (throttle *MemoryThrottle) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			throttle.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Tracked returns the number of keys currently held.
func (throttle *MemoryThrottle) Tracked() int {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return len(throttle.entries)
}

// live returns the entry for key, dropping it if its window has passed.
// Callers hold mu.
func (throttle *MemoryThrottle) live(key string) *failureEntry {
	entry, found := throttle.entries[key]
	if !found {
		return nil
	}
	if !throttle.now().Before(entry.expiresAt) {
		delete(throttle.entries, key)
		return nil
	}
	return entry
}
