package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Local is the process-local backend: a bounded LRU with per-entry expiry
// checked on read. Expired keys are purged when they are read.
type Local struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
	now func() time.Time
}

var _ Backend = (*Local)(nil)

func NewLocal(size int) (*Local, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Local{
		lru: c,
		now: time.Now,
	}, nil
}

// WithClock overrides the time source for deterministic testing.
func (l *Local) WithClock(now func() time.Time) *Local {
	if now != nil {
		l.now = now
	}
	return l
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(l.now()) {
		l.lru.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (l *Local) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lru.Add(key, l.newEntry(value, ttl))
	return nil
}

func (l *Local) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.lru.Peek(key); ok && !e.expired(l.now()) {
		return false, nil
	}
	l.lru.Add(key, l.newEntry(value, ttl))
	return true, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lru.Remove(key)
	return nil
}

// Len counts stored entries, expired ones included until they are read.
func (l *Local) Len() int {
	return l.lru.Len()
}

func (l *Local) newEntry(value []byte, ttl time.Duration) entry {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = l.now().Add(ttl)
	}
	return e
}
