package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Kind names a cached resource. Each kind carries its own TTL: price
// history moves once per trading day, news churns faster.
type Kind string

const (
	KindPrices Kind = "prices"
	KindNews   Kind = "news"
)

type entry struct {
	value     any
	fetchedAt time.Time
	expiresAt time.Time
}

// Store is the transient TTL cache sitting in front of the data providers.
// Entries are replaced atomically under the lock and may be dropped at any
// time after expiry; nothing survives a restart and the cache is never a
// source of truth.
//
// Concurrent misses for the same key coalesce into a single in-flight
// fetch. The shared fetch runs on a context detached from the first
// caller's, so an aborted request cannot cancel a result other requests
// are still waiting on.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttls    map[Kind]time.Duration
	group   singleflight.Group
	now     func() time.Time
}

// New creates a Store with per-kind TTLs.
func New(priceTTL, newsTTL time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttls: map[Kind]time.Duration{
			KindPrices: priceTTL,
			KindNews:   newsTTL,
		},
		now: time.Now,
	}
}

// WithClock swaps the time source. Tests use it to force expiry without
// sleeping.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// GetOrFetch returns the cached value for (kind, ticker) while fresh. On a
// miss or an expired entry it runs fetch, stores the result with
// expires_at = now + ttl, and returns it. A fetch error is returned to all
// coalesced waiters and nothing is stored.
func (s *Store) GetOrFetch(ctx context.Context, kind Kind, ticker string, fetch func(context.Context) (any, error)) (any, error) {
	key := string(kind) + ":" + ticker
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Another caller may have stored the value between our miss and
		// winning the flight.
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.put(key, kind, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// PurgeExpired drops every entry past its deadline to bound memory. Safe to
// call at any time; the EOD scheduler runs it once per task.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of entries currently held, fresh or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.expiresAt) {
		// Expired. Leave eviction to PurgeExpired to avoid a write-lock
		// upgrade on the read path.
		return nil, false
	}
	return e.value, true
}

func (s *Store) put(key string, kind Kind, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = entry{
		value:     v,
		fetchedAt: now,
		expiresAt: now.Add(s.ttls[kind]),
	}
}
