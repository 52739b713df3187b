package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_SecondCallWithinTTL(t *testing.T) {
	clock := newFakeClock()
	store := New(time.Hour, 10*time.Minute).WithClock(clock.Now)

	var calls int32
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "series", nil
	}

	v, err := store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", fetch)
	require.NoError(t, err)
	assert.Equal(t, "series", v)

	v, err = store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", fetch)
	require.NoError(t, err)
	assert.Equal(t, "series", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "fresh hit must not refetch")

	// Force expiry; the next read must hit the provider again.
	clock.Advance(time.Hour + time.Second)
	_, err = store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "expired entry must refetch")
}

func TestStore_KindsExpireIndependently(t *testing.T) {
	clock := newFakeClock()
	store := New(time.Hour, 10*time.Minute).WithClock(clock.Now)

	var priceCalls, newsCalls int32
	fetchPrices := func(context.Context) (any, error) { atomic.AddInt32(&priceCalls, 1); return "p", nil }
	fetchNews := func(context.Context) (any, error) { atomic.AddInt32(&newsCalls, 1); return "n", nil }

	_, err := store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", fetchPrices)
	require.NoError(t, err)
	_, err = store.GetOrFetch(context.Background(), KindNews, "TCS.NS", fetchNews)
	require.NoError(t, err)

	// Past the news TTL but inside the price TTL.
	clock.Advance(15 * time.Minute)
	_, err = store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", fetchPrices)
	require.NoError(t, err)
	_, err = store.GetOrFetch(context.Background(), KindNews, "TCS.NS", fetchNews)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&priceCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&newsCalls))
}

func TestStore_ConcurrentMissesCoalesce(t *testing.T) {
	store := New(time.Hour, 10*time.Minute)

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "series", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every worker pile onto the same key before releasing the fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent misses must share one fetch")
	for i := 0; i < workers; i++ {
		assert.Equal(t, "series", results[i])
	}
}

func TestStore_FetchErrorNotCached(t *testing.T) {
	store := New(time.Hour, 10*time.Minute)

	var calls int32
	boom := errors.New("provider down")
	fetch := func(context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, boom
		}
		return "series", nil
	}

	_, err := store.GetOrFetch(context.Background(), KindPrices, "X.NS", fetch)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len(), "errors must not be stored")

	v, err := store.GetOrFetch(context.Background(), KindPrices, "X.NS", fetch)
	require.NoError(t, err)
	assert.Equal(t, "series", v)
}

func TestStore_PurgeExpired(t *testing.T) {
	clock := newFakeClock()
	store := New(time.Hour, 10*time.Minute).WithClock(clock.Now)

	fetch := func(context.Context) (any, error) { return "v", nil }
	_, err := store.GetOrFetch(context.Background(), KindPrices, "A.NS", fetch)
	require.NoError(t, err)
	_, err = store.GetOrFetch(context.Background(), KindNews, "A.NS", fetch)
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	clock.Advance(30 * time.Minute) // news expired, prices still fresh
	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 0, store.Len())
}

func TestStore_SharedFetchSurvivesCallerCancel(t *testing.T) {
	store := New(time.Hour, 10*time.Minute)

	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(fctx context.Context) (any, error) {
		close(started)
		<-release
		// The fetch context is detached from the first caller's.
		assert.NoError(t, fctx.Err())
		return "series", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := store.GetOrFetch(ctx, KindPrices, "TCS.NS", fetch)
		done <- err
	}()

	<-started
	cancel() // abort the originating request mid-fetch
	close(release)

	require.NoError(t, <-done)

	// The result is cached for the next caller despite the cancel.
	var calls int32
	v, err := store.GetOrFetch(context.Background(), KindPrices, "TCS.NS", func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("should not be called")
	})
	require.NoError(t, err)
	assert.Equal(t, "series", v)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
