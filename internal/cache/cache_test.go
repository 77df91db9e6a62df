package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestGet_ExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := cache.New[string]("test_expiry", time.Minute, cache.Options{Now: clock.Now})

	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clock.Advance(time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must not be fresh at exactly ttl")
}

func TestGetOrLoad_HitSkipsLoader(t *testing.T) {
	c := cache.New[int]("test_hit", time.Minute, cache.Options{})
	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := c.GetOrLoad(context.Background(), "answer", load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.CacheRequestsTotal.WithLabelValues("test_hit", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheRequestsTotal.WithLabelValues("test_hit", "miss")))
}

func TestGetOrLoad_ReloadsAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	c := cache.New[int]("test_reload", time.Minute, cache.Options{Now: clock.Now})
	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, _ := c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 1, v)

	clock.Advance(2 * time.Minute)
	v, _ = c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 2, v)
}

func TestGetOrLoad_CoalescesConcurrentMisses(t *testing.T) {
	c := cache.New[string]("test_coalesce", time.Minute, cache.Options{})
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "loaded", nil
	}

	const n = 10
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every goroutine reach the singleflight before releasing the load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "loaded", r)
	}
}

func TestGetOrLoad_ServesStaleOnError(t *testing.T) {
	clock := newFakeClock()
	c := cache.New[string]("test_stale", time.Minute, cache.Options{Now: clock.Now})
	c.Set("k", "old")
	clock.Advance(90 * time.Second)

	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", errors.New("upstream down")
	})
	require.NoError(t, err)
	assert.Equal(t, "old", v)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheRequestsTotal.WithLabelValues("test_stale", "stale")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.CacheRequestsTotal.WithLabelValues("test_stale", "miss")))
}

func TestGetOrLoad_ErrorWithoutStaleValue(t *testing.T) {
	c := cache.New[string]("test_error", time.Minute, cache.Options{})
	loadErr := errors.New("upstream down")

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", loadErr
	})
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, 0, c.Len())
}

func TestSweep_KeepsStaleWindow(t *testing.T) {
	clock := newFakeClock()
	c := cache.New[int]("test_sweep", time.Minute, cache.Options{Now: clock.Now})
	c.Set("a", 1)

	clock.Advance(90 * time.Second)
	assert.Equal(t, 0, c.Sweep(), "entry is stale but inside its stale window")

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Len())
}

func TestSet_EvictsOldestWhenFull(t *testing.T) {
	clock := newFakeClock()
	c := cache.New[int]("test_evict", time.Minute, cache.Options{MaxEntries: 2, Now: clock.Now})

	c.Set("a", 1)
	clock.Advance(time.Second)
	c.Set("b", 2)
	clock.Advance(time.Second)
	c.Set("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	c := cache.New[int]("test_delete", time.Minute, cache.Options{})
	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGetOrLoad_CallerCancelDoesNotFailOtherWaiters(t *testing.T) {
	c := cache.New[string]("test_cancel", time.Minute, cache.Options{})
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		close(started)
		select {
		case <-release:
			return "loaded", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(firstCtx, "k", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := c.GetOrLoad(context.Background(), "k", load)
		second <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "loaded", got.v)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "loaded", v)
}

func TestDelete_DuringLoadDropsLoadedValue(t *testing.T) {
	c := cache.New[string]("test_delete_inflight", time.Minute, cache.Options{})
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		v, err := c.GetOrLoad(context.Background(), "alice", func(context.Context) (string, error) {
			close(started)
			<-release
			return "old-profile", nil
		})
		assert.NoError(t, err)
		done <- v
	}()
	<-started

	c.Delete("alice")
	close(release)
	assert.Equal(t, "old-profile", <-done, "the waiter that started before Delete still gets its answer")

	_, ok := c.Get("alice")
	assert.False(t, ok, "a load invalidated by Delete must not be stored")

	v, err := c.GetOrLoad(context.Background(), "alice", func(context.Context) (string, error) {
		return "new-profile", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new-profile", v)
}
