package market

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock 可推进的测试时钟
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.cur = c.cur.Add(d)
	c.mu.Unlock()
}

func TestPriceCacheHitAndExpiry(t *testing.T) {
	clock := newFakeClock()
	cache := NewPriceCache(60*time.Second, clock.Now)

	var calls int32
	fetch := func(key string) (*Card, error) {
		atomic.AddInt32(&calls, 1)
		return &Card{Id: key}, nil
	}

	for i := 0; i < 3; i++ {
		card, err := cache.GetOrFetch("sv8-161", fetch)
		if err != nil {
			t.Fatalf("GetOrFetch: %v", err)
		}
		if card.Id != "sv8-161" {
			t.Fatalf("card id = %s", card.Id)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fetch calls = %d, want 1 within TTL", n)
	}

	// 恰好到达TTL边界即视为过期
	clock.Advance(60 * time.Second)
	if _, err := cache.GetOrFetch("sv8-161", fetch); err != nil {
		t.Fatalf("GetOrFetch after expiry: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fetch calls = %d, want 2 after expiry", n)
	}
}

func TestPriceCacheSingleFlight(t *testing.T) {
	cache := NewPriceCache(time.Minute, nil)

	var calls int32
	gate := make(chan struct{})
	fetch := func(key string) (*Card, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return &Card{Id: key}, nil
	}

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.GetOrFetch("sv8-161", fetch); err != nil {
				t.Errorf("GetOrFetch: %v", err)
			}
		}()
	}

	// 等并发方都排到singleflight上再放行
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fetch calls = %d, want 1 for concurrent burst", n)
	}
}

func TestPriceCacheErrorNotCached(t *testing.T) {
	cache := NewPriceCache(time.Minute, nil)

	boom := errors.New("upstream 503")
	var calls int32
	failing := func(key string) (*Card, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	if _, err := cache.GetOrFetch("sv8-161", failing); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	// 失败不写缓存，下一次调用立即重试
	card, err := cache.GetOrFetch("sv8-161", func(key string) (*Card, error) {
		atomic.AddInt32(&calls, 1)
		return &Card{Id: key}, nil
	})
	if err != nil {
		t.Fatalf("retry after error: %v", err)
	}
	if card == nil || card.Id != "sv8-161" {
		t.Fatal("retry should return fresh card")
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fetch calls = %d, want 2", n)
	}
}

func TestPriceCacheInvalidate(t *testing.T) {
	cache := NewPriceCache(time.Minute, nil)
	var calls int32
	fetch := func(key string) (*Card, error) {
		atomic.AddInt32(&calls, 1)
		return &Card{Id: key}, nil
	}

	cache.GetOrFetch("sv8-161", fetch)
	cache.Invalidate("sv8-161")
	cache.GetOrFetch("sv8-161", fetch)

	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fetch calls = %d, want 2 after invalidate", n)
	}
}
