package market

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PriceCache 实时卡牌载荷的TTL缓存。
// 同一卡牌的并发拉取通过singleflight合并成一次上游请求；
// 拉取失败不会写入缓存，等待方共享同一个错误，下次调用可立即重试。
// 过期条目在下次查询时惰性删除，没有后台清理。

type cacheEntry struct {
	card      *Card
	expiresAt time.Time
}

type PriceCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewPriceCache now为nil时使用time.Now；注入时钟便于测试
func NewPriceCache(ttl time.Duration, now func() time.Time) *PriceCache {
	if now == nil {
		now = time.Now
	}
	return &PriceCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// GetOrFetch 命中未过期缓存直接返回；否则每个并发批次只调用一次fetch
func (c *PriceCache) GetOrFetch(key string, fetch func(key string) (*Card, error)) (*Card, error) {
	if card, ok := c.lookup(key); ok {
		return card, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// 二次检查：排队期间可能已有人写入
		if card, ok := c.lookup(key); ok {
			return card, nil
		}
		card, err := fetch(key)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{card: card, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return card, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Card), nil
}

// Invalidate 删除指定key的缓存
func (c *PriceCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *PriceCache) lookup(key string) (*Card, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.card, true
}
