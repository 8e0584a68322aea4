package market

import (
	"cardpulse/pkg/logger"
	"context"
	"errors"
)

// ErrPriceUnavailable 实时和快照两条路都拿不到价格。
// 对扫描方来说这是正常结果，跳过该卡即可，不应该让整批失败。
var ErrPriceUnavailable = errors.New("price unavailable from live and snapshot sources")

// SnapshotPrice 本地快照价格，字段为nil表示快照里没有该报价
type SnapshotPrice struct {
	Market *float64
	Mid    *float64
}

// SnapshotSource 本地快照查询，found=false表示卡牌不在快照里
type SnapshotSource interface {
	SnapshotPrice(ctx context.Context, cardId string) (SnapshotPrice, bool, error)
}

// LiveFetcher 实时拉取（*Client满足该接口，测试用假实现）
type LiveFetcher interface {
	FetchCard(ctx context.Context, cardId string) (*Card, error)
}

// Resolver 单卡权威价格解析：优先实时（经缓存），失败回退快照
type Resolver struct {
	fetcher  LiveFetcher
	cache    *PriceCache
	snapshot SnapshotSource
}

func NewResolver(fetcher LiveFetcher, cache *PriceCache, snapshot SnapshotSource) *Resolver {
	return &Resolver{fetcher: fetcher, cache: cache, snapshot: snapshot}
}

// Resolve 返回标量价格。preferLive时先走实时路径，任何失败
// （超时、未收录、载荷异常）都静默降级到快照；两边都没有时
// 返回ErrPriceUnavailable。
func (r *Resolver) Resolve(ctx context.Context, cardId string, preferLive bool) (float64, error) {
	if preferLive && r.fetcher != nil {
		summary, err := r.Live(ctx, cardId)
		if err == nil {
			if s := summary.Scalar(); s != nil {
				return *s, nil
			}
		} else {
			logger.Debugf("live price for %s unavailable, falling back to snapshot: %v", cardId, err)
		}
	}

	if r.snapshot != nil {
		sp, found, err := r.snapshot.SnapshotPrice(ctx, cardId)
		if err != nil {
			logger.Errorf("snapshot price lookup failed for %s: %v", cardId, err)
			return 0, ErrPriceUnavailable
		}
		if found {
			if sp.Market != nil {
				return *sp.Market, nil
			}
			if sp.Mid != nil {
				return *sp.Mid, nil
			}
		}
	}
	return 0, ErrPriceUnavailable
}

// Live 实时报价（经缓存），给卡牌详情接口展示low/mid/high用
func (r *Resolver) Live(ctx context.Context, cardId string) (PriceSummary, error) {
	card, err := r.cache.GetOrFetch(cardId, func(key string) (*Card, error) {
		return r.fetcher.FetchCard(ctx, key)
	})
	if err != nil {
		return PriceSummary{}, err
	}
	return ExtractPrices(card), nil
}
