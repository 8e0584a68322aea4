package dao

import (
	"cardpulse/internal/consts"
	"cardpulse/pkg/cache"
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RecentAlertStore 用户最近触发通知的redis存储。
// 只是给客户端一个"最近发生了什么"的视图，不承担投递保证。

type RecentAlertStore struct {
	rdb   *redis.Client
	limit int64
}

func NewRecentAlertStore(limit int) *RecentAlertStore {
	if limit <= 0 {
		limit = 50
	}
	return &RecentAlertStore{rdb: cache.GetRedisClient(), limit: int64(limit)}
}

// getKey 生成 Redis Key: Alert_Recent_list:USER_ID
func (r *RecentAlertStore) getKey(userId string) string {
	return fmt.Sprintf("%s%s", consts.UserRecentAlertPrefix, userId)
}

// Push 写入一条通知并裁剪到limit条，整个key带默认过期时间
func (r *RecentAlertStore) Push(ctx context.Context, userId string, payload []byte) error {
	key := r.getKey(userId)

	pipe := r.rdb.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, r.limit-1)
	pipe.Expire(ctx, key, consts.RedisExrDefault)
	_, err := pipe.Exec(ctx)
	return err
}

// List 最近的通知，新的在前
func (r *RecentAlertStore) List(ctx context.Context, userId string) ([]string, error) {
	items, err := r.rdb.LRange(ctx, r.getKey(userId), 0, r.limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load recent alerts for %s: %w", userId, err)
	}
	return items, nil
}
