package dao

import (
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"context"
	"time"
)

// AlertDAO 价格提醒数据访问对象接口
type AlertDAO interface {
	// Create 创建提醒，回填自增Id
	Create(ctx context.Context, alert *entity.PriceAlert) error
	// ListByUser 查询用户全部提醒，按创建时间倒序
	ListByUser(ctx context.Context, userId string) ([]entity.PriceAlert, error)
	// ListActive 查询活跃提醒；userId为空表示全量扫描
	ListActive(ctx context.Context, userId string) ([]entity.PriceAlert, error)
	// Delete 删除提醒（必须属于该用户），返回是否删到
	Delete(ctx context.Context, id int64, userId string) (bool, error)
	// SetActive 启用/停用提醒，返回是否命中
	SetActive(ctx context.Context, id int64, userId string, active bool) (bool, error)
	// UpdateObservation 扫描后的状态回写：每次都写last_seen_price/last_checked，
	// 触发时附带last_triggered。firedAt为nil表示未触发
	UpdateObservation(ctx context.Context, id int64, value float64, checkedAt time.Time, firedAt *time.Time) error
	// Stats 提醒统计
	Stats(ctx context.Context) (model.AlertStats, error)
}
