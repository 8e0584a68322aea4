package dao

import (
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"context"
)

// CollectionJoinRow 收藏条目联查卡牌快照的结果行
type CollectionJoinRow struct {
	entity.CollectionItem
	CardName        string   `gorm:"column:card_name"`
	SetId           string   `gorm:"column:set_id"`
	Rarity          string   `gorm:"column:rarity"`
	ImageUrl        string   `gorm:"column:image_url"`
	TcgplayerMarket *float64 `gorm:"column:tcgplayer_market"`
	TcgplayerMid    *float64 `gorm:"column:tcgplayer_mid"`
}

// CollectionDAO 用户收藏数据访问对象接口
type CollectionDAO interface {
	// Upsert 添加收藏；user+card+condition 已存在时数量累加
	Upsert(ctx context.Context, item *entity.CollectionItem) error
	// Remove 删除收藏；condition为空时删除该卡全部品相
	Remove(ctx context.Context, userId, cardId, condition string) (bool, error)
	// UpdateQuantity 修改数量；qty<=0 时删除条目
	UpdateQuantity(ctx context.Context, userId, cardId, condition string, quantity int) (bool, error)
	// ListByUser 收藏列表（联查卡牌快照）；setId为空表示全部
	ListByUser(ctx context.Context, userId, setId string) ([]CollectionJoinRow, error)
	// SaveSnapshot 记录一次持仓价值快照
	SaveSnapshot(ctx context.Context, snap *entity.PortfolioSnapshot) error
	// History 最近days天的持仓价值历史，按时间升序
	History(ctx context.Context, userId string, days int) ([]entity.PortfolioSnapshot, error)
	// Stats 全局收藏统计
	Stats(ctx context.Context) (model.CollectionStats, error)
}
