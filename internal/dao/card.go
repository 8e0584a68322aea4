package dao

import (
	"cardpulse/internal/market"
	"cardpulse/internal/model/entity"
	"context"
)

// CardDAO 卡牌快照数据访问对象接口
type CardDAO interface {
	// SnapshotPrice 快照价格查询，供价格解析器回退使用
	market.SnapshotSource

	// GetByID 按卡牌ID查询，found=false表示不存在
	GetByID(ctx context.Context, cardId string) (entity.Card, bool, error)
	// GetBySetNumber 按系列+编号查询（如 sv8 / 161）
	GetBySetNumber(ctx context.Context, setId, number string) (entity.Card, bool, error)
	// SearchCandidates 加载模糊搜索候选集，按市价倒序截断
	SearchCandidates(ctx context.Context, setId, rarity string, limit int) ([]entity.Card, error)
	// PrefixSearch 短查询的前缀匹配
	PrefixSearch(ctx context.Context, prefix, setId, rarity string, limit int) ([]entity.Card, error)
	// RelatedByPrice 同系列中市价最接近的卡牌
	RelatedByPrice(ctx context.Context, setId, excludeId string, price float64, limit int) ([]entity.Card, error)
	// Upsert 写入或更新快照（种子脚本使用）
	Upsert(ctx context.Context, card *entity.Card) error

	// ListSets 系列列表，series为空表示全部
	ListSets(ctx context.Context, series string) ([]entity.CardSet, error)
	// GetSet 按ID查询系列
	GetSet(ctx context.Context, setId string) (entity.CardSet, bool, error)
	// UpsertSet 写入或更新系列
	UpsertSet(ctx context.Context, set *entity.CardSet) error
}
