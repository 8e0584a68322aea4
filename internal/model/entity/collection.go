package entity

import (
	"cardpulse/utils"
	"database/sql"
)

// CollectionItem 用户收藏条目，user+card+condition 唯一，重复添加累加数量
type CollectionItem struct {
	Id            int64           `gorm:"column:id;primary_key;autoIncrement" json:"id"`
	UserId        string          `gorm:"column:user_id;uniqueIndex:uniq_user_card_cond;type:varchar(64);not null" json:"user_id"`
	CardId        string          `gorm:"column:card_id;uniqueIndex:uniq_user_card_cond;index:idx_coll_card;type:varchar(32);not null" json:"card_id"`
	Condition     string          `gorm:"column:condition;uniqueIndex:uniq_user_card_cond;type:varchar(20);not null;default:near_mint" json:"condition"`
	Quantity      int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	PurchasePrice sql.NullFloat64 `gorm:"column:purchase_price;type:decimal(12,2)" json:"-"`
	PurchaseDate  sql.NullTime    `gorm:"column:purchase_date" json:"-"`
	Notes         string          `gorm:"column:notes;type:varchar(255)" json:"notes"`
	DateAdded     utils.JsonTime  `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

func (CollectionItem) TableName() string {
	return "user_collections"
}

// PortfolioSnapshot 持仓价值历史快照（组合层面，不是单卡价格历史）
type PortfolioSnapshot struct {
	Id         int64          `gorm:"column:id;primary_key;autoIncrement" json:"id"`
	UserId     string         `gorm:"column:user_id;index:idx_portfolio_user;type:varchar(64);not null" json:"user_id"`
	TotalValue float64        `gorm:"column:total_value;type:decimal(14,2);not null" json:"total_value"`
	TotalCards int            `gorm:"column:total_cards;not null" json:"total_cards"`
	RecordedAt utils.JsonTime `gorm:"column:recorded_at;autoCreateTime" json:"recorded_at"`
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_history"
}
