package entity

import (
	"cardpulse/utils"
	"database/sql"

	"gorm.io/datatypes"
)

// CardSet 卡牌系列表（如 sv8 "Surging Sparks"）
type CardSet struct {
	Id          string         `gorm:"column:id;primary_key;type:varchar(20)" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Series      string         `gorm:"column:series;index:idx_set_series;type:varchar(60)" json:"series"`
	Total       int            `gorm:"column:total" json:"total"` // 收录卡牌数量
	ReleaseDate string         `gorm:"column:release_date;type:varchar(20)" json:"release_date"`
	LogoUrl     string         `gorm:"column:logo_url;type:varchar(255)" json:"logo_url"`
	UpdatedAt   utils.JsonTime `gorm:"column:updated_at" json:"updated_at"`
}

func (CardSet) TableName() string {
	return "card_sets"
}

// Card 卡牌快照表，价格来自上游API的定期落库
type Card struct {
	Id        string `gorm:"column:id;primary_key;type:varchar(32)" json:"id"` // 如 sv8-161
	SetId     string `gorm:"column:set_id;index:idx_card_set;type:varchar(20);not null" json:"set_id"`
	Number    string `gorm:"column:number;type:varchar(10)" json:"number"` // 系列内编号
	Name      string `gorm:"column:name;index:idx_card_name;type:varchar(120);not null" json:"name"`
	Rarity    string `gorm:"column:rarity;type:varchar(60)" json:"rarity"`
	Supertype string `gorm:"column:supertype;type:varchar(30)" json:"supertype"`
	ImageUrl  string `gorm:"column:image_url;type:varchar(255)" json:"image_url"`
	SmallUrl  string `gorm:"column:small_image_url;type:varchar(255)" json:"small_image_url"`

	// TCGPlayer 价格快照，NULL表示上游没有报价
	TcgplayerMarket sql.NullFloat64 `gorm:"column:tcgplayer_market;type:decimal(12,2)" json:"-"`
	TcgplayerMid    sql.NullFloat64 `gorm:"column:tcgplayer_mid;type:decimal(12,2)" json:"-"`
	TcgplayerLow    sql.NullFloat64 `gorm:"column:tcgplayer_low;type:decimal(12,2)" json:"-"`
	TcgplayerHigh   sql.NullFloat64 `gorm:"column:tcgplayer_high;type:decimal(12,2)" json:"-"`
	TcgplayerUrl    string          `gorm:"column:tcgplayer_url;type:varchar(255)" json:"tcgplayer_url"`
	// 上游 tcgplayer.prices 原始分层报价，供前端展示各印刷版本
	PricesJSON datatypes.JSON `gorm:"column:prices_json" json:"-"`

	UpdatedAt utils.JsonTime `gorm:"column:updated_at" json:"updated_at"`
}

func (Card) TableName() string {
	return "cards"
}
