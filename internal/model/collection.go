package model

// AddCollectionRequest 添加收藏
type AddCollectionRequest struct {
	CardId        string   `json:"card_id" binding:"required"`
	Quantity      int      `json:"quantity"`
	Condition     string   `json:"condition"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	PurchaseDate  string   `json:"purchase_date,omitempty"` // 2006-01-02
	Notes         string   `json:"notes,omitempty"`
}

// UpdateQuantityRequest 修改数量，0表示删除该条目
type UpdateQuantityRequest struct {
	Condition string `json:"condition" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// CollectionItemView 收藏条目视图，带卡牌信息和当前市价
type CollectionItemView struct {
	Id            int64    `json:"id"`
	CardId        string   `json:"card_id"`
	CardName      string   `json:"card_name"`
	SetId         string   `json:"set_id"`
	Rarity        string   `json:"rarity,omitempty"`
	ImageUrl      string   `json:"image_url,omitempty"`
	Quantity      int      `json:"quantity"`
	Condition     string   `json:"condition"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	CurrentPrice  *float64 `json:"current_price,omitempty"` // 快照市价，market 优先否则 mid
	TotalValue    *float64 `json:"total_value,omitempty"`
	ProfitLoss    *float64 `json:"profit_loss,omitempty"`
	DateAdded     string   `json:"date_added"`
}

// PortfolioSummary 持仓汇总
type PortfolioSummary struct {
	TotalValue  float64        `json:"total_value"`
	TotalCost   *float64       `json:"total_cost,omitempty"`
	ProfitLoss  *float64       `json:"profit_loss,omitempty"`
	RoiPercent  *float64       `json:"roi_percent,omitempty"`
	TotalCards  int            `json:"total_cards"`
	UniqueCards int            `json:"unique_cards"`
	Sets        map[string]int `json:"sets"`
	Rarities    map[string]int `json:"rarities"`
}

// PortfolioPoint 持仓价值历史点
type PortfolioPoint struct {
	TotalValue float64 `json:"total_value"`
	TotalCards int     `json:"total_cards"`
	RecordedAt string  `json:"recorded_at"`
}

// CollectionStats 全局收藏统计
type CollectionStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalCards        int64 `json:"total_cards"`
	UniqueCardsListed int64 `json:"unique_cards_tracked"`
}
