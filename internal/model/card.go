package model

// PriceInfo 单卡价格查询结果
type PriceInfo struct {
	CardId string   `json:"card_id"`
	Price  float64  `json:"price"`  // market 优先，否则 mid
	Source string   `json:"source"` // live / snapshot
	Market *float64 `json:"market,omitempty"`
	Low    *float64 `json:"low,omitempty"`
	Mid    *float64 `json:"mid,omitempty"`
	High   *float64 `json:"high,omitempty"`
	Url    string   `json:"url,omitempty"`
}

// CardSummary 搜索与列表里的卡牌摘要
type CardSummary struct {
	Id              string   `json:"id"`
	SetId           string   `json:"set_id"`
	Number          string   `json:"number,omitempty"`
	Name            string   `json:"name"`
	Rarity          string   `json:"rarity,omitempty"`
	Supertype       string   `json:"supertype,omitempty"`
	ImageUrl        string   `json:"image_url,omitempty"`
	SmallUrl        string   `json:"small_image_url,omitempty"`
	TcgplayerMarket *float64 `json:"tcgplayer_market,omitempty"`
}

// CardDetail 卡牌详情，含系列信息和快照价格
type CardDetail struct {
	CardSummary
	SetName         string   `json:"set_name,omitempty"`
	SetSeries       string   `json:"set_series,omitempty"`
	TcgplayerMid    *float64 `json:"tcgplayer_mid,omitempty"`
	TcgplayerLow    *float64 `json:"tcgplayer_low,omitempty"`
	TcgplayerHigh   *float64 `json:"tcgplayer_high,omitempty"`
	TcgplayerUrl    string   `json:"tcgplayer_url,omitempty"`
	PricesUpdatedAt string   `json:"prices_updated_at,omitempty"`
}

// SetSummary 系列摘要
type SetSummary struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series,omitempty"`
	Total       int    `json:"total"`
	ReleaseDate string `json:"release_date,omitempty"`
	LogoUrl     string `json:"logo_url,omitempty"`
}
