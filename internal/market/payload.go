package market

// 上游 Pokémon TCG API v2 的卡牌报价载荷。
// tcgplayer.prices 按印刷版本分层（holofoil、normal……），层内给出
// low/mid/high/market；字段缺失时为nil，不能当0处理。

// TierPrices 单个印刷版本的报价
type TierPrices struct {
	Low    *float64 `json:"low"`
	Mid    *float64 `json:"mid"`
	High   *float64 `json:"high"`
	Market *float64 `json:"market"`
}

// TcgplayerPrices 分层报价，同时兼容载荷级的扁平字段
type TcgplayerPrices struct {
	Holofoil             *TierPrices `json:"holofoil"`
	FirstEditionHolofoil *TierPrices `json:"1stEditionHolofoil"`
	UnlimitedHolofoil    *TierPrices `json:"unlimitedHolofoil"`
	ReverseHolofoil      *TierPrices `json:"reverseHolofoil"`
	Normal               *TierPrices `json:"normal"`

	// 个别载荷直接在prices层给价格
	Low    *float64 `json:"low"`
	Mid    *float64 `json:"mid"`
	High   *float64 `json:"high"`
	Market *float64 `json:"market"`
}

// Tcgplayer 上游 tcgplayer 区块
type Tcgplayer struct {
	Url    string           `json:"url"`
	Prices *TcgplayerPrices `json:"prices"`
}

// CardImages 卡图
type CardImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// CardSetPayload 上游系列信息
type CardSetPayload struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	Total       int    `json:"total"`
	ReleaseDate string `json:"releaseDate"`
}

// Card 上游卡牌载荷（只取用到的字段）
type Card struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	Number    string          `json:"number"`
	Rarity    string          `json:"rarity"`
	Supertype string          `json:"supertype"`
	Set       *CardSetPayload `json:"set"`
	Images    *CardImages     `json:"images"`
	Tcgplayer *Tcgplayer      `json:"tcgplayer"`
}

// PriceSummary 规整后的单卡报价
type PriceSummary struct {
	Market *float64
	Low    *float64
	Mid    *float64
	High   *float64
	Url    string
}

// Scalar 其它模块使用的标量价格：market优先，否则mid，都没有返回nil
func (p PriceSummary) Scalar() *float64 {
	if p.Market != nil {
		return p.Market
	}
	return p.Mid
}

// ExtractPrices 按版本优先级规整报价：
// holofoil → 1stEditionHolofoil → unlimitedHolofoil → reverseHolofoil → normal，
// 选中层缺字段时逐字段回退到载荷级价格。
func ExtractPrices(card *Card) PriceSummary {
	var out PriceSummary
	if card == nil || card.Tcgplayer == nil {
		return out
	}
	out.Url = card.Tcgplayer.Url
	prices := card.Tcgplayer.Prices
	if prices == nil {
		return out
	}

	tier := firstTier(
		prices.Holofoil,
		prices.FirstEditionHolofoil,
		prices.UnlimitedHolofoil,
		prices.ReverseHolofoil,
		prices.Normal,
	)
	if tier == nil {
		tier = &TierPrices{}
	}

	out.Market = coalesce(tier.Market, prices.Market)
	out.Low = coalesce(tier.Low, prices.Low)
	out.Mid = coalesce(tier.Mid, prices.Mid)
	out.High = coalesce(tier.High, prices.High)
	return out
}

func firstTier(tiers ...*TierPrices) *TierPrices {
	for _, t := range tiers {
		if t != nil {
			return t
		}
	}
	return nil
}

func coalesce(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
