package service

import (
	"cardpulse/internal/dao"
	"cardpulse/internal/market"
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"cardpulse/pkg/logger"
	"cardpulse/utils"
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hbollon/go-edlib"
)

const (
	searchCandidateLimit = 200 // 模糊搜索一次加载的候选上限
	searchScoreThreshold = 0.3 // 低于该相似度的候选直接丢弃
	shortQueryLen        = 3   // 短于该长度的查询走前缀匹配
)

// CardService 卡牌快照的查询、搜索和种子落库
type CardService struct {
	dao      dao.CardDAO
	resolver *market.Resolver
	client   *market.Client // 种子落库用，可为nil
}

func NewCardService(d dao.CardDAO, resolver *market.Resolver, client *market.Client) *CardService {
	return &CardService{dao: d, resolver: resolver, client: client}
}

// GetPrice 单卡价格：preferLive时先走实时（带low/mid/high明细），
// 实时失败降级快照；两边都没有报价时返回价格不可得
func (s *CardService) GetPrice(ctx context.Context, cardId string, preferLive bool) (model.PriceInfo, error) {
	info := model.PriceInfo{CardId: cardId}

	if preferLive {
		summary, err := s.resolver.Live(ctx, cardId)
		if err == nil {
			if scalar := summary.Scalar(); scalar != nil {
				info.Price = *scalar
				info.Source = "live"
				info.Market = summary.Market
				info.Low = summary.Low
				info.Mid = summary.Mid
				info.High = summary.High
				info.Url = summary.Url
				return info, nil
			}
		} else {
			logger.Debugf("live price for %s unavailable: %v", cardId, err)
		}
	}

	card, found, err := s.dao.GetByID(ctx, cardId)
	if err != nil {
		return info, errors.Wrap(ecode.DatabaseErr, err)
	}
	if !found {
		return info, errors.New(ecode.CardNotFoundErr)
	}

	info.Source = "snapshot"
	info.Market = nullFloat(card.TcgplayerMarket)
	info.Low = nullFloat(card.TcgplayerLow)
	info.Mid = nullFloat(card.TcgplayerMid)
	info.High = nullFloat(card.TcgplayerHigh)
	info.Url = card.TcgplayerUrl
	if info.Market != nil {
		info.Price = *info.Market
	} else if info.Mid != nil {
		info.Price = *info.Mid
	} else {
		return info, errors.New(ecode.PriceUnavailableErr)
	}
	return info, nil
}

// GetCard 卡牌详情，含系列信息
func (s *CardService) GetCard(ctx context.Context, cardId string) (model.CardDetail, error) {
	card, found, err := s.dao.GetByID(ctx, cardId)
	if err != nil {
		return model.CardDetail{}, errors.Wrap(ecode.DatabaseErr, err)
	}
	if !found {
		return model.CardDetail{}, errors.New(ecode.CardNotFoundErr)
	}
	return s.toDetail(ctx, &card), nil
}

// GetBySetNumber 按系列+编号查卡（如 sv8 / 161）
func (s *CardService) GetBySetNumber(ctx context.Context, setId, number string) (model.CardDetail, error) {
	card, found, err := s.dao.GetBySetNumber(ctx, setId, number)
	if err != nil {
		return model.CardDetail{}, errors.Wrap(ecode.DatabaseErr, err)
	}
	if !found {
		return model.CardDetail{}, errors.New(ecode.CardNotFoundErr)
	}
	return s.toDetail(ctx, &card), nil
}

type scoredCard struct {
	card  *entity.Card
	score float64
}

// Search 模糊搜索。短查询直接走名称前缀匹配；其余加载候选集后
// 按归一化名称的编辑距离相似度打分：完全一致+0.5、前缀命中+0.3，
// 低于阈值的丢弃，得分相同按市价排序。
func (s *CardService) Search(ctx context.Context, query, setId, rarity string, limit int) ([]model.CardSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	normQuery := utils.NormalizeText(query)
	if normQuery == "" {
		return []model.CardSummary{}, nil
	}

	if len(normQuery) < shortQueryLen {
		cards, err := s.dao.PrefixSearch(ctx, query, setId, rarity, limit)
		if err != nil {
			return nil, errors.Wrap(ecode.DatabaseErr, err)
		}
		return toSummaries(cards), nil
	}

	candidates, err := s.dao.SearchCandidates(ctx, setId, rarity, searchCandidateLimit)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}

	scored := make([]scoredCard, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		normName := utils.NormalizeText(c.Name)
		if normName == "" {
			continue
		}

		sim, err := edlib.StringsSimilarity(normQuery, normName, edlib.Levenshtein)
		if err != nil {
			continue
		}
		score := float64(sim)
		if normName == normQuery {
			score += 0.5
		} else if strings.HasPrefix(normName, normQuery) || strings.Contains(normName, normQuery) {
			score += 0.3
		}
		if score <= searchScoreThreshold {
			continue
		}
		scored = append(scored, scoredCard{card: c, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].card.TcgplayerMarket.Float64 > scored[j].card.TcgplayerMarket.Float64
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]model.CardSummary, 0, len(scored))
	for _, sc := range scored {
		out = append(out, toSummary(sc.card))
	}
	return out, nil
}

// Related 同系列中市价最接近的卡牌
func (s *CardService) Related(ctx context.Context, cardId string, limit int) ([]model.CardSummary, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	card, found, err := s.dao.GetByID(ctx, cardId)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}
	if !found {
		return nil, errors.New(ecode.CardNotFoundErr)
	}

	price := 0.0
	if card.TcgplayerMarket.Valid {
		price = card.TcgplayerMarket.Float64
	} else if card.TcgplayerMid.Valid {
		price = card.TcgplayerMid.Float64
	}

	cards, err := s.dao.RelatedByPrice(ctx, card.SetId, card.Id, price, limit)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}
	return toSummaries(cards), nil
}

// ListSets 系列列表
func (s *CardService) ListSets(ctx context.Context, series string) ([]model.SetSummary, error) {
	sets, err := s.dao.ListSets(ctx, series)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}
	out := make([]model.SetSummary, 0, len(sets))
	for i := range sets {
		out = append(out, toSetSummary(&sets[i]))
	}
	return out, nil
}

// GetSet 系列详情
func (s *CardService) GetSet(ctx context.Context, setId string) (model.SetSummary, error) {
	set, found, err := s.dao.GetSet(ctx, setId)
	if err != nil {
		return model.SetSummary{}, errors.Wrap(ecode.DatabaseErr, err)
	}
	if !found {
		return model.SetSummary{}, errors.New(ecode.CardNotFoundErr)
	}
	return toSetSummary(&set), nil
}

// SeedSet 从上游拉取整个系列并落库，返回写入的卡牌数。
// 运营初始化和定期刷新快照用，上游分页逐页拉取。
func (s *CardService) SeedSet(ctx context.Context, setId string) (int, error) {
	if s.client == nil {
		return 0, errors.NewWithMsg(ecode.InternalErr, "upstream client not configured")
	}

	count := 0
	for page := 1; ; page++ {
		cards, total, err := s.client.FetchSetCards(ctx, setId, page, 250)
		if err != nil {
			return count, errors.Wrap(ecode.InternalErr, err)
		}
		if len(cards) == 0 {
			break
		}

		// 系列信息取第一张卡携带的set载荷
		if page == 1 && cards[0].Set != nil {
			sp := cards[0].Set
			set := &entity.CardSet{
				Id:          sp.Id,
				Name:        sp.Name,
				Series:      sp.Series,
				Total:       sp.Total,
				ReleaseDate: sp.ReleaseDate,
				UpdatedAt:   utils.JsonTime(time.Now()),
			}
			if err := s.dao.UpsertSet(ctx, set); err != nil {
				return count, errors.Wrap(ecode.DatabaseErr, err)
			}
		}

		for _, payload := range cards {
			ent := cardEntityFromPayload(payload)
			if ent == nil {
				continue
			}
			if err := s.dao.Upsert(ctx, ent); err != nil {
				return count, errors.Wrap(ecode.DatabaseErr, err)
			}
			count++
		}

		if count >= total {
			break
		}
	}
	logger.Infof("seeded set %s with %d cards", setId, count)
	return count, nil
}

// cardEntityFromPayload 上游载荷到快照行的映射
func cardEntityFromPayload(payload *market.Card) *entity.Card {
	if payload == nil || payload.Id == "" {
		return nil
	}
	ent := &entity.Card{
		Id:        payload.Id,
		Number:    payload.Number,
		Name:      payload.Name,
		Rarity:    payload.Rarity,
		Supertype: payload.Supertype,
		UpdatedAt: utils.JsonTime(time.Now()),
	}
	if payload.Set != nil {
		ent.SetId = payload.Set.Id
	} else if idx := strings.LastIndex(payload.Id, "-"); idx > 0 {
		ent.SetId = payload.Id[:idx]
	}
	if payload.Images != nil {
		ent.ImageUrl = payload.Images.Large
		ent.SmallUrl = payload.Images.Small
	}

	summary := market.ExtractPrices(payload)
	ent.TcgplayerMarket = toNullFloat(summary.Market)
	ent.TcgplayerMid = toNullFloat(summary.Mid)
	ent.TcgplayerLow = toNullFloat(summary.Low)
	ent.TcgplayerHigh = toNullFloat(summary.High)
	ent.TcgplayerUrl = summary.Url
	if payload.Tcgplayer != nil && payload.Tcgplayer.Prices != nil {
		if raw, err := json.Marshal(payload.Tcgplayer.Prices); err == nil {
			ent.PricesJSON = raw
		}
	}
	return ent
}

func (s *CardService) toDetail(ctx context.Context, card *entity.Card) model.CardDetail {
	detail := model.CardDetail{
		CardSummary:   toSummary(card),
		TcgplayerMid:  nullFloat(card.TcgplayerMid),
		TcgplayerLow:  nullFloat(card.TcgplayerLow),
		TcgplayerHigh: nullFloat(card.TcgplayerHigh),
		TcgplayerUrl:  card.TcgplayerUrl,
	}
	if !time.Time(card.UpdatedAt).IsZero() {
		detail.PricesUpdatedAt = time.Time(card.UpdatedAt).Format("2006-01-02 15:04:05")
	}
	if set, found, err := s.dao.GetSet(ctx, card.SetId); err == nil && found {
		detail.SetName = set.Name
		detail.SetSeries = set.Series
	}
	return detail
}

func toSummary(card *entity.Card) model.CardSummary {
	return model.CardSummary{
		Id:              card.Id,
		SetId:           card.SetId,
		Number:          card.Number,
		Name:            card.Name,
		Rarity:          card.Rarity,
		Supertype:       card.Supertype,
		ImageUrl:        card.ImageUrl,
		SmallUrl:        card.SmallUrl,
		TcgplayerMarket: nullFloat(card.TcgplayerMarket),
	}
}

func toSummaries(cards []entity.Card) []model.CardSummary {
	out := make([]model.CardSummary, 0, len(cards))
	for i := range cards {
		out = append(out, toSummary(&cards[i]))
	}
	return out
}

func toSetSummary(set *entity.CardSet) model.SetSummary {
	return model.SetSummary{
		Id:          set.Id,
		Name:        set.Name,
		Series:      set.Series,
		Total:       set.Total,
		ReleaseDate: set.ReleaseDate,
		LogoUrl:     set.LogoUrl,
	}
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
