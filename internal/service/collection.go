package service

import (
	"cardpulse/internal/consts"
	"cardpulse/internal/dao"
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"cardpulse/utils"
	"context"
	"database/sql"
	"time"
)

// CollectionService 用户收藏和持仓估值
type CollectionService struct {
	dao     dao.CollectionDAO
	cardDao dao.CardDAO
}

func NewCollectionService(d dao.CollectionDAO, cardDao dao.CardDAO) *CollectionService {
	return &CollectionService{dao: d, cardDao: cardDao}
}

// Add 添加收藏。卡牌必须在快照里；同一用户同卡同品相重复添加时累加数量
func (s *CollectionService) Add(ctx context.Context, userId string, req model.AddCollectionRequest) error {
	if _, found, err := s.cardDao.GetByID(ctx, req.CardId); err != nil {
		return errors.Wrap(ecode.DatabaseErr, err)
	} else if !found {
		return errors.New(ecode.CardNotFoundErr)
	}

	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	cond := req.Condition
	if cond == "" {
		cond = consts.CardConditionNearMint
	}

	item := &entity.CollectionItem{
		UserId:    userId,
		CardId:    req.CardId,
		Condition: cond,
		Quantity:  qty,
		Notes:     req.Notes,
		DateAdded: utils.JsonTime(time.Now()),
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = sql.NullFloat64{Float64: *req.PurchasePrice, Valid: true}
	}
	if req.PurchaseDate != "" {
		if t, err := time.Parse(consts.DateLayout, req.PurchaseDate); err == nil {
			item.PurchaseDate = sql.NullTime{Time: t, Valid: true}
		}
	}

	if err := s.dao.Upsert(ctx, item); err != nil {
		return errors.Wrap(ecode.DatabaseErr, err)
	}
	return nil
}

// Remove 删除收藏；condition为空时删除该卡全部品相
func (s *CollectionService) Remove(ctx context.Context, userId, cardId, condition string) error {
	ok, err := s.dao.Remove(ctx, userId, cardId, condition)
	if err != nil {
		return errors.Wrap(ecode.DatabaseErr, err)
	}
	if !ok {
		return errors.New(ecode.NotFound)
	}
	return nil
}

// UpdateQuantity 修改数量，<=0 等价删除
func (s *CollectionService) UpdateQuantity(ctx context.Context, userId, cardId, condition string, quantity int) error {
	ok, err := s.dao.UpdateQuantity(ctx, userId, cardId, condition, quantity)
	if err != nil {
		return errors.Wrap(ecode.DatabaseErr, err)
	}
	if !ok {
		return errors.New(ecode.NotFound)
	}
	return nil
}

// List 收藏列表，逐条带上快照市价和浮动盈亏
func (s *CollectionService) List(ctx context.Context, userId, setId string) ([]model.CollectionItemView, error) {
	rows, err := s.dao.ListByUser(ctx, userId, setId)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}

	out := make([]model.CollectionItemView, 0, len(rows))
	for i := range rows {
		out = append(out, toItemView(&rows[i]))
	}
	return out, nil
}

// Summary 持仓汇总：总市值、成本、盈亏、收益率、按系列/稀有度的张数分布。
// 成本相关字段只有在至少一条记录带purchase_price时才返回。
func (s *CollectionService) Summary(ctx context.Context, userId string) (model.PortfolioSummary, error) {
	rows, err := s.dao.ListByUser(ctx, userId, "")
	if err != nil {
		return model.PortfolioSummary{}, errors.Wrap(ecode.DatabaseErr, err)
	}

	summary := model.PortfolioSummary{
		Sets:     make(map[string]int),
		Rarities: make(map[string]int),
	}
	totalCost := 0.0
	hasCost := false

	for i := range rows {
		r := &rows[i]
		summary.TotalCards += r.Quantity
		summary.UniqueCards++
		if r.SetId != "" {
			summary.Sets[r.SetId] += r.Quantity
		}
		if r.Rarity != "" {
			summary.Rarities[r.Rarity] += r.Quantity
		}

		if price := rowPrice(r); price != nil {
			summary.TotalValue += *price * float64(r.Quantity)
		}
		if r.PurchasePrice.Valid {
			totalCost += r.PurchasePrice.Float64 * float64(r.Quantity)
			hasCost = true
		}
	}

	if hasCost {
		summary.TotalCost = &totalCost
		pl := summary.TotalValue - totalCost
		summary.ProfitLoss = &pl
		if totalCost > 0 {
			roi := pl / totalCost * 100
			summary.RoiPercent = &roi
		}
	}
	return summary, nil
}

// RecordSnapshot 把当前持仓市值落一条历史点
func (s *CollectionService) RecordSnapshot(ctx context.Context, userId string) (model.PortfolioPoint, error) {
	summary, err := s.Summary(ctx, userId)
	if err != nil {
		return model.PortfolioPoint{}, err
	}

	snap := &entity.PortfolioSnapshot{
		UserId:     userId,
		TotalValue: summary.TotalValue,
		TotalCards: summary.TotalCards,
		RecordedAt: utils.JsonTime(time.Now()),
	}
	if err := s.dao.SaveSnapshot(ctx, snap); err != nil {
		return model.PortfolioPoint{}, errors.Wrap(ecode.DatabaseErr, err)
	}
	return model.PortfolioPoint{
		TotalValue: snap.TotalValue,
		TotalCards: snap.TotalCards,
		RecordedAt: time.Time(snap.RecordedAt).Format(consts.TimeLayout),
	}, nil
}

// History 最近days天的持仓价值走势
func (s *CollectionService) History(ctx context.Context, userId string, days int) ([]model.PortfolioPoint, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	snaps, err := s.dao.History(ctx, userId, days)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}
	out := make([]model.PortfolioPoint, 0, len(snaps))
	for i := range snaps {
		out = append(out, model.PortfolioPoint{
			TotalValue: snaps[i].TotalValue,
			TotalCards: snaps[i].TotalCards,
			RecordedAt: time.Time(snaps[i].RecordedAt).Format(consts.TimeLayout),
		})
	}
	return out, nil
}

// Stats 全局收藏统计
func (s *CollectionService) Stats(ctx context.Context) (model.CollectionStats, error) {
	stats, err := s.dao.Stats(ctx)
	if err != nil {
		return stats, errors.Wrap(ecode.DatabaseErr, err)
	}
	return stats, nil
}

// rowPrice 联查行的当前单价：market优先，否则mid
func rowPrice(r *dao.CollectionJoinRow) *float64 {
	if r.TcgplayerMarket != nil {
		return r.TcgplayerMarket
	}
	return r.TcgplayerMid
}

func toItemView(r *dao.CollectionJoinRow) model.CollectionItemView {
	view := model.CollectionItemView{
		Id:        r.Id,
		CardId:    r.CardId,
		CardName:  r.CardName,
		SetId:     r.SetId,
		Rarity:    r.Rarity,
		ImageUrl:  r.ImageUrl,
		Quantity:  r.Quantity,
		Condition: r.Condition,
		DateAdded: time.Time(r.DateAdded).Format(consts.TimeLayout),
	}
	if r.PurchasePrice.Valid {
		v := r.PurchasePrice.Float64
		view.PurchasePrice = &v
	}
	if price := rowPrice(r); price != nil {
		view.CurrentPrice = price
		total := *price * float64(r.Quantity)
		view.TotalValue = &total
		if r.PurchasePrice.Valid {
			pl := (*price - r.PurchasePrice.Float64) * float64(r.Quantity)
			view.ProfitLoss = &pl
		}
	}
	return view
}
