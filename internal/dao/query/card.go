package query

import (
	"cardpulse/internal/dao"
	"cardpulse/internal/market"
	"cardpulse/internal/model/entity"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardDAOImpl Gorm 实现
type CardDAOImpl struct {
	db *gorm.DB
}

func NewCardDAO(db *gorm.DB) dao.CardDAO {
	return &CardDAOImpl{db: db}
}

// SnapshotPrice 价格解析器的快照回退入口
func (d *CardDAOImpl) SnapshotPrice(ctx context.Context, cardId string) (market.SnapshotPrice, bool, error) {
	var card entity.Card
	err := d.db.WithContext(ctx).
		Select("tcgplayer_market", "tcgplayer_mid").
		Where("id = ?", cardId).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return market.SnapshotPrice{}, false, nil
	}
	if err != nil {
		return market.SnapshotPrice{}, false, fmt.Errorf("failed to query snapshot price for %s: %w", cardId, err)
	}
	var sp market.SnapshotPrice
	if card.TcgplayerMarket.Valid {
		v := card.TcgplayerMarket.Float64
		sp.Market = &v
	}
	if card.TcgplayerMid.Valid {
		v := card.TcgplayerMid.Float64
		sp.Mid = &v
	}
	return sp, true, nil
}

func (d *CardDAOImpl) GetByID(ctx context.Context, cardId string) (entity.Card, bool, error) {
	var card entity.Card
	err := d.db.WithContext(ctx).Where("id = ?", cardId).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return card, false, nil
	}
	if err != nil {
		return card, false, fmt.Errorf("failed to get card %s: %w", cardId, err)
	}
	return card, true, nil
}

// GetBySetNumber 先精确匹配 {set}-{number}，再模糊匹配
func (d *CardDAOImpl) GetBySetNumber(ctx context.Context, setId, number string) (entity.Card, bool, error) {
	card, found, err := d.GetByID(ctx, setId+"-"+number)
	if err != nil || found {
		return card, found, err
	}
	err = d.db.WithContext(ctx).
		Where("set_id = ? AND id LIKE ?", setId, "%"+setId+"-"+number+"%").
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return card, false, nil
	}
	if err != nil {
		return card, false, fmt.Errorf("failed to get card %s-%s: %w", setId, number, err)
	}
	return card, true, nil
}

// SearchCandidates 模糊搜索的候选集：按市价倒序截断，打分在service层做
func (d *CardDAOImpl) SearchCandidates(ctx context.Context, setId, rarity string, limit int) ([]entity.Card, error) {
	var cards []entity.Card
	q := d.db.WithContext(ctx).Model(&entity.Card{})
	if setId != "" {
		q = q.Where("set_id = ?", setId)
	}
	if rarity != "" {
		q = q.Where("rarity LIKE ? OR rarity = ?", "%"+rarity+"%", rarity)
	}
	err := q.Order("tcgplayer_market IS NULL, tcgplayer_market DESC").
		Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load search candidates: %w", err)
	}
	return cards, nil
}

func (d *CardDAOImpl) PrefixSearch(ctx context.Context, prefix, setId, rarity string, limit int) ([]entity.Card, error) {
	var cards []entity.Card
	q := d.db.WithContext(ctx).Where("name LIKE ?", prefix+"%")
	if setId != "" {
		q = q.Where("set_id = ?", setId)
	}
	if rarity != "" {
		q = q.Where("rarity LIKE ? OR rarity = ?", "%"+rarity+"%", rarity)
	}
	err := q.Order("tcgplayer_market IS NULL, tcgplayer_market DESC").
		Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to prefix search cards: %w", err)
	}
	return cards, nil
}

// RelatedByPrice 同系列中市价最接近的卡牌
func (d *CardDAOImpl) RelatedByPrice(ctx context.Context, setId, excludeId string, price float64, limit int) ([]entity.Card, error) {
	var cards []entity.Card
	err := d.db.WithContext(ctx).
		Where("set_id = ? AND id != ?", setId, excludeId).
		Clauses(clause.OrderBy{
			Expression: gorm.Expr("ABS(COALESCE(tcgplayer_market, 0) - ?) ASC", price),
		}).
		Limit(limit).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load related cards for %s: %w", excludeId, err)
	}
	return cards, nil
}

func (d *CardDAOImpl) Upsert(ctx context.Context, card *entity.Card) error {
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(card).Error
	if err != nil {
		return fmt.Errorf("failed to upsert card %s: %w", card.Id, err)
	}
	return nil
}

func (d *CardDAOImpl) ListSets(ctx context.Context, series string) ([]entity.CardSet, error) {
	var sets []entity.CardSet
	q := d.db.WithContext(ctx).Order("release_date DESC")
	if series != "" {
		q = q.Where("series = ?", series)
	}
	if err := q.Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("failed to list card sets: %w", err)
	}
	return sets, nil
}

func (d *CardDAOImpl) GetSet(ctx context.Context, setId string) (entity.CardSet, bool, error) {
	var set entity.CardSet
	err := d.db.WithContext(ctx).Where("id = ?", setId).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return set, false, nil
	}
	if err != nil {
		return set, false, fmt.Errorf("failed to get card set %s: %w", setId, err)
	}
	return set, true, nil
}

func (d *CardDAOImpl) UpsertSet(ctx context.Context, set *entity.CardSet) error {
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(set).Error
	if err != nil {
		return fmt.Errorf("failed to upsert card set %s: %w", set.Id, err)
	}
	return nil
}
