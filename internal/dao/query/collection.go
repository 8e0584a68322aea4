package query

import (
	"cardpulse/internal/dao"
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionDAOImpl Gorm 实现
type CollectionDAOImpl struct {
	db *gorm.DB
}

func NewCollectionDAO(db *gorm.DB) dao.CollectionDAO {
	return &CollectionDAOImpl{db: db}
}

// Upsert user+card+condition 冲突时数量累加
func (d *CollectionDAOImpl) Upsert(ctx context.Context, item *entity.CollectionItem) error {
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "card_id"}, {Name: "condition"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collection item: %w", err)
	}
	return nil
}

func (d *CollectionDAOImpl) Remove(ctx context.Context, userId, cardId, condition string) (bool, error) {
	q := d.db.WithContext(ctx).Where("user_id = ? AND card_id = ?", userId, cardId)
	if condition != "" {
		q = q.Where("`condition` = ?", condition)
	}
	result := q.Delete(&entity.CollectionItem{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove collection item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (d *CollectionDAOImpl) UpdateQuantity(ctx context.Context, userId, cardId, condition string, quantity int) (bool, error) {
	if quantity <= 0 {
		return d.Remove(ctx, userId, cardId, condition)
	}
	result := d.db.WithContext(ctx).Model(&entity.CollectionItem{}).
		Where("user_id = ? AND card_id = ? AND `condition` = ?", userId, cardId, condition).
		Update("quantity", quantity)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update quantity: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListByUser 联查卡牌快照，市价在service层换算
func (d *CollectionDAOImpl) ListByUser(ctx context.Context, userId, setId string) ([]dao.CollectionJoinRow, error) {
	var rows []dao.CollectionJoinRow
	q := d.db.WithContext(ctx).Model(&entity.CollectionItem{}).
		Select("user_collections.*, cards.name AS card_name, cards.set_id AS set_id, "+
			"cards.rarity AS rarity, cards.image_url AS image_url, "+
			"cards.tcgplayer_market AS tcgplayer_market, cards.tcgplayer_mid AS tcgplayer_mid").
		Joins("LEFT JOIN cards ON cards.id = user_collections.card_id").
		Where("user_collections.user_id = ?", userId)
	if setId != "" {
		q = q.Where("cards.set_id = ?", setId)
	}
	if err := q.Order("user_collections.date_added DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list collection for user %s: %w", userId, err)
	}
	return rows, nil
}

func (d *CollectionDAOImpl) SaveSnapshot(ctx context.Context, snap *entity.PortfolioSnapshot) error {
	if err := d.db.WithContext(ctx).Create(snap).Error; err != nil {
		return fmt.Errorf("failed to save portfolio snapshot: %w", err)
	}
	return nil
}

func (d *CollectionDAOImpl) History(ctx context.Context, userId string, days int) ([]entity.PortfolioSnapshot, error) {
	var snaps []entity.PortfolioSnapshot
	since := time.Now().AddDate(0, 0, -days)
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ?", userId, since).
		Order("recorded_at ASC").
		Find(&snaps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio history for %s: %w", userId, err)
	}
	return snaps, nil
}

func (d *CollectionDAOImpl) Stats(ctx context.Context) (model.CollectionStats, error) {
	var stats model.CollectionStats
	err := d.db.WithContext(ctx).Model(&entity.CollectionItem{}).
		Distinct("user_id").
		Count(&stats.TotalUsers).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count collection users: %w", err)
	}

	var totalCards struct{ Total int64 }
	err = d.db.WithContext(ctx).Model(&entity.CollectionItem{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Scan(&totalCards).Error
	if err != nil {
		return stats, fmt.Errorf("failed to sum collection cards: %w", err)
	}
	stats.TotalCards = totalCards.Total

	err = d.db.WithContext(ctx).Model(&entity.CollectionItem{}).
		Distinct("card_id").
		Count(&stats.UniqueCardsListed).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count unique cards: %w", err)
	}
	return stats, nil
}
