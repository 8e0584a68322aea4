package query

import (
	"cardpulse/internal/dao"
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AlertDAOImpl Gorm 实现
type AlertDAOImpl struct {
	db *gorm.DB
}

// NewAlertDAO 创建 DAO 实例
func NewAlertDAO(db *gorm.DB) dao.AlertDAO {
	return &AlertDAOImpl{db: db}
}

func (d *AlertDAOImpl) Create(ctx context.Context, alert *entity.PriceAlert) error {
	if err := d.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (d *AlertDAOImpl) ListByUser(ctx context.Context, userId string) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts for user %s: %w", userId, err)
	}
	return alerts, nil
}

// ListActive userId为空表示全量扫描
func (d *AlertDAOImpl) ListActive(ctx context.Context, userId string) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	q := d.db.WithContext(ctx).Where("is_active = ?", true)
	if userId != "" {
		q = q.Where("user_id = ?", userId)
	}
	if err := q.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}
	return alerts, nil
}

func (d *AlertDAOImpl) Delete(ctx context.Context, id int64, userId string) (bool, error) {
	result := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&entity.PriceAlert{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete alert %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (d *AlertDAOImpl) SetActive(ctx context.Context, id int64, userId string, active bool) (bool, error) {
	result := d.db.WithContext(ctx).Model(&entity.PriceAlert{}).
		Where("id = ? AND user_id = ?", id, userId).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to toggle alert %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateObservation 单条UPDATE语句，同一行的并发回写由数据库行锁串行化；
// 不同提醒之间互不影响
func (d *AlertDAOImpl) UpdateObservation(ctx context.Context, id int64, value float64, checkedAt time.Time, firedAt *time.Time) error {
	updates := map[string]interface{}{
		"last_seen_price": value,
		"last_checked":    checkedAt,
		"updated_at":      time.Now(),
	}
	if firedAt != nil {
		updates["last_triggered"] = *firedAt
	}
	err := d.db.WithContext(ctx).Model(&entity.PriceAlert{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update observation for alert %d: %w", id, err)
	}
	return nil
}

func (d *AlertDAOImpl) Stats(ctx context.Context) (model.AlertStats, error) {
	var stats model.AlertStats
	db := d.db.WithContext(ctx).Model(&entity.PriceAlert{})
	if err := db.Count(&stats.TotalAlerts).Error; err != nil {
		return stats, fmt.Errorf("failed to count alerts: %w", err)
	}
	err := d.db.WithContext(ctx).Model(&entity.PriceAlert{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveAlerts).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count active alerts: %w", err)
	}
	err = d.db.WithContext(ctx).Model(&entity.PriceAlert{}).
		Distinct("user_id").
		Count(&stats.UniqueUsers).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count alert users: %w", err)
	}
	return stats, nil
}
