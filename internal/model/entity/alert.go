package entity

import (
	"cardpulse/utils"
	"database/sql"

	"gorm.io/plugin/soft_delete"
)

// PriceAlert 价格提醒表结构
type PriceAlert struct {
	Id          int64   `gorm:"column:id;primary_key;autoIncrement" json:"id"`
	UserId      string  `gorm:"column:user_id;index:idx_alert_user;type:varchar(64);not null" json:"user_id"` // 外部用户ID（Discord/API）
	CardId      string  `gorm:"column:card_id;index:idx_alert_card;type:varchar(32);not null" json:"card_id"` // 卡牌ID（如 sv8-161）
	Condition   string  `gorm:"column:condition;type:varchar(20);not null" json:"condition"`                  // above / below / change_percent
	Threshold   float64 `gorm:"column:threshold;type:decimal(12,2);not null" json:"threshold"`                // 目标价或百分比
	NotifyEmail string  `gorm:"column:notify_email;type:varchar(128)" json:"notify_email"`                    // 可选的邮件通知地址

	// 穿越检测状态。LastSeenPrice 仅保存最近一次扫描的观测值，不是价格历史
	LastSeenPrice sql.NullFloat64 `gorm:"column:last_seen_price;type:decimal(12,2)" json:"-"`
	LastChecked   sql.NullTime    `gorm:"column:last_checked" json:"-"`
	LastTriggered sql.NullTime    `gorm:"column:last_triggered" json:"-"`

	IsActive  bool                  `gorm:"column:is_active;index:idx_alert_active;not null;default:true" json:"is_active"`
	CreatedAt utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt utils.JsonTime        `gorm:"column:deleted_at" json:"-"`
	IsDel     soft_delete.DeletedAt `gorm:"softDelete:flag,DeletedAtField:DeletedAt" json:"-"`
}

func (PriceAlert) TableName() string {
	return "price_alerts"
}
