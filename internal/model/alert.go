package model

// CreateAlertRequest 创建价格提醒的请求体
type CreateAlertRequest struct {
	CardId    string  `json:"card_id" binding:"required"`
	Condition string  `json:"condition" binding:"required"` // above / below / change_percent
	Threshold float64 `json:"threshold" binding:"required"`
	// 可选的邮件通知地址；为空时仅通过websocket网关推送
	NotifyEmail string `json:"notify_email,omitempty"`
}

// ToggleAlertRequest 启用/停用提醒
type ToggleAlertRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// AlertResponse GET 列表时的返回结构
type AlertResponse struct {
	Id            int64    `json:"id"`
	UserId        string   `json:"user_id"`
	CardId        string   `json:"card_id"`
	Condition     string   `json:"condition"`
	Threshold     float64  `json:"threshold"`
	NotifyEmail   string   `json:"notify_email,omitempty"`
	IsActive      bool     `json:"is_active"`
	LastSeenPrice *float64 `json:"last_seen_price,omitempty"` // 最近一次扫描观测到的价格
	LastChecked   string   `json:"last_checked,omitempty"`
	LastTriggered string   `json:"last_triggered,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// TriggeredAlert 一次扫描中被触发的提醒
type TriggeredAlert struct {
	AlertId      int64   `json:"alert_id"`
	UserId       string  `json:"user_id"`
	CardId       string  `json:"card_id"`
	CurrentPrice float64 `json:"current_price"`
	Threshold    float64 `json:"threshold"`
	Message      string  `json:"message"`
	NotifyEmail  string  `json:"-"`
}

// AlertStats 提醒统计
type AlertStats struct {
	TotalAlerts  int64 `json:"total_alerts"`
	ActiveAlerts int64 `json:"active_alerts"`
	UniqueUsers  int64 `json:"unique_users"`
}
