package notify

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/multierr"
)

// 通知投递层。投递是尽力而为的：单条失败只记错误，永远不会
// 打断扫描批次，也不会回滚已落库的观测状态。

// Notification 一条待投递的触发通知
type Notification struct {
	Id           string    `json:"id"`
	AlertId      int64     `json:"alert_id"`
	UserId       string    `json:"user_id"`
	CardId       string    `json:"card_id"`
	CurrentPrice float64   `json:"current_price"`
	Threshold    float64   `json:"threshold"`
	Message      string    `json:"message"`
	FiredAt      time.Time `json:"fired_at"`

	// Email 可选投递邮箱，来自提醒配置；为空时邮件通道跳过
	Email string `json:"-"`
}

// Notifier 通知通道
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// NextId 通知的全局唯一ID
func NextId() string {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return node.Generate().String()
}

// Multi 多通道扇出，逐通道投递并聚合错误
type Multi struct {
	notifiers []Notifier
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify 所有通道都会被尝试，错误用multierr聚合后返回给调用方记日志
func (m *Multi) Notify(ctx context.Context, n Notification) error {
	var errs error
	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
