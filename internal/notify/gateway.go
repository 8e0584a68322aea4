package notify

import (
	"context"

	"github.com/goccy/go-json"
)

// DevicePusher 在线推送端（websocket网关实现）。
// 返回false表示用户不在线或发送缓冲已满，属于正常情况。
type DevicePusher interface {
	SendToUser(userId string, payload []byte) bool
}

// GatewayNotifier 把通知推给在线的websocket客户端
type GatewayNotifier struct {
	pusher DevicePusher
}

func NewGatewayNotifier(pusher DevicePusher) *GatewayNotifier {
	return &GatewayNotifier{pusher: pusher}
}

// Notify 用户离线不算投递失败，直接丢弃
func (g *GatewayNotifier) Notify(_ context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	g.pusher.SendToUser(n.UserId, payload)
	return nil
}
