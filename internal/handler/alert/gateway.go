package alert

import (
	"cardpulse/pkg/logger"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AlertGateway 管理 alert websocket 连接，扫描器触发的通知经由
// SendToUser 定向推给在线用户。同一用户重复连接时新连接替换旧连接。
type AlertGateway struct {
	// 使用 RWMutex 保护普通 Map
	mu      sync.RWMutex
	clients map[string]*AlertClientConn // map[userID]*AlertClientConn

	upgrader websocket.Upgrader
}

func NewAlertGateway() *AlertGateway {
	return &AlertGateway{
		clients: make(map[string]*AlertClientConn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS 建立 websocket 连接 GET /alerts/ws?user_id=xxx
func (g *AlertGateway) ServeWS(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Writer.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("AlertGateway upgrade error: %v", err)
		return
	}

	client := &AlertClientConn{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufSize),
	}

	// 原子替换，避免同一用户的两条连接同时在map里
	var oldClient *AlertClientConn
	g.mu.Lock()
	{
		if existing, ok := g.clients[userID]; ok {
			oldClient = existing
			oldClient.replaced = true
			logger.Infof("AlertGateway: user %s reconnected, marking old connection as replaced", userID)
		}
		g.clients[userID] = client
	}
	g.mu.Unlock()

	if oldClient != nil {
		// 异步关闭，防止阻塞ServeWS
		go oldClient.Close()
	}

	defer func() {
		g.mu.Lock()
		{
			// 再次检查，确保只有当前的 client 才能被移除
			if current, ok := g.clients[userID]; ok && current == client {
				delete(g.clients, userID)
			}
		}
		g.mu.Unlock()
		client.Close()
	}()

	go client.writePump()

	// readPump 阻塞直到客户端关闭
	client.readPump()
}

// SendToUser 定向发送（若在线），满足通知层的推送接口
func (g *AlertGateway) SendToUser(userId string, data []byte) bool {
	g.mu.RLock()
	c, ok := g.clients[userId]
	g.mu.RUnlock()

	if ok {
		return c.safeSend(data)
	}
	return false
}

// Broadcast 全量广播（运营通告用）
func (g *AlertGateway) Broadcast(data []byte) {
	g.mu.RLock()
	clientsCopy := make([]*AlertClientConn, 0, len(g.clients))
	for _, c := range g.clients {
		clientsCopy = append(clientsCopy, c)
	}
	g.mu.RUnlock()

	// 在解锁后对副本进行操作
	for _, c := range clientsCopy {
		c.safeSend(data)
	}
}

// Online 当前在线连接数
func (g *AlertGateway) Online() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}
