package alert

import (
	"cardpulse/pkg/logger"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// keepalive的ping间隔
const pingPeriod = 30 * time.Second
const pongWait = 60 * time.Second

// client send buffer
const sendBufSize = 1024

// 通道满的累计丢弃阈值，超过则判定为慢消费者并断开
const dropCloseThreshold = 200

// ======================== ClientConn ========================
type AlertClientConn struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	replaced  bool
	closeOnce sync.Once

	// 丢弃统计（用于强制关闭慢消费者）
	DroppedCount int32
	LastSuccess  int64
}

func (c *AlertClientConn) Close() {
	c.closeOnce.Do(func() {
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
		// close send channel safely
		defer func() {
			if r := recover(); r != nil {
				// already closed
			}
		}()
		close(c.Send)
	})
}

// writePump 负责写入到 websocket（包括 ping）
func (c *AlertClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				// channel closed
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debugf("writePump write error: %v", err)
				return
			}
			atomic.StoreInt64(&c.LastSuccess, time.Now().UnixNano())
			atomic.StoreInt32(&c.DroppedCount, 0)
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端消息（处理心跳）
func (c *AlertClientConn) readPump() {
	c.Conn.SetReadLimit(1024 * 1024)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(appData string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			// 断开或 read error
			break
		}
	}
}

// safeSend 非阻塞发送并在通道满时进行计数与保护
func (c *AlertClientConn) safeSend(data []byte) bool {
	defer func() {
		if r := recover(); r != nil {
			// send on closed channel
		}
	}()

	select {
	case c.Send <- data:
		atomic.StoreInt32(&c.DroppedCount, 0)
		return true
	default:
		// channel full -> increase drop count
		cnt := atomic.AddInt32(&c.DroppedCount, 1)
		if cnt > dropCloseThreshold {
			logger.Warnf("AlertClientConn: user %s drop > threshold, closing", c.UserID)
			go c.Close()
		}
		return false
	}
}
