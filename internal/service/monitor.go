package service

import (
	"cardpulse/pkg/logger"
	"context"
	"sync"
	"time"
)

// AlertMonitor 后台周期扫描器。Start拉起一个goroutine按固定间隔
// 跑全量扫描，Stop阻塞到当前一轮结束后返回，保证优雅退出时
// 不会留下写了一半的观测状态。
type AlertMonitor struct {
	svc        *AlertService
	interval   time.Duration
	preferLive bool

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

func NewAlertMonitor(svc *AlertService, interval time.Duration, preferLive bool) *AlertMonitor {
	if interval < 30*time.Second {
		interval = 30 * time.Second
	}
	return &AlertMonitor{svc: svc, interval: interval, preferLive: preferLive}
}

// Start 重复调用是幂等的
func (m *AlertMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	go m.loop(m.stopCh, m.doneCh)
	logger.Infof("alert monitor started, interval %s", m.interval)
}

// Stop 停止扫描并等待当前一轮结束
func (m *AlertMonitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	close(stopCh)
	<-doneCh
	logger.Info("alert monitor stopped")
}

func (m *AlertMonitor) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.runOnce()
		}
	}
}

// runOnce 单轮扫描。panic和错误都只记日志，监控循环必须活过任何一轮
func (m *AlertMonitor) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("alert scan panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	defer cancel()

	start := time.Now()
	triggered, err := m.svc.CheckAlerts(ctx, "", m.preferLive)
	if err != nil {
		logger.Errorf("alert scan failed: %v", err)
		return
	}
	if len(triggered) > 0 {
		logger.Info("alert scan finished",
			logger.Pair("triggered", len(triggered)),
			logger.Pair("elapsed", time.Since(start).String()))
	}
}
