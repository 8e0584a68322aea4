package service

import (
	"testing"
	"time"
)

func TestMonitorStartStop(t *testing.T) {
	svc, _ := newTestService(nil, &recordingNotifier{})
	m := NewAlertMonitor(svc, time.Minute, false)

	m.Start()
	m.Start() // 重复Start是幂等的

	done := make(chan struct{})
	go func() {
		m.Stop()
		m.Stop() // 重复Stop也不能卡住
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestMonitorIntervalFloor(t *testing.T) {
	svc, _ := newTestService(nil, &recordingNotifier{})
	m := NewAlertMonitor(svc, time.Second, false)
	if m.interval != 30*time.Second {
		t.Errorf("interval = %v, want floor 30s", m.interval)
	}
}
