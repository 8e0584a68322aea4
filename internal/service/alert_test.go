package service

import (
	"cardpulse/internal/market"
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"cardpulse/internal/notify"
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"
)

// ---------- fakes ----------

type fakeAlertDAO struct {
	mu     sync.Mutex
	alerts map[int64]*entity.PriceAlert
	nextId int64

	updateErr error
}

func newFakeAlertDAO() *fakeAlertDAO {
	return &fakeAlertDAO{alerts: make(map[int64]*entity.PriceAlert), nextId: 1}
}

func (f *fakeAlertDAO) Create(_ context.Context, a *entity.PriceAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.Id = f.nextId
	f.nextId++
	cp := *a
	f.alerts[a.Id] = &cp
	return nil
}

func (f *fakeAlertDAO) ListByUser(_ context.Context, userId string) ([]entity.PriceAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.PriceAlert
	for _, a := range f.alerts {
		if a.UserId == userId {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAlertDAO) ListActive(_ context.Context, userId string) ([]entity.PriceAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.PriceAlert
	for _, a := range f.alerts {
		if !a.IsActive {
			continue
		}
		if userId != "" && a.UserId != userId {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAlertDAO) Delete(_ context.Context, id int64, userId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok || a.UserId != userId {
		return false, nil
	}
	delete(f.alerts, id)
	return true, nil
}

func (f *fakeAlertDAO) SetActive(_ context.Context, id int64, userId string, active bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok || a.UserId != userId {
		return false, nil
	}
	a.IsActive = active
	return true, nil
}

func (f *fakeAlertDAO) UpdateObservation(_ context.Context, id int64, value float64, checkedAt time.Time, firedAt *time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok {
		return errors.New("alert not found")
	}
	a.LastSeenPrice = sql.NullFloat64{Float64: value, Valid: true}
	a.LastChecked = sql.NullTime{Time: checkedAt, Valid: true}
	if firedAt != nil {
		a.LastTriggered = sql.NullTime{Time: *firedAt, Valid: true}
	}
	return nil
}

func (f *fakeAlertDAO) Stats(_ context.Context) (model.AlertStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := model.AlertStats{}
	users := map[string]struct{}{}
	for _, a := range f.alerts {
		stats.TotalAlerts++
		if a.IsActive {
			stats.ActiveAlerts++
		}
		users[a.UserId] = struct{}{}
	}
	stats.UniqueUsers = int64(len(users))
	return stats, nil
}

func (f *fakeAlertDAO) get(id int64) entity.PriceAlert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.alerts[id]
}

// fakePrices 以卡牌ID为key的快照价格源
type fakePrices struct {
	prices map[string]float64
}

func (s *fakePrices) SnapshotPrice(_ context.Context, cardId string) (market.SnapshotPrice, bool, error) {
	v, ok := s.prices[cardId]
	if !ok {
		return market.SnapshotPrice{}, false, nil
	}
	return market.SnapshotPrice{Market: &v}, true, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

func newTestService(prices map[string]float64, notifier notify.Notifier) (*AlertService, *fakeAlertDAO) {
	d := newFakeAlertDAO()
	resolver := market.NewResolver(nil, market.NewPriceCache(time.Minute, nil), &fakePrices{prices: prices})
	return NewAlertService(d, resolver, notifier), d
}

func seedAlert(d *fakeAlertDAO, userId, cardId, condition string, threshold float64, lastSeen *float64) int64 {
	a := &entity.PriceAlert{
		UserId:    userId,
		CardId:    cardId,
		Condition: condition,
		Threshold: threshold,
		IsActive:  true,
	}
	if lastSeen != nil {
		a.LastSeenPrice = sql.NullFloat64{Float64: *lastSeen, Valid: true}
	}
	d.Create(context.Background(), a)
	return a.Id
}

// ---------- tests ----------

func TestCheckAlertsFiresOnCrossing(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, d := newTestService(map[string]float64{"sv8-161": 120}, notifier)

	last := 95.0
	id := seedAlert(d, "u1", "sv8-161", "above", 100, &last)

	triggered, err := svc.CheckAlerts(context.Background(), "", false)
	if err != nil {
		t.Fatalf("CheckAlerts: %v", err)
	}
	if len(triggered) != 1 {
		t.Fatalf("triggered = %d, want 1", len(triggered))
	}
	if triggered[0].CurrentPrice != 120 || triggered[0].AlertId != id {
		t.Errorf("unexpected trigger %+v", triggered[0])
	}

	a := d.get(id)
	if !a.LastSeenPrice.Valid || a.LastSeenPrice.Float64 != 120 {
		t.Errorf("last_seen_price = %+v, want 120", a.LastSeenPrice)
	}
	if !a.LastChecked.Valid || !a.LastTriggered.Valid {
		t.Error("last_checked and last_triggered should both be set")
	}
	if len(notifier.sent) != 1 {
		t.Errorf("notifications = %d, want 1", len(notifier.sent))
	}

	// 第二轮价格不变：不再触发，但观测时间仍要刷新
	triggered, err = svc.CheckAlerts(context.Background(), "", false)
	if err != nil {
		t.Fatalf("CheckAlerts second pass: %v", err)
	}
	if len(triggered) != 0 {
		t.Errorf("second pass triggered = %d, want 0", len(triggered))
	}
}

func TestCheckAlertsSkipsUnavailablePrice(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, d := newTestService(map[string]float64{"sv8-161": 120}, notifier)

	last := 95.0
	okId := seedAlert(d, "u1", "sv8-161", "above", 100, &last)
	goneId := seedAlert(d, "u1", "gone-1", "above", 100, &last)

	triggered, err := svc.CheckAlerts(context.Background(), "", false)
	if err != nil {
		t.Fatalf("CheckAlerts: %v", err)
	}
	if len(triggered) != 1 || triggered[0].AlertId != okId {
		t.Fatalf("only the resolvable alert should trigger, got %+v", triggered)
	}

	// 不可得的卡不动已存状态
	gone := d.get(goneId)
	if gone.LastChecked.Valid {
		t.Error("skipped alert should keep its observation state untouched")
	}
}

func TestCheckAlertsScopedToUser(t *testing.T) {
	svc, d := newTestService(map[string]float64{"sv8-161": 120}, &recordingNotifier{})

	seedAlert(d, "u1", "sv8-161", "above", 100, nil)
	seedAlert(d, "u2", "sv8-161", "above", 100, nil)

	triggered, err := svc.CheckAlerts(context.Background(), "u1", false)
	if err != nil {
		t.Fatalf("CheckAlerts: %v", err)
	}
	if len(triggered) != 1 || triggered[0].UserId != "u1" {
		t.Errorf("scan should be scoped to u1, got %+v", triggered)
	}
}

func TestCheckAlertsNotifierFailureDoesNotAbort(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc, d := newTestService(map[string]float64{"a-1": 120, "b-2": 120}, notifier)

	seedAlert(d, "u1", "a-1", "above", 100, nil)
	seedAlert(d, "u1", "b-2", "above", 100, nil)

	triggered, err := svc.CheckAlerts(context.Background(), "", false)
	if err != nil {
		t.Fatalf("CheckAlerts should not fail on notifier errors: %v", err)
	}
	if len(triggered) != 2 {
		t.Errorf("triggered = %d, want 2", len(triggered))
	}
	if len(notifier.sent) != 2 {
		t.Errorf("both notifications should have been attempted, got %d", len(notifier.sent))
	}
}

func TestCheckAlertsChangePercentBaseline(t *testing.T) {
	svc, d := newTestService(map[string]float64{"sv8-161": 100}, &recordingNotifier{})
	id := seedAlert(d, "u1", "sv8-161", "change_percent", 10, nil)

	// 首轮只建立基线
	triggered, _ := svc.CheckAlerts(context.Background(), "", false)
	if len(triggered) != 0 {
		t.Fatal("first observation must not fire change_percent")
	}
	if got := d.get(id); !got.LastSeenPrice.Valid || got.LastSeenPrice.Float64 != 100 {
		t.Fatalf("baseline not persisted: %+v", got.LastSeenPrice)
	}
}

func TestCreateValidatesCondition(t *testing.T) {
	svc, _ := newTestService(nil, &recordingNotifier{})
	_, err := svc.Create(context.Background(), "u1", model.CreateAlertRequest{
		CardId:    "sv8-161",
		Condition: "sideways",
		Threshold: 5,
	})
	if err == nil {
		t.Fatal("unknown condition must be rejected")
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, d := newTestService(nil, &recordingNotifier{})
	id := seedAlert(d, "u1", "sv8-161", "above", 100, nil)

	if err := svc.Delete(context.Background(), id, "u2"); err == nil {
		t.Error("deleting another user's alert must fail")
	}
	if err := svc.Delete(context.Background(), id, "u1"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}
