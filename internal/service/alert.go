package service

import (
	"cardpulse/internal/alert"
	"cardpulse/internal/consts"
	"cardpulse/internal/dao"
	"cardpulse/internal/market"
	"cardpulse/internal/model"
	"cardpulse/internal/model/entity"
	"cardpulse/internal/notify"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"cardpulse/pkg/logger"
	"cardpulse/pkg/mail"
	"cardpulse/utils"
	"context"
	"database/sql"
	"time"

	"github.com/goccy/go-json"
)

// AlertService 提醒的增删改查和扫描编排。
// 扫描路径：读活跃提醒 → 逐卡解析价格 → 穿越判定 → 回写观测状态 → 投递通知。
// 状态回写和通知投递相互独立：投递失败绝不能让观测值回滚，否则
// 同一次穿越下个周期会再报一遍。
type AlertService struct {
	dao      dao.AlertDAO
	resolver *market.Resolver
	notifier notify.Notifier
	recent   *dao.RecentAlertStore // 可为nil（未启用redis时）
	verifier *mail.Verifier        // 可为nil（不校验通知邮箱）
}

func NewAlertService(d dao.AlertDAO, resolver *market.Resolver, notifier notify.Notifier) *AlertService {
	return &AlertService{dao: d, resolver: resolver, notifier: notifier}
}

// WithRecentStore 启用最近通知的redis记录
func (s *AlertService) WithRecentStore(store *dao.RecentAlertStore) *AlertService {
	s.recent = store
	return s
}

// WithEmailVerifier 启用通知邮箱校验
func (s *AlertService) WithEmailVerifier(v *mail.Verifier) *AlertService {
	s.verifier = v
	return s
}

// Create 创建提醒
func (s *AlertService) Create(ctx context.Context, userId string, req model.CreateAlertRequest) (model.AlertResponse, error) {
	cond := consts.AlertCondition(req.Condition)
	if !cond.Valid() {
		return model.AlertResponse{}, errors.New(ecode.AlertConditionErr)
	}
	if req.NotifyEmail != "" && s.verifier != nil {
		if err := s.verifier.VerifyEmail(req.NotifyEmail); err != nil {
			return model.AlertResponse{}, errors.Wrap(ecode.NotifyEmailErr, err)
		}
	}

	a := &entity.PriceAlert{
		UserId:      userId,
		CardId:      req.CardId,
		Condition:   string(cond),
		Threshold:   req.Threshold,
		NotifyEmail: req.NotifyEmail,
		IsActive:    true,
		CreatedAt:   utils.JsonTime(time.Now()),
		UpdatedAt:   utils.JsonTime(time.Now()),
	}
	if err := s.dao.Create(ctx, a); err != nil {
		return model.AlertResponse{}, errors.Wrap(ecode.DatabaseErr, err)
	}
	return toAlertResponse(a), nil
}

// List 用户的全部提醒
func (s *AlertService) List(ctx context.Context, userId string) ([]model.AlertResponse, error) {
	alerts, err := s.dao.ListByUser(ctx, userId)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}
	out := make([]model.AlertResponse, 0, len(alerts))
	for i := range alerts {
		out = append(out, toAlertResponse(&alerts[i]))
	}
	return out, nil
}

// Delete 删除提醒（必须属于该用户）
func (s *AlertService) Delete(ctx context.Context, id int64, userId string) error {
	ok, err := s.dao.Delete(ctx, id, userId)
	if err != nil {
		return errors.Wrap(ecode.DatabaseErr, err)
	}
	if !ok {
		return errors.New(ecode.AlertNotFoundErr)
	}
	return nil
}

// SetActive 启用/停用提醒
func (s *AlertService) SetActive(ctx context.Context, id int64, userId string, active bool) error {
	ok, err := s.dao.SetActive(ctx, id, userId, active)
	if err != nil {
		return errors.Wrap(ecode.DatabaseErr, err)
	}
	if !ok {
		return errors.New(ecode.AlertNotFoundErr)
	}
	return nil
}

// Stats 提醒统计
func (s *AlertService) Stats(ctx context.Context) (model.AlertStats, error) {
	stats, err := s.dao.Stats(ctx)
	if err != nil {
		return stats, errors.Wrap(ecode.DatabaseErr, err)
	}
	return stats, nil
}

// CheckAlerts 执行一轮扫描并返回触发的提醒。
// userId为空表示全量扫描（后台周期任务），否则只扫该用户（按需触发）。
// 两条路径可以并发执行：同一行的回写由DAO串行化。
func (s *AlertService) CheckAlerts(ctx context.Context, userId string, preferLive bool) ([]model.TriggeredAlert, error) {
	alerts, err := s.dao.ListActive(ctx, userId)
	if err != nil {
		return nil, errors.Wrap(ecode.DatabaseErr, err)
	}

	triggered := make([]model.TriggeredAlert, 0)
	for i := range alerts {
		a := &alerts[i]

		price, err := s.resolver.Resolve(ctx, a.CardId, preferLive)
		if err != nil {
			// 价格暂时不可得：跳过这张卡，不动已存状态，下轮再试
			logger.Debugf("skip alert %d: %v", a.Id, err)
			continue
		}

		var lastSeen *float64
		if a.LastSeenPrice.Valid {
			v := a.LastSeenPrice.Float64
			lastSeen = &v
		}

		d := alert.Evaluate(a.CardId, consts.AlertCondition(a.Condition), a.Threshold, lastSeen, price)

		now := time.Now()
		var firedAt *time.Time
		if d.Fire {
			firedAt = &now
		}
		// 无论是否触发都要回写观测值，下一轮才有新基线
		if err := s.dao.UpdateObservation(ctx, a.Id, d.NewSeenValue, now, firedAt); err != nil {
			// 单行回写失败本轮放弃该提醒的状态更新，不影响其它提醒
			logger.Errorf("failed to persist observation for alert %d: %v", a.Id, err)
			continue
		}

		if d.Fire {
			triggered = append(triggered, model.TriggeredAlert{
				AlertId:      a.Id,
				UserId:       a.UserId,
				CardId:       a.CardId,
				CurrentPrice: price,
				Threshold:    a.Threshold,
				Message:      d.Message,
				NotifyEmail:  a.NotifyEmail,
			})
		}
	}

	s.dispatch(ctx, triggered)
	return triggered, nil
}

// dispatch 逐条投递通知，单条失败只记日志
func (s *AlertService) dispatch(ctx context.Context, triggered []model.TriggeredAlert) {
	if s.notifier == nil {
		return
	}
	for _, t := range triggered {
		n := notify.Notification{
			Id:           notify.NextId(),
			AlertId:      t.AlertId,
			UserId:       t.UserId,
			CardId:       t.CardId,
			CurrentPrice: t.CurrentPrice,
			Threshold:    t.Threshold,
			Message:      t.Message,
			FiredAt:      time.Now(),
			Email:        t.NotifyEmail,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			logger.Warnf("notification delivery failed for alert %d (user %s): %v", t.AlertId, t.UserId, err)
		}
		s.recordRecent(ctx, n)
	}
}

// recordRecent 在redis里留一份最近触发记录，供客户端拉取
func (s *AlertService) recordRecent(ctx context.Context, n notify.Notification) {
	if s.recent == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	if err := s.recent.Push(ctx, n.UserId, payload); err != nil {
		logger.Warnf("failed to record recent alert for user %s: %v", n.UserId, err)
	}
}

// Recent 用户最近触发的通知
func (s *AlertService) Recent(ctx context.Context, userId string) ([]json.RawMessage, error) {
	if s.recent == nil {
		return []json.RawMessage{}, nil
	}
	items, err := s.recent.List(ctx, userId)
	if err != nil {
		return nil, errors.Wrap(ecode.InternalErr, err)
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out, nil
}

func toAlertResponse(a *entity.PriceAlert) model.AlertResponse {
	resp := model.AlertResponse{
		Id:          a.Id,
		UserId:      a.UserId,
		CardId:      a.CardId,
		Condition:   a.Condition,
		Threshold:   a.Threshold,
		NotifyEmail: a.NotifyEmail,
		IsActive:    a.IsActive,
		CreatedAt:   time.Time(a.CreatedAt).Format(consts.TimeLayout),
	}
	if a.LastSeenPrice.Valid {
		v := a.LastSeenPrice.Float64
		resp.LastSeenPrice = &v
	}
	resp.LastChecked = nullTimeString(a.LastChecked)
	resp.LastTriggered = nullTimeString(a.LastTriggered)
	return resp
}

func nullTimeString(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(consts.TimeLayout)
}
