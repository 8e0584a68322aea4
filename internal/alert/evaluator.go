package alert

import (
	"cardpulse/internal/consts"
	"fmt"
	"math"
)

// 穿越检测核心。每张卡的提醒只有两个状态：
//   UNSEEN —— last_seen为nil，从未观测过价格；
//   SEEN   —— 已有上次观测值。
// 无论是否触发，每次评估都要把observed value落库，否则下个周期
// 没有新基线，价格一直停在阈值上方就会每轮重复触发。

// Decision 一次评估的结果
type Decision struct {
	Fire    bool
	Message string
	// NewSeenValue 本次评估后应当落库的观测值，恒等于current
	NewSeenValue float64
}

// Evaluate 判定是否触发：
//   - above：UNSEEN时 current>threshold 即触发；SEEN时要求
//     last_seen<=threshold 且 current>threshold（只在穿越时触发一次）
//   - below：对称
//   - change_percent：必须SEEN且last_seen!=0，|涨跌幅|>=阈值触发；
//     UNSEEN没有基线，永不触发
func Evaluate(cardId string, condition consts.AlertCondition, threshold float64, lastSeen *float64, current float64) Decision {
	d := Decision{NewSeenValue: current}

	switch condition {
	case consts.ConditionAbove:
		if lastSeen == nil {
			d.Fire = current > threshold
		} else {
			d.Fire = *lastSeen <= threshold && current > threshold
		}
		if d.Fire {
			d.Message = fmt.Sprintf("📈 %s is now $%.2f (above $%.2f)", cardId, current, threshold)
		}

	case consts.ConditionBelow:
		if lastSeen == nil {
			d.Fire = current < threshold
		} else {
			d.Fire = *lastSeen >= threshold && current < threshold
		}
		if d.Fire {
			d.Message = fmt.Sprintf("📉 %s is now $%.2f (below $%.2f)", cardId, current, threshold)
		}

	case consts.ConditionChangePercent:
		if lastSeen == nil || *lastSeen == 0 {
			return d
		}
		pct := (current - *lastSeen) / *lastSeen * 100.0
		if math.Abs(pct) >= math.Abs(threshold) {
			d.Fire = true
			direction := "📈"
			if pct <= 0 {
				direction = "📉"
			}
			d.Message = fmt.Sprintf("%s %s moved %+.1f%% to $%.2f (threshold %.1f%%)",
				direction, cardId, pct, current, math.Abs(threshold))
		}
	}
	return d
}
