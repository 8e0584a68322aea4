package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"
	UserID    = "user_id"

	// UserRecentAlertPrefix 用户最近触发通知的redis key前缀
	UserRecentAlertPrefix = "Alert_Recent_list:"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24 * 5

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

// AlertCondition 提醒触发条件
type AlertCondition string

const (
	ConditionAbove         AlertCondition = "above"          // 突破目标价
	ConditionBelow         AlertCondition = "below"          // 跌破目标价
	ConditionChangePercent AlertCondition = "change_percent" // 相对上次观测的涨跌幅
)

// Valid 是否为已知条件
func (c AlertCondition) Valid() bool {
	switch c {
	case ConditionAbove, ConditionBelow, ConditionChangePercent:
		return true
	}
	return false
}

// 卡牌品相，与收藏表的 condition 字段对应
const (
	CardConditionMint       = "mint"
	CardConditionNearMint   = "near_mint"
	CardConditionLightPlay  = "light_play"
	CardConditionModPlay    = "moderate_play"
	CardConditionHeavyPlay  = "heavy_play"
	CardConditionDamaged    = "damaged"
	CardConditionDefaultRaw = "raw"
)
