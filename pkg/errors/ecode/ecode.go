package ecode

// 业务错误码，0表示成功
const (
	Success = 0

	// 通用错误 100xx
	InternalErr    = 10001 // 服务内部错误
	InvalidParam   = 10002 // 参数错误
	NotFound       = 10003 // 资源不存在
	DatabaseErr    = 10004 // 数据库错误
	RequireAuthErr = 10005 // 鉴权失败
	TooManyReqErr  = 10006 // 请求过于频繁

	// 提醒相关 200xx
	AlertConditionErr = 20001 // 非法的触发条件
	AlertNotFoundErr  = 20002 // 提醒不存在或不属于该用户
	NotifyEmailErr    = 20003 // 通知邮箱不合法

	// 行情相关 201xx
	PriceUnavailableErr = 20101 // 实时与快照价格均不可得
	CardNotFoundErr     = 20102 // 卡牌不存在
)

var messages = map[int]string{
	Success:             "success",
	InternalErr:         "internal server error",
	InvalidParam:        "invalid request parameter",
	NotFound:            "resource not found",
	DatabaseErr:         "database error",
	RequireAuthErr:      "authentication required",
	TooManyReqErr:       "too many requests",
	AlertConditionErr:   "unknown alert condition",
	AlertNotFoundErr:    "alert not found",
	NotifyEmailErr:      "invalid notification email",
	PriceUnavailableErr: "price unavailable",
	CardNotFoundErr:     "card not found",
}

// Message 返回错误码的默认文案
func Message(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "unknown error"
}
