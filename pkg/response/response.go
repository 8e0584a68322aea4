package response

import (
	"cardpulse/internal/consts"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"github.com/gin-gonic/gin"
	"net/http"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据，前端从这个里面取出数据展示
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	// 如果code != 0, 失败的话 返回http状态码400（一般也可以全部返回200）
	var httpStatus int
	switch code {
	case ecode.Success:
		httpStatus = http.StatusOK
	case ecode.NotFound, ecode.AlertNotFoundErr, ecode.CardNotFoundErr:
		httpStatus = http.StatusNotFound
	default:
		httpStatus = http.StatusBadRequest
	}
	c.JSON(httpStatus, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.TooManyReqErr,
		Message:   "The request is too frequent. Please try again later.",
		Data:      nil,
	})
}
