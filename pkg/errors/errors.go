package errors

import (
	"cardpulse/pkg/errors/ecode"
	"errors"
	"fmt"
)

// 带业务错误码的error，response层通过DecodeErr还原code和message

type Err struct {
	Code    int
	Message string
	Cause   error
}

func (e *Err) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("code: %d, message: %s, cause: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

func (e *Err) Unwrap() error { return e.Cause }

// New 使用错误码的默认文案构造错误
func New(code int) *Err {
	return &Err{Code: code, Message: ecode.Message(code)}
}

// NewWithMsg 使用自定义文案构造错误
func NewWithMsg(code int, message string) *Err {
	return &Err{Code: code, Message: message}
}

// Wrap 包装底层错误，保留业务错误码
func Wrap(code int, cause error) *Err {
	return &Err{Code: code, Message: ecode.Message(code), Cause: cause}
}

// DecodeErr 从error中解出业务错误码和文案
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Message(ecode.Success)
	}
	var e *Err
	if errors.As(err, &e) {
		return e.Code, e.Message
	}
	return ecode.InternalErr, err.Error()
}
