package errors

import (
	"fmt"

	"tradeflow/pkg/errors/ecode"
)

// 携带业务错误码的error，响应层通过DecodeErr取出码和提示信息
type withCode struct {
	code  int
	msg   string
	cause error
}

func (e *withCode) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *withCode) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带错误码的error
func WithCode(code int, msg string) error {
	return &withCode{code: code, msg: msg}
}

// Wrap 包装底层error并附加错误码和提示信息
func Wrap(err error, code int, msg string) error {
	return &withCode{code: code, msg: msg, cause: err}
}

// Code 取出错误码，非withCode的error一律归为Unknown
func Code(err error) int {
	if err == nil {
		return ecode.Success
	}
	if wc, ok := err.(*withCode); ok {
		return wc.code
	}
	return ecode.Unknown
}

// DecodeErr 解析error，返回错误码和错误信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	if wc, ok := err.(*withCode); ok {
		return wc.code, wc.Error()
	}
	return ecode.Unknown, err.Error()
}
