package service

import (
	"errors"
)

// Kind 业务错误类别，由接口层统一翻译为 HTTP 状态码
type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // 参数非法，调用方可修正
	KindConflict        // 唯一性冲突，如邮箱已注册
	KindAuth            // 凭证无效或未认证，对外信息保持笼统
	KindNotFound        // 实体不存在
	KindForbidden       // 实体存在但不属于调用方
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidation 参数校验错误
func NewValidation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewConflict 唯一性冲突错误
func NewConflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewAuth 认证错误
func NewAuth(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

// NewNotFound 实体不存在错误
func NewNotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewForbidden 无权访问错误
func NewForbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// KindOf 提取错误类别，非业务错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
