package apperr

import (
	"errors"
	"net/http"
)

// Kind 业务错误类别
type Kind int

const (
	Internal               Kind = iota // 内部错误
	AuthenticationRequired             // 未登录
	AuthorizationDenied                // 无权限(非资源所有者)
	NotFound                           // 资源不存在(与参数错误同用400)
	PageNotFound                       // 页面/路由不存在
	ValidationFailed                   // 输入校验失败
	PreconditionFailed                 // 前置条件不满足
)

// Error 业务错误, 携带类别和可选的附加数据
type Error struct {
	Kind    Kind
	Message string
	Data    interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithData 附加响应数据(如字段级校验信息)
func (e *Error) WithData(data interface{}) *Error {
	e.Data = data
	return e
}

// HTTPStatus 错误类别对应的HTTP状态码
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case AuthenticationRequired, AuthorizationDenied:
		return http.StatusUnauthorized
	case NotFound:
		// 与原有行为保持一致: 资源不存在按参数错误处理
		return http.StatusBadRequest
	case PageNotFound:
		return http.StatusNotFound
	case ValidationFailed, PreconditionFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// From 归一化任意错误, 未知错误归为内部错误
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: Internal, Message: "服务内部错误"}
}
