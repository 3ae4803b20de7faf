package errors

import (
	"errors"
	"fmt"
)

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam     = 400
	CodeUnauthorized     = 401
	CodeForbidden        = 403
	CodeNotFound         = 404
	CodeConflict         = 409
	CodeServerError      = 500
	CodeGenerationFailed = 502
)

// Kind 业务错误分类
type Kind int

const (
	KindInvalidParam Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindGenerationFailed
)

// AppError 带分类的业务错误，Message 即调用方看到的文本
type AppError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is 同类错误视为相等，便于 errors.Is(err, ErrNotFound)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Code 返回对应的响应码
func (e *AppError) Code() int {
	switch e.Kind {
	case KindInvalidParam:
		return CodeInvalidParam
	case KindUnauthorized:
		return CodeUnauthorized
	case KindForbidden:
		return CodeForbidden
	case KindNotFound:
		return CodeNotFound
	case KindConflict:
		return CodeConflict
	case KindGenerationFailed:
		return CodeGenerationFailed
	default:
		return CodeServerError
	}
}

// 分类哨兵，仅用于 errors.Is 比较
var (
	ErrInvalidParam     = &AppError{Kind: KindInvalidParam}
	ErrUnauthorized     = &AppError{Kind: KindUnauthorized}
	ErrForbidden        = &AppError{Kind: KindForbidden}
	ErrNotFound         = &AppError{Kind: KindNotFound}
	ErrConflict         = &AppError{Kind: KindConflict}
	ErrGenerationFailed = &AppError{Kind: KindGenerationFailed}
)

// 对外固定文案
const (
	MsgEmailTaken          = "a user with this email already exists"
	MsgBadCredentials      = "incorrect email or password"
	MsgUserNotFound        = "user not found"
	MsgGenerationFailed    = "unable to generate content"
	MsgOrganizationDenied  = "access to this organization is not allowed"
	MsgOrganizationInUse   = "organization still has customers or campaigns"
	MsgLoginRequired       = "authentication required"
	MsgInvalidAuthHeader   = "invalid authorization header format"
	MsgInvalidToken        = "invalid or expired token"
	MsgInternalServerError = "internal server error"
)

func InvalidParam(message string) error {
	return &AppError{Kind: KindInvalidParam, Message: message}
}

func Unauthorized(message string) error {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NotFound 生成 "<entity> with ID <id> not found"
func NotFound(entity string, id uint) error {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %d not found", entity, id)}
}

func Conflict(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

// ConflictWrap 保留底层原因（如唯一索引冲突），不对外暴露
func ConflictWrap(message string, cause error) error {
	return &AppError{Kind: KindConflict, Message: message, cause: cause}
}

// GenerationFailed 不携带底层原因，原因只进日志
func GenerationFailed() error {
	return &AppError{Kind: KindGenerationFailed, Message: MsgGenerationFailed}
}

// As 提取 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
