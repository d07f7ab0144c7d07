package apperr

import (
	"errors"
	"fmt"
)

// ErrorCode 错误码
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeConflict   ErrorCode = "CONFLICT"
	ErrCodeInternal   ErrorCode = "INTERNAL"
)

// Issue 单个字段的校验问题
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// AppError 应用错误
type AppError struct {
	Code    ErrorCode
	Message string
	Issues  []Issue
	Cause   error
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Issues) > 0 {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Issues[0].Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 同错误码同消息视为同一错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// Validation 校验错误
func Validation(message string, issues ...Issue) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Issues: issues}
}

// NotFound 资源不存在
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Conflict 唯一性冲突
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Internal 内部错误，message 是对外展示的通用文案
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// 预定义错误
var (
	ErrEmailExists        = Conflict("Email already exists")
	ErrLinkedinExists     = Conflict("Freelancer with this LinkedIn profile already exists.")
	ErrViewNotFound       = NotFound("View not found")
	ErrUserNotFound       = NotFound("User not found")
	ErrTaskNotFound       = NotFound("Task not found")
	ErrClientNotFound     = NotFound("Client not found")
	ErrProjectNotFound    = NotFound("Project not found")
	ErrStaffNotFound      = NotFound("Staff not found")
	ErrFreelancerNotFound = NotFound("Freelancer not found")
)

// As 提取 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
