package chat

import "errors"

var (
	// ErrMissingRequiredFields 任务或预算为空
	ErrMissingRequiredFields = errors.New("please fill in all required fields")
	// ErrInvalidAmount 预算不是合法的非负数字
	ErrInvalidAmount = errors.New("budget must be a non-negative number")
	// ErrClosed 会话已关闭
	ErrClosed = errors.New("conversation closed")
)
