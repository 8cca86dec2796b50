package tui

// Message types for tea.Model

// ReplyDueMsg 模拟回复的定时器到期
type ReplyDueMsg struct {
	Token uint64
}

// SplashDoneMsg 启动画面结束
type SplashDoneMsg struct{}
