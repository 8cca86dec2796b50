package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaScheduler 把定时器转换成 tea.Cmd。会话在 Update 中调用 Schedule，
// Update 结束前用 Drain 取出待执行的命令
type teaScheduler struct {
	cmds []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{}
}

// Schedule 实现 chat.Scheduler。取消后命令返回 nil，不会投递消息
func (s *teaScheduler) Schedule(d time.Duration, token uint64) func() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cmds = append(s.cmds, func() tea.Msg {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return ReplyDueMsg{Token: token}
		case <-ctx.Done():
			return nil
		}
	})
	return cancel
}

// Drain 取出所有待执行命令
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
