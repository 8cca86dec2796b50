package chat

import (
	"sync"
	"time"
)

// Scheduler 一次性定时器。到期后把 token 交还给持有会话的事件循环，
// 由事件循环调用 Conversation.ResolveReply；返回的 cancel 用于撤销
type Scheduler interface {
	Schedule(d time.Duration, token uint64) (cancel func())
}

// TimerScheduler 基于 time.AfterFunc 的调度器，到期的 token 从 Fired 读取
type TimerScheduler struct {
	fired chan uint64
}

// NewTimerScheduler 创建调度器
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{fired: make(chan uint64, 4)}
}

// Schedule 实现 Scheduler
func (s *TimerScheduler) Schedule(d time.Duration, token uint64) func() {
	stop := make(chan struct{})
	var once sync.Once
	t := time.AfterFunc(d, func() {
		select {
		case s.fired <- token:
		case <-stop:
		}
	})
	return func() {
		once.Do(func() {
			t.Stop()
			close(stop)
		})
	}
}

// Fired 到期 token 的通道
func (s *TimerScheduler) Fired() <-chan uint64 {
	return s.fired
}
