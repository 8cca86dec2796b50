package chat

import "time"

type fakeTimer struct {
	delay     time.Duration
	token     uint64
	cancelled bool
}

// fakeScheduler 手动触发的调度器
type fakeScheduler struct {
	timers []*fakeTimer
}

func (f *fakeScheduler) Schedule(d time.Duration, token uint64) func() {
	t := &fakeTimer{delay: d, token: token}
	f.timers = append(f.timers, t)
	return func() { t.cancelled = true }
}

func (f *fakeScheduler) last() *fakeTimer {
	if len(f.timers) == 0 {
		return nil
	}
	return f.timers[len(f.timers)-1]
}

// fireAll 触发所有未取消的定时器
func (f *fakeScheduler) fireAll(c *Conversation) int {
	fired := 0
	for _, t := range f.timers {
		if !t.cancelled && c.ResolveReply(t.token) {
			fired++
		}
	}
	return fired
}

func newTestConversation() (*Conversation, *fakeScheduler) {
	sched := &fakeScheduler{}
	n := 0
	c := New(Options{
		Scheduler: sched,
		NewID: func() string {
			n++
			return string(rune('a' + n - 1))
		},
	})
	return c, sched
}
