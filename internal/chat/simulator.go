package chat

import "time"

// DefaultResponseDelay 占位消息出现到回复之间的默认延迟
const DefaultResponseDelay = 2000 * time.Millisecond

type pendingReply struct {
	token  uint64
	text   string
	cancel func()
}

// Simulator 模拟助手：先放一个占位消息，延迟后替换为回复。
// 同一时刻最多只有一个待定回复
type Simulator struct {
	store   *Store
	policy  ReplyPolicy
	sched   Scheduler
	delay   time.Duration
	token   uint64
	pending *pendingReply
}

// NewSimulator 创建模拟器
func NewSimulator(store *Store, policy ReplyPolicy, sched Scheduler, delay time.Duration) *Simulator {
	if delay < 0 {
		delay = 0
	}
	return &Simulator{
		store:  store,
		policy: policy,
		sched:  sched,
		delay:  delay,
	}
}

// OnUserMessage 追加占位消息并安排回复，返回定时器 token
func (s *Simulator) OnUserMessage(msg Message, task *TaskDetails) uint64 {
	// 上一个回复还没到，立即兑现，保证只有一个占位消息
	s.ResolveNow()

	s.store.Append(Message{Text: "", IsUser: false, IsLoading: true})
	text := s.policy.Reply(msg.Text, task)

	s.token++
	token := s.token
	cancel := s.sched.Schedule(s.delay, token)
	s.pending = &pendingReply{token: token, text: text, cancel: cancel}
	return token
}

// Fire 定时器到期。token 过期（已取消或已兑现）时返回 false 且不改动存储
func (s *Simulator) Fire(token uint64) bool {
	if s.pending == nil || s.pending.token != token {
		return false
	}
	p := s.pending
	s.pending = nil
	s.store.ReplaceLoadingWith(Message{Text: p.text, IsUser: false})
	return true
}

// ResolveNow 取消定时器并立即写入待定回复
func (s *Simulator) ResolveNow() bool {
	if s.pending == nil {
		return false
	}
	s.stopTimer()
	return s.Fire(s.pending.token)
}

// Cancel 取消待定回复，不写入任何消息
func (s *Simulator) Cancel() bool {
	if s.pending == nil {
		return false
	}
	s.stopTimer()
	s.pending = nil
	return true
}

// Pending 是否有待定回复
func (s *Simulator) Pending() bool {
	return s.pending != nil
}

func (s *Simulator) stopTimer() {
	if s.pending != nil && s.pending.cancel != nil {
		s.pending.cancel()
	}
}
