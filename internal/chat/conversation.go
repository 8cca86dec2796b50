package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options 会话配置
type Options struct {
	Policy    ReplyPolicy
	Scheduler Scheduler // 必填
	Delay     time.Duration
	Logger    *zerolog.Logger
	NewID     func() string
}

// Conversation 一个聊天界面的全部状态：消息、界面模式、侧边栏和任务表单。
// 不是并发安全的，所有调用都应来自同一个事件循环
type Conversation struct {
	store        *Store
	sim          *Simulator
	viewMode     ViewMode
	sideMenuOpen bool
	taskFormOpen bool
	pendingTask  string
	sessionID    string
	closed       bool
	newID        func() string
	log          zerolog.Logger
}

// New 创建会话。Scheduler 必须指定，否则 panic；到期的 token 由调用方交给 ResolveReply。
// 其余未指定的选项使用默认值，Delay <= 0 视为未指定
func New(opts Options) *Conversation {
	if opts.Scheduler == nil {
		panic("chat: New 需要 Options.Scheduler")
	}
	if opts.Policy == nil {
		opts.Policy = &AutoPolicy{Keywords: NewKeywordPolicy()}
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultResponseDelay
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}

	store := NewStore()
	c := &Conversation{
		store:     store,
		sim:       NewSimulator(store, opts.Policy, opts.Scheduler, opts.Delay),
		viewMode:  ViewInitial,
		sessionID: opts.NewID(),
		newID:     opts.NewID,
		log:       logger.With().Str("component", "conversation").Logger(),
	}
	c.log.Debug().Str("session", c.sessionID).Msg("conversation mounted")
	return c
}

// SendText 发送用户输入。文本为空且没有图片时忽略
func (c *Conversation) SendText(text, imageURI string) bool {
	if c.closed {
		return false
	}
	if strings.TrimSpace(text) == "" && imageURI == "" {
		return false
	}
	c.send(Message{Text: text, IsUser: true, ImageURI: imageURI}, nil)
	return true
}

// PickSuggestion 选择建议：需要细节的打开任务表单，否则直接发送
func (c *Conversation) PickSuggestion(s Suggestion) bool {
	if c.closed || c.viewMode != ViewInitial {
		return false
	}
	c.pendingTask = TaskLabel(s.Label)
	if s.RequiresDetails {
		c.taskFormOpen = true
		c.log.Debug().Str("session", c.sessionID).Str("task", c.pendingTask).Msg("task form opened")
		return true
	}
	c.send(Message{Text: s.Label, IsUser: true}, nil)
	return true
}

// SubmitTask 提交任务表单。校验失败时状态不变
func (c *Conversation) SubmitTask(details TaskDetails) error {
	if c.closed {
		return ErrClosed
	}
	if err := details.Validate(); err != nil {
		c.log.Debug().Str("session", c.sessionID).Err(err).Msg("task form rejected")
		return fmt.Errorf("提交任务失败: %w", err)
	}
	c.taskFormOpen = false
	c.send(Message{Text: details.Summary(), IsUser: true}, &details)
	return nil
}

// CancelTaskForm 关闭任务表单
func (c *Conversation) CancelTaskForm() {
	if c.closed {
		return
	}
	c.taskFormOpen = false
}

// ToggleSideMenu 切换侧边栏
func (c *Conversation) ToggleSideMenu() {
	if c.closed {
		return
	}
	c.sideMenuOpen = !c.sideMenuOpen
}

// TapOutside 点击侧边栏外部，打开时关闭
func (c *Conversation) TapOutside() {
	if c.closed {
		return
	}
	if c.sideMenuOpen {
		c.sideMenuOpen = false
	}
}

// SelectHistory 选择历史会话，目前只关闭侧边栏
func (c *Conversation) SelectHistory(id string) bool {
	if c.closed {
		return false
	}
	item, ok := findHistory(id)
	c.log.Info().Str("session", c.sessionID).Str("chat_id", id).Str("title", item.Title).Msg("selected chat")
	c.sideMenuOpen = false
	// TODO: 接入历史会话存储后在这里加载所选会话
	return ok
}

// NewConversation 开始新对话：取消待定回复、清空消息、回到初始界面
func (c *Conversation) NewConversation() {
	if c.closed {
		return
	}
	if c.sim.Cancel() {
		c.log.Debug().Str("session", c.sessionID).Msg("pending reply cancelled")
	}
	c.store.Clear()
	c.viewMode = ViewInitial
	c.taskFormOpen = false
	c.pendingTask = ""
	c.sessionID = c.newID()
	c.log.Debug().Str("session", c.sessionID).Msg("new conversation")
}

// ResolveReply 定时器到期时由事件循环调用
func (c *Conversation) ResolveReply(token uint64) bool {
	if c.closed {
		return false
	}
	ok := c.sim.Fire(token)
	if ok {
		c.log.Debug().Str("session", c.sessionID).Uint64("token", token).Msg("reply delivered")
	}
	return ok
}

// Close 卸载会话，之后所有操作都不再修改状态
func (c *Conversation) Close() {
	if c.closed {
		return
	}
	c.sim.Cancel()
	c.closed = true
	c.log.Debug().Str("session", c.sessionID).Msg("conversation closed")
}

// Closed 是否已卸载
func (c *Conversation) Closed() bool {
	return c.closed
}

// Snapshot 返回当前状态的副本
func (c *Conversation) Snapshot() Snapshot {
	return Snapshot{
		Messages:     c.store.Messages(),
		ViewMode:     c.viewMode,
		SideMenuOpen: c.sideMenuOpen,
		TaskFormOpen: c.taskFormOpen,
		PendingTask:  c.pendingTask,
		SessionID:    c.sessionID,
		Replying:     c.sim.Pending(),
	}
}

func (c *Conversation) send(msg Message, task *TaskDetails) {
	// 先兑现上一个回复，再追加新的用户消息
	c.sim.ResolveNow()
	c.store.Append(msg)
	if c.viewMode != ViewConversation {
		c.viewMode = ViewConversation
		c.log.Debug().Str("session", c.sessionID).Msg("view mode -> CONVERSATION")
	}
	token := c.sim.OnUserMessage(msg, task)
	c.log.Debug().Str("session", c.sessionID).Uint64("token", token).Bool("task_form", task != nil).Msg("reply scheduled")
}
