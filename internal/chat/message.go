package chat

// Message 对话中的一条消息
type Message struct {
	ID        int
	Text      string
	IsUser    bool
	IsLoading bool   // 占位消息，回复到达后被移除
	ImageURI  string // 附带图片，不做任何校验
}

// ViewMode 界面模式
type ViewMode int

const (
	// ViewInitial 显示建议列表
	ViewInitial ViewMode = iota
	// ViewConversation 显示对话记录
	ViewConversation
)

func (v ViewMode) String() string {
	switch v {
	case ViewInitial:
		return "INITIAL"
	case ViewConversation:
		return "CONVERSATION"
	default:
		return "UNKNOWN"
	}
}

// Snapshot 渲染层看到的只读状态
type Snapshot struct {
	Messages     []Message
	ViewMode     ViewMode
	SideMenuOpen bool
	TaskFormOpen bool
	PendingTask  string
	SessionID    string
	Replying     bool
}

// LoadingCount 返回占位消息数量
func (s Snapshot) LoadingCount() int {
	n := 0
	for _, msg := range s.Messages {
		if msg.IsLoading {
			n++
		}
	}
	return n
}
