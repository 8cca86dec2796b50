package chat

// Store 有序消息序列，只允许追加，唯一的删除是移除占位消息
type Store struct {
	messages []Message
}

// NewStore 创建空的消息存储
func NewStore() *Store {
	return &Store{messages: []Message{}}
}

// Append 追加消息并分配下一个序号
func (s *Store) Append(msg Message) []Message {
	msg.ID = s.nextID()
	s.messages = append(s.messages, msg)
	return s.Messages()
}

// ReplaceLoadingWith 移除所有占位消息后追加最终消息。没有占位消息时不做任何事
func (s *Store) ReplaceLoadingWith(final Message) []Message {
	if s.LoadingCount() == 0 {
		return s.Messages()
	}

	kept := s.messages[:0]
	for _, msg := range s.messages {
		if !msg.IsLoading {
			kept = append(kept, msg)
		}
	}
	s.messages = kept

	final.IsLoading = false
	return s.Append(final)
}

// Clear 清空所有消息
func (s *Store) Clear() {
	s.messages = []Message{}
}

// Messages 返回消息副本
func (s *Store) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len 消息数量
func (s *Store) Len() int {
	return len(s.messages)
}

// LoadingCount 占位消息数量
func (s *Store) LoadingCount() int {
	n := 0
	for _, msg := range s.messages {
		if msg.IsLoading {
			n++
		}
	}
	return n
}

// nextID 等于 count+1：占位消息总是位于末尾，删除后最后一个序号与数量一致
func (s *Store) nextID() int {
	if len(s.messages) == 0 {
		return 1
	}
	last := s.messages[len(s.messages)-1].ID
	if n := len(s.messages); last < n {
		return n + 1
	}
	return last + 1
}
