package chat

import (
	"fmt"
	"regexp"
	"strings"
)

// 回复策略名称
const (
	PolicyAuto    = "auto"    // 表单提交回显任务，其余走关键词
	PolicyKeyword = "keyword" // 始终走关键词表
)

// DefaultReply 没有匹配任何关键词时的追问
const DefaultReply = "Could you tell me a bit more about what you need help with? For example, what kind of professional you're looking for and when you need them."

// ReplyPolicy 根据用户消息生成模拟回复
type ReplyPolicy interface {
	Reply(text string, task *TaskDetails) string
}

// KeywordRule 关键词规则，Pattern 命中即返回 Reply
type KeywordRule struct {
	Pattern *regexp.Regexp
	Reply   string
}

// DefaultKeywordRules 按顺序匹配，先命中的优先。短词按整词匹配，避免 "care" 命中 "car"
var DefaultKeywordRules = []KeywordRule{
	{
		Pattern: regexp.MustCompile(`(?i)plumb|leak|pipe|faucet`),
		Reply:   "Sounds like a job for a **plumber**. Is the problem a leak, a blockage, or a new installation?",
	},
	{
		Pattern: regexp.MustCompile(`(?i)electric|wiring|outlet`),
		Reply:   "I can help you find an **electrician**. Is this a repair, an inspection, or a new installation?",
	},
	{
		Pattern: regexp.MustCompile(`(?i)garden|lawn`),
		Reply:   "A **gardener** can help with that. Is it lawn care, hedge trimming, or a full garden makeover?",
	},
	{
		Pattern: regexp.MustCompile(`(?i)mechanic|\bcars?\b`),
		Reply:   "Let's get your car looked at. What's the make and model, and what symptoms are you noticing?",
	},
	{
		Pattern: regexp.MustCompile(`(?i)clean`),
		Reply:   "I can match you with a **cleaning service**. How many rooms, and is it a one-off or a regular clean?",
	},
	{
		Pattern: regexp.MustCompile(`(?i)price|budget|cost`),
		Reply:   "Prices depend on the job. If you share your budget I'll only suggest professionals within it.",
	},
	{
		Pattern: regexp.MustCompile(`(?i)urgent|emergency|\basap\b`),
		Reply:   "Understood, this is *urgent*. I'll prioritise professionals who are available today.",
	},
	{
		Pattern: regexp.MustCompile(`(?i)\b(hello|hi|hey)\b`),
		Reply:   "Hi! Tell me what needs doing and I'll find the right professional for you.",
	},
}

// KeywordPolicy 大小写不敏感的关键词匹配
type KeywordPolicy struct {
	Rules   []KeywordRule
	Default string
}

// NewKeywordPolicy 使用默认关键词表
func NewKeywordPolicy() *KeywordPolicy {
	return &KeywordPolicy{Rules: DefaultKeywordRules, Default: DefaultReply}
}

// Reply 实现 ReplyPolicy，忽略任务表单
func (p *KeywordPolicy) Reply(text string, _ *TaskDetails) string {
	for _, rule := range p.Rules {
		if rule.Pattern.MatchString(text) {
			return rule.Reply
		}
	}
	return p.Default
}

// AutoPolicy 表单提交时回显任务，否则交给关键词策略
type AutoPolicy struct {
	Keywords *KeywordPolicy
}

// Reply 实现 ReplyPolicy
func (p *AutoPolicy) Reply(text string, task *TaskDetails) string {
	if task != nil {
		return TaskReply(*task)
	}
	return p.Keywords.Reply(text, nil)
}

// NewReplyPolicy 按名称创建回复策略
func NewReplyPolicy(name string) (ReplyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyAuto:
		return &AutoPolicy{Keywords: NewKeywordPolicy()}, nil
	case PolicyKeyword:
		return NewKeywordPolicy(), nil
	default:
		return nil, fmt.Errorf("未知的回复策略: %s", name)
	}
}

// TaskReply 回显任务、时间和预算
func TaskReply(d TaskDetails) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Thank you for providing the details for your %s request. I've noted that you need this completed by %s and your budget is $%s.",
		d.Task, d.FormattedDateTime(), d.Amount))
	if d.AdditionalInfo != "" {
		sb.WriteString(" I've also noted the additional details you provided.")
	}
	sb.WriteString(" I'll start looking for suitable professionals who can help you with this task. Is there anything else you'd like to add or any questions you have?")
	return sb.String()
}
