package chat

import (
	"regexp"
	"strings"
)

// Suggestion 初始界面中提供的建议
type Suggestion struct {
	Label           string
	Icon            string
	Color           string // 强调色，十六进制
	RequiresDetails bool   // 需要先填写任务表单
}

// Suggestions 固定的建议列表
var Suggestions = []Suggestion{
	{Label: "I need a plumber", Icon: "🔧", Color: "#4A90E2", RequiresDetails: true},
	{Label: "Looking for an electrician", Icon: "⚡", Color: "#F5A623", RequiresDetails: false},
	{Label: "Car mechanic needed", Icon: "🚚", Color: "#7ED321", RequiresDetails: true},
	{Label: "House cleaning service", Icon: "🏠", Color: "#BD10E0", RequiresDetails: true},
	{Label: "Gardener required", Icon: "✂", Color: "#50E3C2", RequiresDetails: false},
}

var taskPrefixPattern = regexp.MustCompile(`^(I need |Looking for )`)

// TaskLabel 去掉建议开头的 "I need " / "Looking for "
func TaskLabel(label string) string {
	return taskPrefixPattern.ReplaceAllString(label, "")
}

// FindSuggestion 按标签查找建议，忽略大小写
func FindSuggestion(label string) (Suggestion, bool) {
	for _, s := range Suggestions {
		if strings.EqualFold(s.Label, strings.TrimSpace(label)) {
			return s, true
		}
	}
	return Suggestion{}, false
}
