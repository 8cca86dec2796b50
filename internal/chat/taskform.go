package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateTimeLayout 与原应用 en-US toLocaleString 一致，小时补零
const DateTimeLayout = "1/2/2006, 03:04 PM"

// TaskDetails 任务表单提交的内容
type TaskDetails struct {
	Task           string
	DateTime       time.Time
	Amount         string
	AdditionalInfo string
}

// Validate 校验必填字段和预算格式
func (d TaskDetails) Validate() error {
	if strings.TrimSpace(d.Task) == "" || strings.TrimSpace(d.Amount) == "" {
		return ErrMissingRequiredFields
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, d.Amount)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, d.Amount)
	}
	return nil
}

// FormattedDateTime 返回回显用的日期时间
func (d TaskDetails) FormattedDateTime() string {
	return FormatDateTime(d.DateTime)
}

// Summary 用户侧的任务摘要消息
func (d TaskDetails) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I need %s. The task should be completed by %s. My budget for this task is $%s.",
		d.Task, d.FormattedDateTime(), d.Amount))
	if d.AdditionalInfo != "" {
		sb.WriteString(" Additional details: ")
		sb.WriteString(d.AdditionalInfo)
	}
	return sb.String()
}

// FormatDateTime 格式化为 1/15/2024, 02:30 PM
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// PickMode 选择器模式
type PickMode int

const (
	PickDate PickMode = iota
	PickTime
)

func (m PickMode) String() string {
	if m == PickTime {
		return "time"
	}
	return "date"
}

// Picker 日期/时间选择器，ok 为 false 表示用户取消
type Picker interface {
	Pick(initial time.Time, mode PickMode) (time.Time, bool)
}

// PickerFunc 函数适配器
type PickerFunc func(initial time.Time, mode PickMode) (time.Time, bool)

// Pick 实现 Picker
func (f PickerFunc) Pick(initial time.Time, mode PickMode) (time.Time, bool) {
	return f(initial, mode)
}

// MergeDate 只取 picked 的年月日
func MergeDate(base, picked time.Time) time.Time {
	return time.Date(picked.Year(), picked.Month(), picked.Day(),
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())
}

// MergeTime 只取 picked 的时和分
func MergeTime(base, picked time.Time) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(),
		picked.Hour(), picked.Minute(), base.Second(), base.Nanosecond(), base.Location())
}

// TaskDraft 表单打开期间的临时状态，提交或取消后丢弃
type TaskDraft struct {
	InitialTask    string
	Task           string
	DateTime       time.Time
	Amount         string
	AdditionalInfo string
}

// NewTaskDraft 以待细化的任务和当前时间创建草稿
func NewTaskDraft(task string, now time.Time) *TaskDraft {
	return &TaskDraft{
		InitialTask: task,
		Task:        task,
		DateTime:    now,
	}
}

// Title 表单标题
func (d *TaskDraft) Title() string {
	return fmt.Sprintf("You need %s. Can you provide us with more info?", strings.ToLower(d.InitialTask))
}

// ApplyPick 调用选择器并按字段合并结果，取消时保持原值
func (d *TaskDraft) ApplyPick(p Picker, mode PickMode) bool {
	picked, ok := p.Pick(d.DateTime, mode)
	if !ok {
		return false
	}
	switch mode {
	case PickDate:
		d.DateTime = MergeDate(d.DateTime, picked)
	case PickTime:
		d.DateTime = MergeTime(d.DateTime, picked)
	}
	return true
}

// Details 转换为提交内容
func (d *TaskDraft) Details() TaskDetails {
	return TaskDetails{
		Task:           d.Task,
		DateTime:       d.DateTime,
		Amount:         d.Amount,
		AdditionalInfo: d.AdditionalInfo,
	}
}
