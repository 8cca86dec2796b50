package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldTask = iota
	fieldDate
	fieldTime
	fieldAmount
	fieldInfo
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Task",
	"Date needed",
	"Time needed",
	"Budget",
	"Additional Information (Optional)",
}

// RequiredFieldsNotice 必填项为空时的提示
const RequiredFieldsNotice = "Please fill in all required fields"

// taskForm 任务表单，只在打开期间存在
type taskForm struct {
	draft  *chat.TaskDraft
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newTaskForm(task string, now time.Time) *taskForm {
	f := &taskForm{draft: chat.NewTaskDraft(task, now)}

	placeholders := [fieldCount]string{
		"Task description",
		"YYYY-MM-DD",
		"HH:MM AM",
		"Amount willing to pay",
		"Any other details about the task",
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = "› "
		in.CharLimit = 200
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldTask].SetValue(task)
	f.inputs[fieldAmount].CharLimit = 20
	f.inputs[fieldInfo].CharLimit = chat.DefaultMaxInputLength
	f.resetDateTimeInputs()
	f.inputs[fieldTask].Focus()
	return f
}

// resetDateTimeInputs 用草稿中的时间刷新日期和时间输入框
func (f *taskForm) resetDateTimeInputs() {
	f.inputs[fieldDate].SetValue(f.draft.DateTime.Format(dateInputLayout))
	f.inputs[fieldTime].SetValue(f.draft.DateTime.Format(timeInputLayout))
}

// commitPick 离开日期/时间字段时合并结果，无法解析则恢复原值
func (f *taskForm) commitPick(field int) {
	switch field {
	case fieldDate:
		f.draft.ApplyPick(inputPicker{value: f.inputs[fieldDate].Value()}, chat.PickDate)
	case fieldTime:
		f.draft.ApplyPick(inputPicker{value: f.inputs[fieldTime].Value()}, chat.PickTime)
	default:
		return
	}
	f.resetDateTimeInputs()
}

func (f *taskForm) setFocus(next int) tea.Cmd {
	f.commitPick(f.focus)
	f.inputs[f.focus].Blur()
	f.focus = (next + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *taskForm) next() tea.Cmd {
	return f.setFocus(f.focus + 1)
}

func (f *taskForm) prev() tea.Cmd {
	return f.setFocus(f.focus - 1)
}

// details 收集所有字段
func (f *taskForm) details() chat.TaskDetails {
	f.commitPick(fieldDate)
	f.commitPick(fieldTime)
	f.draft.Task = strings.TrimSpace(f.inputs[fieldTask].Value())
	f.draft.Amount = strings.TrimSpace(f.inputs[fieldAmount].Value())
	f.draft.AdditionalInfo = strings.TrimSpace(f.inputs[fieldInfo].Value())
	return f.draft.Details()
}

// setError 把提交错误转换成提示
func (f *taskForm) setError(err error) {
	switch {
	case errors.Is(err, chat.ErrMissingRequiredFields):
		f.err = RequiredFieldsNotice
	case errors.Is(err, chat.ErrInvalidAmount):
		f.err = "Budget must be a number, e.g. 50 or 49.99"
	default:
		f.err = err.Error()
	}
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *taskForm) view(width int) string {
	boxWidth := width - 8
	if boxWidth > 70 {
		boxWidth = 70
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var sb strings.Builder
	sb.WriteString(formTitleStyle.Width(boxWidth - 4).Render(f.draft.Title()))
	sb.WriteString("\n\n")
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			sb.WriteString(focusedLabelStyle.Render(label))
		} else {
			sb.WriteString(labelStyle.Render(label))
		}
		sb.WriteString("\n")
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n\n")
	}
	if f.err != "" {
		sb.WriteString(errorStyle.Render("⚠ " + f.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(helpStyle.Render("Tab: next field • Ctrl+S: confirm • Esc: cancel"))

	return formBoxStyle.Width(boxWidth).Render(sb.String())
}

var (
	formBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
	formTitleStyle    = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)
