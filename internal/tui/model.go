package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Version 是当前的 Mira 版本，由 main 包设置
var Version = "dev"

// Options 界面配置
type Options struct {
	ResponseDelay  time.Duration
	SplashDuration time.Duration
	Policy         chat.ReplyPolicy
	UserName       string
	CameraEnabled  bool
	MaxInputLength int
	Logger         *zerolog.Logger
	Now            func() time.Time
}

type Model struct {
	ui            *UIStateManager
	spinner       spinner.Model
	conv          *chat.Conversation
	sched         *teaScheduler
	composer      *chat.Composer
	form          *taskForm
	commandParser *CommandParser
	markdown      *MarkdownRenderer
	opts          Options
	splash        bool
	suggestionIdx int
	historyIdx    int
	notice        string
	log           zerolog.Logger
}

func InitialModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UserName == "" {
		opts.UserName = "John Doe"
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	sched := newTeaScheduler()
	conv := chat.New(chat.Options{
		Policy:    opts.Policy,
		Scheduler: sched,
		Delay:     opts.ResponseDelay,
		Logger:    &logger,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = spinnerStyle

	return Model{
		ui:            NewUIStateManager(opts.MaxInputLength),
		spinner:       sp,
		conv:          conv,
		sched:         sched,
		composer:      chat.NewComposer(opts.MaxInputLength),
		commandParser: NewCommandParser(),
		markdown:      GetMarkdownRenderer(),
		opts:          opts,
		splash:        opts.SplashDuration > 0,
		log:           logger.With().Str("component", "tui").Logger(),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.spinner.Tick}
	if m.splash {
		cmds = append(cmds, tea.Tick(m.opts.SplashDuration, func(time.Time) tea.Msg {
			return SplashDoneMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

// Snapshot 当前会话状态
func (m Model) Snapshot() chat.Snapshot {
	return m.conv.Snapshot()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.UpdateViewportSize(msg.Width, msg.Height, m.menuWidth())
		m.refresh()
		return m, nil

	case SplashDoneMsg:
		m.splash = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.conv.Snapshot().Replying {
			m.refresh()
		}
		return m, cmd

	case ReplyDueMsg:
		m.conv.ResolveReply(msg.Token)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			m.conv.Snapshot().SideMenuOpen && msg.X >= sideMenuWidth {
			m.conv.TapOutside()
			m.resize()
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.conv.Close()
			m.log.Info().Msg("quit")
			return m, tea.Quit
		}
		if m.splash {
			m.splash = false
			return m, nil
		}
		if m.form != nil {
			return m, m.finish(m.updateForm(msg))
		}
		if handled, cmd := m.handleKey(msg); handled {
			return m, m.finish(cmd)
		}
	}

	ta, cmd := m.ui.GetTextarea().Update(msg)
	m.ui.SetTextarea(ta)
	cmds = append(cmds, cmd)

	vp, cmd := m.ui.GetViewport().Update(msg)
	m.ui.SetViewport(vp)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// finish 同步表单、刷新视口并带上调度器里的定时命令
func (m *Model) finish(cmd tea.Cmd) tea.Cmd {
	snap := m.conv.Snapshot()
	if snap.TaskFormOpen && m.form == nil {
		m.form = newTaskForm(snap.PendingTask, m.opts.Now())
		m.ui.textarea.Blur()
	}
	if !snap.TaskFormOpen && m.form != nil {
		m.form = nil
	}
	if m.form == nil && !m.ui.textarea.Focused() {
		m.ui.textarea.Focus()
	}
	m.resize()
	m.refresh()
	return tea.Batch(cmd, m.sched.Drain())
}

// handleKey 处理主界面按键，返回 false 时交给输入框
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	snap := m.conv.Snapshot()

	if snap.SideMenuOpen {
		switch msg.Type {
		case tea.KeyUp:
			if m.historyIdx > 0 {
				m.historyIdx--
			}
			return true, nil
		case tea.KeyDown:
			if m.historyIdx < len(chat.History)-1 {
				m.historyIdx++
			}
			return true, nil
		case tea.KeyEnter:
			item := chat.History[m.historyIdx]
			m.conv.SelectHistory(item.ID)
			m.notice = fmt.Sprintf("Loading past chats is not available yet (%s)", item.Title)
			return true, nil
		case tea.KeyEsc:
			m.conv.TapOutside()
			return true, nil
		case tea.KeyCtrlB:
			m.conv.ToggleSideMenu()
			return true, nil
		default:
			// 在侧边栏外操作等同于点击外部
			m.conv.TapOutside()
			m.resize()
		}
	}

	switch msg.Type {
	case tea.KeyCtrlB:
		m.conv.ToggleSideMenu()
		m.historyIdx = 0
		return true, nil
	case tea.KeyCtrlN:
		m.newConversation()
		return true, nil
	case tea.KeyEsc:
		m.notice = ""
		return true, nil
	case tea.KeyUp, tea.KeyDown:
		if snap.ViewMode == chat.ViewInitial && strings.TrimSpace(m.ui.textarea.Value()) == "" {
			m.moveSuggestion(msg.Type == tea.KeyDown)
			return true, nil
		}
	case tea.KeyEnter:
		return true, m.submitInput()
	}
	return false, nil
}

func (m *Model) moveSuggestion(down bool) {
	n := len(chat.Suggestions)
	if down {
		m.suggestionIdx = (m.suggestionIdx + 1) % n
	} else {
		m.suggestionIdx = (m.suggestionIdx - 1 + n) % n
	}
}

// submitInput 回车：命令、选择建议或发送消息
func (m *Model) submitInput() tea.Cmd {
	input := m.ui.textarea.Value()

	if cmd := m.commandParser.Parse(input); cmd != nil {
		m.ui.textarea.Reset()
		return m.handleCommand(cmd)
	}

	snap := m.conv.Snapshot()
	if strings.TrimSpace(input) == "" && m.composer.ImageURI() == "" {
		if snap.ViewMode == chat.ViewInitial {
			m.conv.PickSuggestion(chat.Suggestions[m.suggestionIdx])
		}
		return nil
	}

	m.composer.SetText(input)
	text, imageURI, ok := m.composer.Submit()
	if !ok {
		return nil
	}
	m.ui.textarea.Reset()
	m.notice = ""
	m.conv.SendText(text, imageURI)
	return nil
}

// handleCommand 处理命令
func (m *Model) handleCommand(cmd *Command) tea.Cmd {
	switch cmd.Type {
	case CommandTypeNew:
		m.newConversation()
	case CommandTypeMenu:
		m.conv.ToggleSideMenu()
	case CommandTypeAttach:
		notice := m.composer.Attach(newFileCamera(cmd.Content, m.opts.CameraEnabled))
		switch {
		case notice != "":
			m.notice = notice
		case m.composer.ImageURI() == "":
			m.notice = fmt.Sprintf("No photo attached: %s not found", cmd.Content)
		default:
			m.notice = ""
		}
	case CommandTypeDetach:
		m.composer.Detach()
	case CommandTypeHelp:
		m.notice = HelpText
	case CommandTypeQuit:
		m.conv.Close()
		return tea.Quit
	default:
		m.notice = fmt.Sprintf("Unknown command '%s', type /help", cmd.Raw)
	}
	return nil
}

func (m *Model) newConversation() {
	m.conv.NewConversation()
	m.form = nil
	m.suggestionIdx = 0
	m.notice = ""
}

// updateForm 表单打开时的按键处理
func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.conv.CancelTaskForm()
		m.form = nil
		return nil
	case tea.KeyTab, tea.KeyDown:
		return m.form.next()
	case tea.KeyShiftTab, tea.KeyUp:
		return m.form.prev()
	case tea.KeyCtrlS:
		m.submitForm()
		return nil
	case tea.KeyEnter:
		if m.form.focus == fieldInfo {
			m.submitForm()
			return nil
		}
		return m.form.next()
	}
	return m.form.update(msg)
}

func (m *Model) submitForm() {
	details := m.form.details()
	if err := m.conv.SubmitTask(details); err != nil {
		m.form.setError(err)
		m.log.Debug().Err(err).Msg("task form validation failed")
		return
	}
	m.form = nil
}

func (m *Model) menuWidth() int {
	if m.conv.Snapshot().SideMenuOpen {
		return sideMenuWidth
	}
	return 0
}

func (m *Model) resize() {
	if !m.ui.IsReady() {
		return
	}
	w, h := m.ui.Size()
	m.ui.UpdateViewportSize(w, h, m.menuWidth())
}

// refresh 重新渲染对话记录
func (m *Model) refresh() {
	width := m.ui.viewport.Width
	m.ui.SetContent(m.formatMessages(m.conv.Snapshot().Messages, width))
}
