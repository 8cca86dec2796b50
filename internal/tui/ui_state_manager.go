package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// reservedLines 视口之外占用的行数：标题、提示、输入框、图片行和帮助
const reservedLines = 9

// UIStateManager 管理UI组件的状态
type UIStateManager struct {
	viewport viewport.Model
	textarea textarea.Model
	width    int
	height   int
	ready    bool
}

// NewUIStateManager 创建新的UI状态管理器
func NewUIStateManager(maxInputLength int) *UIStateManager {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.Focus()
	ta.CharLimit = maxInputLength
	ta.SetWidth(80)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(80, 20)

	return &UIStateManager{
		viewport: vp,
		textarea: ta,
		width:    80,
		height:   24,
		ready:    false,
	}
}

// GetViewport 获取viewport组件
func (m *UIStateManager) GetViewport() viewport.Model {
	return m.viewport
}

// SetViewport 设置viewport组件
func (m *UIStateManager) SetViewport(vp viewport.Model) {
	m.viewport = vp
}

// GetTextarea 获取textarea组件
func (m *UIStateManager) GetTextarea() textarea.Model {
	return m.textarea
}

// SetTextarea 设置textarea组件
func (m *UIStateManager) SetTextarea(ta textarea.Model) {
	m.textarea = ta
}

// IsReady 检查是否已准备就绪
func (m *UIStateManager) IsReady() bool {
	return m.ready
}

// Size 当前终端尺寸
func (m *UIStateManager) Size() (int, int) {
	return m.width, m.height
}

// SetContent 更新对话内容并滚动到底部
func (m *UIStateManager) SetContent(content string) {
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// UpdateViewportSize 更新viewport尺寸，menuWidth 为侧边栏占用的宽度
func (m *UIStateManager) UpdateViewportSize(width, height, menuWidth int) {
	m.width, m.height = width, height
	vpWidth := width - menuWidth
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - reservedLines
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.YPosition = 0
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(width)
}
