package tui

import (
	"fmt"
	"strings"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	"github.com/charmbracelet/lipgloss"
)

const sideMenuWidth = 28

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	spinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	userLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	botLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	imageStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	greetingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	menuStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	menuActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	splashStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

func (m Model) View() string {
	width, height := m.ui.Size()

	if m.splash {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			splashStyle.Render("Mira")+"\n"+m.spinner.View()+"\n"+helpStyle.Render(Version))
	}

	if m.form != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.form.view(width))
	}

	snap := m.conv.Snapshot()

	var body string
	if snap.ViewMode == chat.ViewInitial {
		body = m.initialView(width - m.menuWidth())
	} else {
		body = m.ui.viewport.View()
	}
	if snap.SideMenuOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sideMenuView(height-4), body)
	}

	var sb strings.Builder
	sb.WriteString(m.headerView(snap))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if m.notice != "" {
		sb.WriteString(noticeStyle.Render(m.notice))
		sb.WriteString("\n")
	}
	if uri := m.composer.ImageURI(); uri != "" {
		sb.WriteString(imageStyle.Render("📷 " + uri + "  (/detach to remove)"))
		sb.WriteString("\n")
	}
	sb.WriteString(m.ui.textarea.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(m.helpLine(snap)))
	return sb.String()
}

func (m Model) headerView(snap chat.Snapshot) string {
	header := headerStyle.Render("☰ Mira")
	if snap.ViewMode == chat.ViewConversation {
		header += "  " + helpStyle.Render("✎ Ctrl+N new chat")
	}
	return header
}

func (m Model) helpLine(snap chat.Snapshot) string {
	switch {
	case snap.SideMenuOpen:
		return "↑/↓: choose • Enter: open • Esc: close menu"
	case snap.ViewMode == chat.ViewInitial:
		return "↑/↓: choose suggestion • Enter: send • Ctrl+B: history • /help • Ctrl+C: quit"
	default:
		return "Enter: send • Ctrl+B: history • Ctrl+N: new chat • /help • Ctrl+C: quit"
	}
}

// initialView 欢迎语和建议列表
func (m Model) initialView(width int) string {
	var sb strings.Builder
	sb.WriteString(greetingStyle.Render("How can I assist you today?"))
	sb.WriteString("\n\n")
	for i, s := range chat.Suggestions {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		line := fmt.Sprintf("%s  %s", s.Icon, s.Label)
		if i == m.suggestionIdx {
			line = style.Bold(true).Render("› " + line)
		} else {
			line = style.Render("  " + line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func (m Model) sideMenuView(height int) string {
	var sb strings.Builder
	sb.WriteString(menuTitleStyle.Render("Chat History"))
	sb.WriteString("\n")
	for i, item := range chat.History {
		if i == m.historyIdx {
			sb.WriteString(menuActiveStyle.Render("› " + item.Title))
		} else {
			sb.WriteString(menuItemStyle.Render("  " + item.Title))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("👤 " + m.opts.UserName))
	if height < 1 {
		height = 1
	}
	return menuStyle.Width(sideMenuWidth - 3).Height(height).Render(sb.String())
}

// formatMessages 把消息列表渲染成视口内容
func (m Model) formatMessages(messages []chat.Message, width int) string {
	var sb strings.Builder
	for _, msg := range messages {
		switch {
		case msg.IsLoading:
			sb.WriteString(botLabelStyle.Render("Mira:"))
			sb.WriteString(" ")
			sb.WriteString(m.spinner.View())
			sb.WriteString(helpStyle.Render(" typing..."))
		case msg.IsUser:
			sb.WriteString(userLabelStyle.Render("You:"))
			sb.WriteString("\n")
			if msg.Text != "" {
				sb.WriteString(lipgloss.NewStyle().Width(width).Render(msg.Text))
			}
			if msg.ImageURI != "" {
				if msg.Text != "" {
					sb.WriteString("\n")
				}
				sb.WriteString(imageStyle.Render("[image: " + msg.ImageURI + "]"))
			}
		default:
			sb.WriteString(botLabelStyle.Render("Mira:"))
			sb.WriteString("\n")
			sb.WriteString(m.markdown.Render(msg.Text, width))
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
