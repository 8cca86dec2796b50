package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/russross/blackfriday/v2"
)

// 全局Markdown渲染器单例
var (
	globalMarkdownRenderer *MarkdownRenderer
	rendererOnce           sync.Once
)

// GetMarkdownRenderer 获取Markdown渲染器单例
func GetMarkdownRenderer() *MarkdownRenderer {
	rendererOnce.Do(func() {
		globalMarkdownRenderer = NewMarkdownRenderer()
	})
	return globalMarkdownRenderer
}

// MarkdownRenderer 用 blackfriday 解析，再用 lipgloss 输出到终端
type MarkdownRenderer struct {
	styles map[string]lipgloss.Style
}

// NewMarkdownRenderer 创建新的 Markdown 渲染器
func NewMarkdownRenderer() *MarkdownRenderer {
	r := &MarkdownRenderer{}
	r.initStyles()
	return r
}

// initStyles 初始化样式配置
func (r *MarkdownRenderer) initStyles() {
	r.styles = map[string]lipgloss.Style{
		"heading": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		"code":    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		"link":    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
		"quote":   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render 渲染 Markdown，width > 0 时按宽度换行
func (r *MarkdownRenderer) Render(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	root := md.Parse([]byte(src))

	var sb strings.Builder
	bold, italic, strike := 0, 0, 0
	listDepth := 0

	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Strong:
			bold += step(entering)
		case blackfriday.Emph:
			italic += step(entering)
		case blackfriday.Del:
			strike += step(entering)
		case blackfriday.Text:
			style := lipgloss.NewStyle().Bold(bold > 0).Italic(italic > 0).Strikethrough(strike > 0)
			if node.Parent != nil && node.Parent.Type == blackfriday.Heading {
				style = r.styles["heading"]
			}
			sb.WriteString(renderInline(style, string(node.Literal)))
		case blackfriday.Code:
			sb.WriteString(r.styles["code"].Render(string(node.Literal)))
		case blackfriday.CodeBlock:
			for _, line := range strings.Split(strings.TrimRight(string(node.Literal), "\n"), "\n") {
				sb.WriteString("  ")
				sb.WriteString(r.styles["code"].Render(line))
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		case blackfriday.Link:
			if !entering {
				sb.WriteString(" (")
				sb.WriteString(r.styles["link"].Render(string(node.LinkData.Destination)))
				sb.WriteString(")")
			}
		case blackfriday.Softbreak:
			sb.WriteString(" ")
		case blackfriday.Hardbreak:
			sb.WriteString("\n")
		case blackfriday.List:
			listDepth += step(entering)
			if !entering && listDepth == 0 {
				sb.WriteString("\n")
			}
		case blackfriday.Item:
			if entering {
				sb.WriteString(strings.Repeat("  ", listDepth-1))
				sb.WriteString("• ")
			}
		case blackfriday.Paragraph, blackfriday.Heading:
			if !entering {
				if node.Parent != nil && node.Parent.Type == blackfriday.Item {
					sb.WriteString("\n")
				} else {
					sb.WriteString("\n\n")
				}
			}
		case blackfriday.BlockQuote:
			if entering {
				sb.WriteString(r.styles["quote"].Render("│ "))
			}
		case blackfriday.HTMLSpan, blackfriday.HTMLBlock:
			sb.WriteString(string(node.Literal))
		}
		return blackfriday.GoToNext
	})

	out := strings.TrimRight(sb.String(), "\n")
	if width > 0 {
		out = lipgloss.NewStyle().Width(width).Render(out)
	}
	return out
}

func step(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

// renderInline 没有任何样式时直接返回原文
func renderInline(style lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	if !style.GetBold() && !style.GetItalic() && !style.GetStrikethrough() && !style.GetUnderline() {
		if _, ok := style.GetForeground().(lipgloss.NoColor); ok {
			return text
		}
	}
	return style.Render(text)
}
