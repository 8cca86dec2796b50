package tui

import (
	"regexp"
	"strings"
)

// CommandType 命令类型
type CommandType int

const (
	CommandTypeUnknown CommandType = iota
	CommandTypeNew
	CommandTypeMenu
	CommandTypeAttach
	CommandTypeDetach
	CommandTypeHelp
	CommandTypeQuit
)

// Command 解析后的命令
type Command struct {
	Type    CommandType
	Raw     string
	Content string
}

// CommandParser 命令解析器，只识别 / 开头的输入，避免误触
type CommandParser struct {
	newPatterns    []*regexp.Regexp
	menuPatterns   []*regexp.Regexp
	attachPatterns []*regexp.Regexp
	detachPatterns []*regexp.Regexp
	helpPatterns   []*regexp.Regexp
	quitPatterns   []*regexp.Regexp
}

// NewCommandParser 创建新的命令解析器
func NewCommandParser() *CommandParser {
	parser := &CommandParser{}
	parser.initializePatterns()
	return parser
}

// initializePatterns 初始化正则表达式模式
func (p *CommandParser) initializePatterns() {
	p.newPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/new$`),
		regexp.MustCompile(`(?i)^/reset$`),
	}

	p.menuPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/menu$`),
		regexp.MustCompile(`(?i)^/history$`),
	}

	// /attach 后面跟图片路径
	p.attachPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/attach\s+(.+)$`),
		regexp.MustCompile(`(?i)^/camera\s+(.+)$`),
	}

	p.detachPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/detach$`),
	}

	p.helpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/help$`),
		regexp.MustCompile(`^/\?$`),
	}

	p.quitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/(quit|exit)$`),
	}
}

// Parse 解析命令字符串，不是命令时返回 nil
func (p *CommandParser) Parse(input string) *Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	simple := []struct {
		patterns []*regexp.Regexp
		cmdType  CommandType
	}{
		{p.newPatterns, CommandTypeNew},
		{p.menuPatterns, CommandTypeMenu},
		{p.detachPatterns, CommandTypeDetach},
		{p.helpPatterns, CommandTypeHelp},
		{p.quitPatterns, CommandTypeQuit},
	}
	for _, group := range simple {
		for _, pattern := range group.patterns {
			if pattern.MatchString(input) {
				return &Command{Type: group.cmdType, Raw: input}
			}
		}
	}

	for _, pattern := range p.attachPatterns {
		if matches := pattern.FindStringSubmatch(input); matches != nil {
			return &Command{
				Type:    CommandTypeAttach,
				Raw:     input,
				Content: strings.TrimSpace(matches[1]),
			}
		}
	}

	return &Command{Type: CommandTypeUnknown, Raw: input}
}

// IsCommand 检查字符串是否为命令
func (p *CommandParser) IsCommand(input string) bool {
	return p.Parse(input) != nil
}

// FormatCommandType 格式化命令类型为字符串
func FormatCommandType(cmdType CommandType) string {
	switch cmdType {
	case CommandTypeNew:
		return "NEW"
	case CommandTypeMenu:
		return "MENU"
	case CommandTypeAttach:
		return "ATTACH"
	case CommandTypeDetach:
		return "DETACH"
	case CommandTypeHelp:
		return "HELP"
	case CommandTypeQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// HelpText 命令帮助
const HelpText = `Commands:
  /new            start a new conversation
  /menu           toggle chat history
  /attach <path>  attach a photo
  /detach         remove the attached photo
  /quit           leave Mira`
