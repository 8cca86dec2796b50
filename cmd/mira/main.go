package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	"github.com/Zacy-Sokach/Mira/internal/config"
	"github.com/Zacy-Sokach/Mira/internal/logging"
	"github.com/Zacy-Sokach/Mira/internal/tui"
	"github.com/Zacy-Sokach/Mira/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

var (
	Version = "dev"
)

func main() {
	// 处理命令行参数
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Printf("Mira %s\n", Version)
			os.Exit(0)
		case "-h", "--help":
			fmt.Println("Mira - find a service professional")
			fmt.Println()
			fmt.Println("Usage:")
			fmt.Println("  mira                   Start the interactive TUI")
			fmt.Println("  mira -v, --version     Show version information")
			fmt.Println("  mira -h, --help        Show help information")
			fmt.Println()
			fmt.Println(tui.HelpText)
			fmt.Println()
			fmt.Printf("Config: %s\n", utils.GetConfigPathForDisplay())
			os.Exit(0)
		}
	}

	// 添加panic恢复
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("程序发生panic: %v\n", r)
			fmt.Println("堆栈跟踪:")
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.Nop()
	if path, err := cfg.LogPath(); err == nil {
		l, closer, err := logging.New(path, cfg.LogLevel)
		if err != nil {
			fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("日志不可用: " + err.Error()))
		} else {
			logger = l
			defer closer.Close()
		}
	}

	policy, err := chat.NewReplyPolicy(cfg.ReplyPolicy)
	if err != nil {
		fmt.Printf("配置错误: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Str("version", Version).Str("policy", cfg.ReplyPolicy).Msg("starting")

	// 检查是否在交互式终端中
	if isTerminal() {
		tui.Version = Version
		model := tui.InitialModel(tui.Options{
			ResponseDelay:  cfg.ResponseDelay(),
			SplashDuration: cfg.SplashDuration(),
			Policy:         policy,
			UserName:       cfg.UserName,
			CameraEnabled:  cfg.Camera(),
			MaxInputLength: cfg.MaxInputLength,
			Logger:         &logger,
		})
		p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			fmt.Printf("程序运行错误: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// 非交互式环境，逐行读取标准输入
	fmt.Println("Mira 运行在非交互式模式")
	fmt.Println(cfg.Summary())
	fmt.Println()

	sched := chat.NewTimerScheduler()
	conv := chat.New(chat.Options{
		Policy:    policy,
		Scheduler: sched,
		Delay:     cfg.ResponseDelay(),
		Logger:    &logger,
	})
	defer conv.Close()

	if err := runLines(conv, sched, os.Stdin, os.Stdout); err != nil {
		fmt.Printf("读取输入失败: %v\n", err)
		os.Exit(1)
	}
}

// runLines 每行作为一条用户消息，等待回复后输出
func runLines(conv *chat.Conversation, sched *chat.TimerScheduler, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !conv.SendText(text, "") {
			continue
		}
		for conv.Snapshot().Replying {
			conv.ResolveReply(<-sched.Fired())
		}
		msgs := conv.Snapshot().Messages
		fmt.Fprintf(out, "You: %s\nMira: %s\n\n", text, msgs[len(msgs)-1].Text)
	}
	return scanner.Err()
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
