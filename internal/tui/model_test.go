package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	tea "github.com/charmbracelet/bubbletea"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, camera bool) Model {
	t.Helper()
	m := InitialModel(Options{
		ResponseDelay: time.Millisecond,
		CameraEnabled: camera,
		Now:           func() time.Time { return fixedNow },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// enterText 在输入框中写入文本并回车
func enterText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.ui.textarea.SetValue(text)
	return update(t, m, key(tea.KeyEnter))
}

// collect 执行命令并展开 BatchMsg，返回所有非空消息
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func replyDue(t *testing.T, cmd tea.Cmd) ReplyDueMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if due, ok := msg.(ReplyDueMsg); ok {
			return due
		}
	}
	t.Fatal("命令中没有 ReplyDueMsg")
	return ReplyDueMsg{}
}

func TestSendMessageAndReply(t *testing.T) {
	m := newTestModel(t, true)

	m, cmd := enterText(t, m, "My kitchen faucet is leaking")
	snap := m.Snapshot()
	if snap.ViewMode != chat.ViewConversation {
		t.Fatalf("ViewMode = %v, want CONVERSATION", snap.ViewMode)
	}
	if len(snap.Messages) != 2 || !snap.Messages[1].IsLoading {
		t.Fatalf("期望用户消息加占位消息, 得到 %+v", snap.Messages)
	}
	if m.ui.textarea.Value() != "" {
		t.Errorf("发送后输入框应清空, 得到 %q", m.ui.textarea.Value())
	}
	if !strings.Contains(m.ui.viewport.View(), "typing...") {
		t.Error("视口中应显示 typing...")
	}

	m, _ = update(t, m, replyDue(t, cmd))
	snap = m.Snapshot()
	if len(snap.Messages) != 2 || snap.LoadingCount() != 0 {
		t.Fatalf("回复后应有两条消息且无占位, 得到 %+v", snap.Messages)
	}
	if !strings.Contains(snap.Messages[1].Text, "plumber") {
		t.Errorf("回复应提到 plumber, 得到 %q", snap.Messages[1].Text)
	}
}

func TestEmptyEnterInConversationDoesNothing(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = enterText(t, m, "hello")
	m, _ = enterText(t, m, "   ")
	if got := len(m.Snapshot().Messages); got != 2 {
		t.Errorf("len(Messages) = %d, want 2", got)
	}
}

func TestSuggestionWithoutDetailsSendsImmediately(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = update(t, m, key(tea.KeyDown))
	if m.suggestionIdx != 1 {
		t.Fatalf("suggestionIdx = %d, want 1", m.suggestionIdx)
	}
	m, _ = update(t, m, key(tea.KeyEnter))

	snap := m.Snapshot()
	if snap.ViewMode != chat.ViewConversation {
		t.Fatalf("ViewMode = %v, want CONVERSATION", snap.ViewMode)
	}
	if snap.Messages[0].Text != "Looking for an electrician" {
		t.Errorf("Messages[0].Text = %q", snap.Messages[0].Text)
	}
	if m.form != nil {
		t.Error("不需要细节的建议不应打开表单")
	}
}

func TestSuggestionUpWraps(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, key(tea.KeyUp))
	if m.suggestionIdx != len(chat.Suggestions)-1 {
		t.Errorf("suggestionIdx = %d, want %d", m.suggestionIdx, len(chat.Suggestions)-1)
	}
}

func TestTaskFormFlow(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = update(t, m, key(tea.KeyEnter))
	if m.form == nil {
		t.Fatal("选择 plumber 后应打开表单")
	}
	if got := m.form.draft.Title(); got != "You need a plumber. Can you provide us with more info?" {
		t.Errorf("Title() = %q", got)
	}
	if m.Snapshot().ViewMode != chat.ViewInitial {
		t.Error("打开表单不应切换界面")
	}

	// 缺少预算
	m, _ = update(t, m, key(tea.KeyCtrlS))
	if m.form == nil || m.form.err != RequiredFieldsNotice {
		t.Fatalf("期望必填提示, 得到 %+v", m.form)
	}
	if len(m.Snapshot().Messages) != 0 {
		t.Error("校验失败不应追加消息")
	}

	m.form.inputs[fieldAmount].SetValue("50")
	m, cmd := update(t, m, key(tea.KeyCtrlS))
	if m.form != nil {
		t.Fatal("提交后表单应关闭")
	}
	snap := m.Snapshot()
	if snap.TaskFormOpen || snap.ViewMode != chat.ViewConversation {
		t.Fatalf("提交后状态不对: %+v", snap)
	}
	want := "I need a plumber. The task should be completed by 3/14/2025, 09:30 AM. My budget for this task is $50."
	if snap.Messages[0].Text != want {
		t.Errorf("Messages[0].Text = %q, want %q", snap.Messages[0].Text, want)
	}

	m, _ = update(t, m, replyDue(t, cmd))
	reply := m.Snapshot().Messages[1].Text
	if !strings.Contains(reply, "$50") || !strings.Contains(reply, "a plumber") {
		t.Errorf("回复应复述任务, 得到 %q", reply)
	}
}

func TestTaskFormEnterOnLastFieldSubmits(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, key(tea.KeyEnter))
	m.form.inputs[fieldAmount].SetValue("20")
	for i := 0; i < fieldInfo; i++ {
		m, _ = update(t, m, key(tea.KeyEnter))
	}
	if m.form == nil || m.form.focus != fieldInfo {
		t.Fatalf("应停在最后一个字段")
	}
	m, _ = update(t, m, key(tea.KeyEnter))
	if m.form != nil {
		t.Error("最后一个字段回车应提交")
	}
}

func TestTaskFormCancel(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, key(tea.KeyEnter))
	m, _ = update(t, m, key(tea.KeyEsc))

	snap := m.Snapshot()
	if m.form != nil || snap.TaskFormOpen {
		t.Error("Esc 应关闭表单")
	}
	if snap.ViewMode != chat.ViewInitial || len(snap.Messages) != 0 {
		t.Errorf("取消后状态不应改变: %+v", snap)
	}
}

func TestSideMenu(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = update(t, m, key(tea.KeyCtrlB))
	if !m.Snapshot().SideMenuOpen {
		t.Fatal("Ctrl+B 应打开侧边栏")
	}
	if !strings.Contains(m.View(), "Chat History") {
		t.Error("视图中应显示 Chat History")
	}

	m, _ = update(t, m, key(tea.KeyDown))
	m, _ = update(t, m, key(tea.KeyEnter))
	if m.Snapshot().SideMenuOpen {
		t.Error("选择历史后侧边栏应关闭")
	}
	if !strings.Contains(m.notice, chat.History[1].Title) {
		t.Errorf("notice = %q", m.notice)
	}

	m, _ = update(t, m, key(tea.KeyCtrlB))
	m, _ = update(t, m, key(tea.KeyEsc))
	if m.Snapshot().SideMenuOpen {
		t.Error("Esc 应关闭侧边栏")
	}
}

func TestMouseClickOutsideClosesMenu(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, key(tea.KeyCtrlB))

	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Snapshot().SideMenuOpen {
		t.Fatal("点击侧边栏内部不应关闭")
	}
	m, _ = update(t, m, tea.MouseMsg{X: 60, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Snapshot().SideMenuOpen {
		t.Error("点击外部应关闭侧边栏")
	}
}

func TestNewConversationDropsPendingReply(t *testing.T) {
	m := newTestModel(t, true)
	m, cmd := enterText(t, m, "hello")
	due := replyDue(t, cmd)

	m, _ = update(t, m, key(tea.KeyCtrlN))
	snap := m.Snapshot()
	if snap.ViewMode != chat.ViewInitial || len(snap.Messages) != 0 {
		t.Fatalf("新对话后应回到初始界面: %+v", snap)
	}

	m, _ = update(t, m, due)
	if got := len(m.Snapshot().Messages); got != 0 {
		t.Errorf("过期的回复不应写入, len(Messages) = %d", got)
	}
}

func TestCtrlCClosesConversation(t *testing.T) {
	m := newTestModel(t, true)
	m, cmd := update(t, m, key(tea.KeyCtrlC))
	if !m.conv.Closed() {
		t.Error("Ctrl+C 应关闭会话")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C 应返回 tea.Quit")
	}
}

func TestCommands(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = enterText(t, m, "/help")
	if m.notice != HelpText {
		t.Errorf("notice = %q, want help text", m.notice)
	}
	if len(m.Snapshot().Messages) != 0 {
		t.Error("命令不应作为消息发送")
	}

	m, _ = enterText(t, m, "/bogus")
	if !strings.Contains(m.notice, "Unknown command") {
		t.Errorf("notice = %q", m.notice)
	}

	m, _ = enterText(t, m, "/menu")
	if !m.Snapshot().SideMenuOpen {
		t.Error("/menu 应打开侧边栏")
	}

	_, cmd := enterText(t, m, "/quit")
	quit := false
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Error("/quit 应返回 tea.Quit")
	}
}

func TestAttachPhoto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leak.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, true)
	m, _ = enterText(t, m, "/attach "+path)
	if m.composer.ImageURI() == "" {
		t.Fatalf("应附带图片, notice = %q", m.notice)
	}
	if !strings.Contains(m.View(), "leak.jpg") {
		t.Error("输入栏应显示附带的图片")
	}

	m, _ = update(t, m, key(tea.KeyEnter))
	snap := m.Snapshot()
	if len(snap.Messages) != 2 || !strings.HasSuffix(snap.Messages[0].ImageURI, "leak.jpg") {
		t.Fatalf("只有图片也应能发送: %+v", snap.Messages)
	}
	if m.composer.ImageURI() != "" {
		t.Error("发送后图片应清除")
	}
}

func TestAttachMissingFile(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = enterText(t, m, "/attach /no/such/photo.jpg")
	if m.composer.ImageURI() != "" {
		t.Error("文件不存在时不应附带图片")
	}
	if !strings.Contains(m.notice, "No photo attached") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestAttachWithoutCameraPermission(t *testing.T) {
	m := newTestModel(t, false)
	m, _ = enterText(t, m, "/attach photo.jpg")
	if m.notice != chat.CameraDeniedNotice {
		t.Errorf("notice = %q, want %q", m.notice, chat.CameraDeniedNotice)
	}
}

func TestDetachPhoto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, true)
	m, _ = enterText(t, m, "/attach "+path)
	m, _ = enterText(t, m, "/detach")
	if m.composer.ImageURI() != "" {
		t.Error("/detach 应删除图片")
	}
}

func TestViewInitialAndHeader(t *testing.T) {
	m := newTestModel(t, true)
	view := m.View()
	if !strings.Contains(view, "How can I assist you today?") {
		t.Error("初始界面应显示欢迎语")
	}
	for _, s := range chat.Suggestions {
		if !strings.Contains(view, s.Label) {
			t.Errorf("初始界面缺少建议 %q", s.Label)
		}
	}
	if strings.Contains(view, "new chat") && strings.Contains(view, "✎") {
		t.Error("初始界面不应显示新对话按钮")
	}

	m, _ = enterText(t, m, "hello")
	if !strings.Contains(m.View(), "✎") {
		t.Error("对话界面应显示新对话按钮")
	}
}

func TestSplashDismissedByKey(t *testing.T) {
	m := InitialModel(Options{SplashDuration: time.Second})
	if !m.splash {
		t.Fatal("应显示启动画面")
	}
	m, _ = update(t, m, key(tea.KeyEnter))
	if m.splash {
		t.Error("按键应关闭启动画面")
	}
	if len(m.Snapshot().Messages) != 0 {
		t.Error("关闭启动画面的按键不应发送消息")
	}

	m = InitialModel(Options{SplashDuration: time.Second})
	m, _ = update(t, m, SplashDoneMsg{})
	if m.splash {
		t.Error("SplashDoneMsg 应关闭启动画面")
	}
}
