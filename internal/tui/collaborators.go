package tui

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	"github.com/Zacy-Sokach/Mira/internal/utils"
)

// fileCamera 终端里没有相机，/attach 给出的图片路径充当拍摄结果
type fileCamera struct {
	path    string
	enabled bool
}

func newFileCamera(path string, enabled bool) *fileCamera {
	return &fileCamera{path: path, enabled: enabled}
}

// RequestPermission 由配置 camera_enabled 决定
func (c *fileCamera) RequestPermission() bool {
	return c.enabled
}

// Capture 文件不存在视为用户取消
func (c *fileCamera) Capture() (string, bool) {
	path := utils.ExpandHome(strings.TrimSpace(c.path))
	if path == "" {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(abs); err != nil || info.IsDir() {
		return "", false
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), true
}

// 表单里接受的日期和时间格式
var (
	dateLayouts = []string{"2006-01-02", "1/2/2006", "2006/01/02"}
	timeLayouts = []string{"15:04", "03:04 PM", "3:04 PM", "3:04PM", "03:04PM"}
)

const (
	dateInputLayout = "2006-01-02"
	timeInputLayout = "03:04 PM"
)

// inputPicker 把输入框的文字当作选择器的结果，无法解析视为取消
type inputPicker struct {
	value string
}

// Pick 实现 chat.Picker
func (p inputPicker) Pick(initial time.Time, mode chat.PickMode) (time.Time, bool) {
	value := strings.TrimSpace(p.value)
	if value == "" {
		return initial, false
	}
	layouts := dateLayouts
	if mode == chat.PickTime {
		layouts = timeLayouts
		value = strings.ToUpper(value)
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, initial.Location()); err == nil {
			return t, true
		}
	}
	return initial, false
}
