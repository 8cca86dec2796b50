package chat

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputLength 输入框最大字符数
const DefaultMaxInputLength = 1000

// CameraDeniedNotice 相机权限被拒绝时的提示
const CameraDeniedNotice = "Sorry, we need camera permissions to make this work!"

// Camera 图片采集方，ok 为 false 表示用户取消
type Camera interface {
	RequestPermission() bool
	Capture() (uri string, ok bool)
}

// Composer 输入栏的草稿：文本和可选图片
type Composer struct {
	text     string
	imageURI string
	maxLen   int
}

// NewComposer 创建输入草稿，maxLen <= 0 时使用默认值
func NewComposer(maxLen int) *Composer {
	if maxLen <= 0 {
		maxLen = DefaultMaxInputLength
	}
	return &Composer{maxLen: maxLen}
}

// SetText 设置文本，超长部分截断
func (c *Composer) SetText(text string) {
	if utf8.RuneCountInString(text) > c.maxLen {
		text = string([]rune(text)[:c.maxLen])
	}
	c.text = text
}

// Text 当前文本
func (c *Composer) Text() string {
	return c.text
}

// ImageURI 当前附带的图片
func (c *Composer) ImageURI() string {
	return c.imageURI
}

// Attach 请求权限并拍照。返回给用户的提示，没有提示时为空
func (c *Composer) Attach(cam Camera) string {
	if !cam.RequestPermission() {
		return CameraDeniedNotice
	}
	uri, ok := cam.Capture()
	if !ok {
		return ""
	}
	c.imageURI = uri
	return ""
}

// Detach 删除图片
func (c *Composer) Detach() {
	c.imageURI = ""
}

// MaxLength 最大字符数
func (c *Composer) MaxLength() int {
	return c.maxLen
}

// Submit 文本非空或有图片时返回内容并清空草稿
func (c *Composer) Submit() (text, imageURI string, ok bool) {
	if strings.TrimSpace(c.text) == "" && c.imageURI == "" {
		return "", "", false
	}
	text, imageURI = c.text, c.imageURI
	c.text = ""
	c.imageURI = ""
	return text, imageURI, true
}
