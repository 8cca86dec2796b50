package chat

import (
	"strings"
	"testing"
)

type stubCamera struct {
	granted bool
	uri     string
	ok      bool
	asked   int
}

func (c *stubCamera) RequestPermission() bool {
	c.asked++
	return c.granted
}

func (c *stubCamera) Capture() (string, bool) {
	return c.uri, c.ok
}

func TestComposerSubmit(t *testing.T) {
	c := NewComposer(0)

	if _, _, ok := c.Submit(); ok {
		t.Error("empty draft should not submit")
	}

	c.SetText("  ")
	if _, _, ok := c.Submit(); ok {
		t.Error("blank draft should not submit")
	}

	c.SetText("need help")
	text, img, ok := c.Submit()
	if !ok || text != "need help" || img != "" {
		t.Errorf("unexpected submit result: %q %q %v", text, img, ok)
	}
	if c.Text() != "" {
		t.Error("draft should be reset after submit")
	}
}

func TestComposerTruncates(t *testing.T) {
	c := NewComposer(5)
	c.SetText("héllo world")
	if got := c.Text(); got != "héllo" {
		t.Errorf("expected truncated text, got %q", got)
	}
	if NewComposer(-1).MaxLength() != DefaultMaxInputLength {
		t.Error("non-positive max length should use default")
	}

	long := NewComposer(0)
	long.SetText(strings.Repeat("x", 2000))
	if len(long.Text()) != DefaultMaxInputLength {
		t.Errorf("expected %d chars, got %d", DefaultMaxInputLength, len(long.Text()))
	}
}

func TestComposerAttach(t *testing.T) {
	c := NewComposer(0)

	denied := &stubCamera{granted: false}
	if notice := c.Attach(denied); notice != CameraDeniedNotice {
		t.Errorf("expected denial notice, got %q", notice)
	}
	if c.ImageURI() != "" {
		t.Error("denied permission must not attach an image")
	}

	c.Attach(&stubCamera{granted: true, uri: "file:///a.jpg", ok: true})
	if c.ImageURI() != "file:///a.jpg" {
		t.Fatalf("image not attached: %q", c.ImageURI())
	}

	if notice := c.Attach(&stubCamera{granted: true, ok: false}); notice != "" {
		t.Errorf("cancelled capture should be silent, got %q", notice)
	}
	if c.ImageURI() != "file:///a.jpg" {
		t.Error("cancelled capture must keep the previous image")
	}

	text, img, ok := c.Submit()
	if !ok || text != "" || img != "file:///a.jpg" {
		t.Errorf("image-only submit failed: %q %q %v", text, img, ok)
	}

	c.Attach(&stubCamera{granted: true, uri: "file:///b.jpg", ok: true})
	c.Detach()
	if c.ImageURI() != "" {
		t.Error("detach should remove the image")
	}
}
