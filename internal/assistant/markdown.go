package assistant

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"techtrack-api/internal/models"
)

var (
	markdownOnce     sync.Once
	markdownRenderer goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownRenderer
}

// RenderMarkdown converts model Markdown to HTML. Raw HTML in the
// source is not passed through.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WithHTML fills the HTML field of model messages. Messages that fail
// to render are returned unchanged.
func WithHTML(messages []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = m
		if m.Role != models.RoleModel {
			continue
		}
		if html, err := RenderMarkdown(m.Text); err == nil {
			out[i].HTML = html
		}
	}
	return out
}
