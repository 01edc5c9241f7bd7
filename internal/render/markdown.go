package render

import (
	"bytes"
	"fmt"

	"github.com/blog-cms-api/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// goldmark.Markdown is safe for concurrent use; configuration never changes.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render transforms paragraph content according to its declared type.
// Markdown is converted to HTML; every other type is passed through, in
// which case ok is false and the caller displays the raw content.
func Render(content string, kind models.ParagraphType) (out string, ok bool, err error) {
	switch kind {
	case models.ParagraphTypeMarkdown:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(content), &buf); err != nil {
			return "", false, fmt.Errorf("%w: markdown: %w", models.ErrRender, err)
		}
		return buf.String(), true, nil
	default:
		return "", false, nil
	}
}

// Paragraph populates p.Rendered when the paragraph type requires it
func Paragraph(p *models.Paragraph) error {
	out, ok, err := Render(p.Content, p.Type)
	if err != nil {
		return err
	}
	if ok {
		p.Rendered = &out
	} else {
		p.Rendered = nil
	}
	return nil
}
