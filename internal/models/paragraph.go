package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ParagraphType is the declared content type of a paragraph
type ParagraphType string

const (
	ParagraphTypeMarkdown ParagraphType = "markdown"
	ParagraphTypeHTML     ParagraphType = "html"
)

// ParseParagraphType accepts the type names case-insensitively
func ParseParagraphType(s string) (ParagraphType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown":
		return ParagraphTypeMarkdown, nil
	case "html":
		return ParagraphTypeHTML, nil
	}
	return "", fmt.Errorf("%w: unknown paragraph type %q", ErrValidation, s)
}

// Scan decodes a stored type. Anything other than markdown is treated as html.
func (t *ParagraphType) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
	default:
		return fmt.Errorf("paragraph type: unsupported column type %T", src)
	}
	if s == string(ParagraphTypeMarkdown) {
		*t = ParagraphTypeMarkdown
	} else {
		*t = ParagraphTypeHTML
	}
	return nil
}

// Value implements driver.Valuer
func (t ParagraphType) Value() (driver.Value, error) {
	if t == ParagraphTypeMarkdown {
		return string(ParagraphTypeMarkdown), nil
	}
	return string(ParagraphTypeHTML), nil
}

// Paragraph is one ordered content block of an article
type Paragraph struct {
	ID          int64         `json:"id,omitempty" db:"id"`
	ArticleID   int64         `json:"article_id" db:"article_id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Type        ParagraphType `json:"paragraph_type" db:"paragraph_type"`
	Position    int64         `json:"position" db:"position"`
	Content     string        `json:"content" db:"content"`
	Rendered    *string       `json:"rendered,omitempty" db:"-"` // Computed on read, never stored
}

// Display returns the rendered HTML when present, otherwise the raw content
func (p *Paragraph) Display() string {
	if p.Rendered != nil {
		return *p.Rendered
	}
	return p.Content
}

// ParagraphInput is the admin form for creating or updating a paragraph
type ParagraphInput struct {
	ArticleID int64  `form:"article_id" json:"article_id"`
	Type      string `form:"paragraph_type" json:"paragraph_type"`
	Position  int64  `form:"position" json:"position"`
	Content   string `form:"content" json:"content"`
}
