package models

import (
	"time"
)

// Article represents a blog article
type Article struct {
	ID         int64       `json:"id,omitempty" db:"id"`
	Title      string      `json:"title" db:"title"`
	Teaser     string      `json:"teaser" db:"teaser"`
	Cover      string      `json:"cover" db:"cover"`
	Alias      string      `json:"alias" db:"alias"`
	Tags       string      `json:"tags" db:"tags"` // Free text, matched by substring
	CreatedAt  int64       `json:"created_at" db:"created_at"`
	UpdatedAt  int64       `json:"updated_at" db:"updated_at"`
	Published  bool        `json:"published" db:"published"`
	Paragraphs []Paragraph `json:"paragraphs,omitempty" db:"-"` // Only set on single-article fetches
}

// NewArticle builds an unpublished article with both timestamps set to now
func NewArticle(title string, now time.Time) *Article {
	ts := now.Unix()
	return &Article{
		Title:     title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// ArticleQuery describes a paginated article listing
type ArticleQuery struct {
	Tag           string // Empty matches every article
	Offset        int
	Limit         int
	PublishedOnly bool
}

// ArticleInput is the full set of admin-editable article fields
type ArticleInput struct {
	Title     string `form:"title" json:"title"`
	Teaser    string `form:"teaser" json:"teaser"`
	Cover     string `form:"cover" json:"cover"`
	Alias     string `form:"alias" json:"alias"`
	Tags      string `form:"tags" json:"tags"`
	Published bool   `form:"published" json:"published"`
	UpdatedAt *int64 `form:"updated_at" json:"updated_at,omitempty"` // Left unchanged when absent
}

// Apply replaces every mutable field of the article with the input values
func (in *ArticleInput) Apply(a *Article) {
	a.Title = in.Title
	a.Teaser = in.Teaser
	a.Cover = in.Cover
	a.Alias = in.Alias
	a.Tags = in.Tags
	a.Published = in.Published
	if in.UpdatedAt != nil {
		a.UpdatedAt = *in.UpdatedAt
	}
}
