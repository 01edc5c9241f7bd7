package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Page identifies a page with its own daily view counter
type Page string

const (
	PageHome   Page = "home"
	PageAbout  Page = "about"
	PageDonate Page = "donate"
)

// ValidPages defines the pages that carry a counter column
var ValidPages = map[Page]bool{
	PageHome:   true,
	PageAbout:  true,
	PageDonate: true,
}

// ArticleViews maps article id to its view count for one day.
// Persisted as a single JSON text column.
type ArticleViews map[int64]int64

// Add increments the counter of one article
func (v ArticleViews) Add(articleID int64) {
	v[articleID]++
}

// Scan implements sql.Scanner
func (v *ArticleViews) Scan(src interface{}) error {
	var raw []byte
	switch s := src.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	case nil:
		*v = ArticleViews{}
		return nil
	default:
		return fmt.Errorf("article views: unsupported column type %T", src)
	}

	views := ArticleViews{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &views); err != nil {
			return fmt.Errorf("article views: %w", err)
		}
	}
	*v = views
	return nil
}

// Value implements driver.Valuer
func (v ArticleViews) Value() (driver.Value, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[int64]int64(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Stats is the aggregate of one calendar day
type Stats struct {
	Date         int64        `json:"date" db:"day"` // Epoch seconds at local midnight
	HomeViews    int64        `json:"home_views" db:"home_views"`
	AboutViews   int64        `json:"about_views" db:"about_views"`
	DonateViews  int64        `json:"donate_views" db:"donate_views"`
	ArticleViews ArticleViews `json:"article_views" db:"article_views"`
}

// DayKey returns the epoch seconds of local midnight for t
func DayKey(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Unix()
}

// StatsOverview is the admin statistics view
type StatsOverview struct {
	Days         []*Stats          `json:"days"`
	MessageCount int               `json:"message_count"`
	Recent       []*ContactRequest `json:"recent_messages"`
}
