package repository

import (
	"context"
	"fmt"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
)

const statsColumns = `day, home_views, about_views, donate_views, article_views`

// pageColumns whitelists the counter column of every page
var pageColumns = map[models.Page]string{
	models.PageHome:   "home_views",
	models.PageAbout:  "about_views",
	models.PageDonate: "donate_views",
}

// statsRepo is the concrete implementation of StatsRepository
type statsRepo struct {
	db *database.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *database.DB) StatsRepository {
	return &statsRepo{db: db}
}

func scanStats(row rowScanner) (*models.Stats, error) {
	var s models.Stats
	err := row.Scan(&s.Date, &s.HomeViews, &s.AboutViews, &s.DonateViews, &s.ArticleViews)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindOrCreate returns the row of the given day, creating it with zero
// counters when missing. Safe to call concurrently.
func (r *statsRepo) FindOrCreate(ctx context.Context, day int64) (*models.Stats, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stats (day, home_views, about_views, donate_views, article_views)
		 VALUES ($1, 0, 0, 0, '{}')
		 ON CONFLICT (day) DO NOTHING`,
		day,
	)
	if err != nil {
		return nil, storeErr("create stats", err)
	}

	query := `SELECT ` + statsColumns + ` FROM stats WHERE day = $1`
	stats, err := scanStats(r.db.QueryRowContext(ctx, query, day))
	if err != nil {
		return nil, storeErr("find stats", err)
	}
	return stats, nil
}

// IncrementPageView atomically bumps the counter of one page
func (r *statsRepo) IncrementPageView(ctx context.Context, day int64, page models.Page) error {
	column, ok := pageColumns[page]
	if !ok {
		return fmt.Errorf("%w: unknown page %q", models.ErrValidation, page)
	}

	query := fmt.Sprintf(`UPDATE stats SET %[1]s = %[1]s + 1 WHERE day = $1`, column)
	res, err := r.db.ExecContext(ctx, query, day)
	if err != nil {
		return storeErr("increment page view", err)
	}
	return checkAffected("increment page view", res)
}

// UpdateArticleViews replaces the article view map of one day
func (r *statsRepo) UpdateArticleViews(ctx context.Context, day int64, views models.ArticleViews) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stats SET article_views = $1 WHERE day = $2`,
		views, day,
	)
	if err != nil {
		return storeErr("update article views", err)
	}
	return checkAffected("update article views", res)
}

// LastDays returns the n most recent rows, newest first
func (r *statsRepo) LastDays(ctx context.Context, n int) ([]*models.Stats, error) {
	if n <= 0 {
		return []*models.Stats{}, nil
	}

	query := `SELECT ` + statsColumns + ` FROM stats ORDER BY day DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, storeErr("list stats", err)
	}
	defer rows.Close()

	days := make([]*models.Stats, 0)
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, storeErr("list stats", err)
		}
		days = append(days, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list stats", err)
	}
	return days, nil
}
