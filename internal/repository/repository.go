package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	FindByID(ctx context.Context, id int64) (*models.Article, error)
	FindByAlias(ctx context.Context, alias string) (*models.Article, error)
	FindAll(ctx context.Context) ([]*models.Article, error)
	FindPaginated(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int64) error
}

// ParagraphRepository defines the interface for paragraph data operations.
// Every read renders markdown paragraphs.
type ParagraphRepository interface {
	Create(ctx context.Context, paragraph *models.Paragraph) error
	FindByID(ctx context.Context, id int64) (*models.Paragraph, error)
	FindAll(ctx context.Context) ([]*models.Paragraph, error)
	FindByArticleID(ctx context.Context, articleID int64) ([]models.Paragraph, error)
	Update(ctx context.Context, paragraph *models.Paragraph) error
	Delete(ctx context.Context, id int64) error
}

// StatsRepository defines the interface for daily stats operations
type StatsRepository interface {
	FindOrCreate(ctx context.Context, day int64) (*models.Stats, error)
	IncrementPageView(ctx context.Context, day int64, page models.Page) error
	UpdateArticleViews(ctx context.Context, day int64, views models.ArticleViews) error
	LastDays(ctx context.Context, n int) ([]*models.Stats, error)
}

// ContactRepository defines the interface for contact request operations
type ContactRepository interface {
	Create(ctx context.Context, contact *models.ContactRequest) error
	FindByID(ctx context.Context, id int64) (*models.ContactRequest, error)
	FindAll(ctx context.Context) ([]*models.ContactRequest, error)
	FindRecent(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error)
	CountAll(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article   ArticleRepository
	Paragraph ParagraphRepository
	Stats     StatsRepository
	Contact   ContactRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	paragraphs := NewParagraphRepo(db)
	return &Repositories{
		Article:   NewArticleRepo(db, paragraphs),
		Paragraph: paragraphs,
		Stats:     NewStatsRepo(db),
		Contact:   NewContactRepo(db),
	}
}

// storeErr wraps a driver error into the store failure category
func storeErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: alias already in use", models.ErrValidation, op)
	}
	return fmt.Errorf("%w: %s: %w", models.ErrStore, op, err)
}

// isUniqueViolation detects unique constraint failures on both drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// checkAffected turns a zero-row update or delete into ErrNotFound
func checkAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the pattern matches literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
