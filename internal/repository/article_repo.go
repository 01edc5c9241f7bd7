package repository

import (
	"context"
	"fmt"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
)

const articleColumns = `id, title, teaser, cover, alias, tags, created_at, updated_at, published`

// MaxPageSize bounds a single paginated listing
const MaxPageSize = 100

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db         *database.DB
	paragraphs ParagraphRepository
}

// NewArticleRepo creates a new article repository. Paragraphs are attached
// to single-article fetches through the given paragraph repository.
func NewArticleRepo(db *database.DB, paragraphs ParagraphRepository) ArticleRepository {
	return &articleRepo{db: db, paragraphs: paragraphs}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Teaser, &a.Cover, &a.Alias, &a.Tags,
		&a.CreatedAt, &a.UpdatedAt, &a.Published,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new article and assigns its id
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (title, teaser, cover, alias, tags, created_at, updated_at, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Teaser, article.Cover, article.Alias, article.Tags,
		article.CreatedAt, article.UpdatedAt, article.Published,
	).Scan(&article.ID)
	if err != nil {
		return storeErr("create article", err)
	}
	return nil
}

// FindByID retrieves an article with its paragraphs
func (r *articleRepo) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("find article", err)
	}
	return r.attach(ctx, article)
}

// FindByAlias retrieves an article by its alias with its paragraphs
func (r *articleRepo) FindByAlias(ctx context.Context, alias string) (*models.Article, error) {
	if alias == "" {
		return nil, models.ErrNotFound
	}
	query := `SELECT ` + articleColumns + ` FROM articles WHERE alias = $1`
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, alias))
	if err != nil {
		return nil, storeErr("find article by alias", err)
	}
	return r.attach(ctx, article)
}

func (r *articleRepo) attach(ctx context.Context, article *models.Article) (*models.Article, error) {
	paragraphs, err := r.paragraphs.FindByArticleID(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	article.Paragraphs = paragraphs
	return article, nil
}

// FindAll returns every article, newest first, without paragraphs
func (r *articleRepo) FindAll(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC, id DESC`
	return r.list(ctx, "list articles", query)
}

// FindPaginated returns one page of articles, newest first, optionally
// restricted to a tag substring and to published articles
func (r *articleRepo) FindPaginated(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	if q.Offset < 0 || q.Limit < 0 || q.Limit > MaxPageSize {
		return nil, fmt.Errorf("%w: offset must be >= 0 and limit within 0..%d", models.ErrValidation, MaxPageSize)
	}

	// Placeholders appear in ascending order so that the numbering binds
	// identically on both drivers.
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE tags LIKE '%' || CAST($1 AS TEXT) || '%' ESCAPE '\'
		  AND (published OR $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	args := []interface{}{escapeLike(q.Tag), !q.PublishedOnly, q.Limit, q.Offset}
	return r.list(ctx, "paginate articles", query, args...)
}

func (r *articleRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return articles, nil
}

// Update replaces every mutable field of an existing article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $1, teaser = $2, cover = $3, alias = $4, tags = $5,
		    updated_at = $6, published = $7
		WHERE id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		article.Title, article.Teaser, article.Cover, article.Alias, article.Tags,
		article.UpdatedAt, article.Published, article.ID,
	)
	if err != nil {
		return storeErr("update article", err)
	}
	return checkAffected("update article", res)
}

// Delete removes an article by id. Its paragraphs are left in place.
func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return storeErr("delete article", err)
	}
	return nil
}
