package repository

import (
	"context"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/render"
)

const paragraphColumns = `id, article_id, title, description, paragraph_type, position, content`

// paragraphRepo is the concrete implementation of ParagraphRepository
type paragraphRepo struct {
	db *database.DB
}

// NewParagraphRepo creates a new paragraph repository
func NewParagraphRepo(db *database.DB) ParagraphRepository {
	return &paragraphRepo{db: db}
}

func scanParagraph(row rowScanner) (*models.Paragraph, error) {
	var p models.Paragraph
	err := row.Scan(&p.ID, &p.ArticleID, &p.Title, &p.Description, &p.Type, &p.Position, &p.Content)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new paragraph and assigns its id
func (r *paragraphRepo) Create(ctx context.Context, p *models.Paragraph) error {
	query := `
		INSERT INTO paragraphs (article_id, title, description, paragraph_type, position, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ArticleID, p.Title, p.Description, p.Type, p.Position, p.Content,
	).Scan(&p.ID)
	if err != nil {
		return storeErr("create paragraph", err)
	}
	return nil
}

// FindByID retrieves a rendered paragraph
func (r *paragraphRepo) FindByID(ctx context.Context, id int64) (*models.Paragraph, error) {
	query := `SELECT ` + paragraphColumns + ` FROM paragraphs WHERE id = $1`
	p, err := scanParagraph(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("find paragraph", err)
	}
	if err := render.Paragraph(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindAll returns every paragraph, rendered
func (r *paragraphRepo) FindAll(ctx context.Context) ([]*models.Paragraph, error) {
	query := `SELECT ` + paragraphColumns + ` FROM paragraphs ORDER BY id`
	list, err := r.list(ctx, "list paragraphs", query)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Paragraph, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

// FindByArticleID returns the rendered paragraphs of one article ordered by position
func (r *paragraphRepo) FindByArticleID(ctx context.Context, articleID int64) ([]models.Paragraph, error) {
	query := `SELECT ` + paragraphColumns + ` FROM paragraphs WHERE article_id = $1 ORDER BY position, id`
	return r.list(ctx, "list article paragraphs", query, articleID)
}

func (r *paragraphRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]models.Paragraph, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	paragraphs := make([]models.Paragraph, 0)
	for rows.Next() {
		p, err := scanParagraph(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		paragraphs = append(paragraphs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}

	for i := range paragraphs {
		if err := render.Paragraph(&paragraphs[i]); err != nil {
			return nil, err
		}
	}
	return paragraphs, nil
}

// Update replaces the content and type of a paragraph
func (r *paragraphRepo) Update(ctx context.Context, p *models.Paragraph) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE paragraphs SET content = $1, paragraph_type = $2 WHERE id = $3`,
		p.Content, p.Type, p.ID,
	)
	if err != nil {
		return storeErr("update paragraph", err)
	}
	return checkAffected("update paragraph", res)
}

// Delete removes a paragraph by id
func (r *paragraphRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM paragraphs WHERE id = $1`, id); err != nil {
		return storeErr("delete paragraph", err)
	}
	return nil
}
