package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repo repository.ArticleRepository
	now  func() time.Time
	log  zerolog.Logger
}

func newArticleService(repo repository.ArticleRepository, now func() time.Time, log zerolog.Logger) *articleService {
	return &articleService{
		repo: repo,
		now:  now,
		log:  log.With().Str("service", "article").Logger(),
	}
}

// Create stores a new unpublished article with only its title set
func (s *articleService) Create(ctx context.Context, identity models.Identity, title string) (*models.Article, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	if err := validation.Title(title).Err(); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)

	article := models.NewArticle(title, s.now())
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Int64("article_id", article.ID).Str("title", title).Msg("Article created")
	return article, nil
}

// resolve looks key up as a numeric id first and as an alias otherwise
func (s *articleService) resolve(ctx context.Context, key string) (*models.Article, error) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.FindByAlias(ctx, key)
}

// Get returns one article by id or alias. Unpublished articles are
// reported as not found to non-admins.
func (s *articleService) Get(ctx context.Context, identity models.Identity, key string) (*models.Article, error) {
	article, err := s.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if !article.Published && !identity.IsAdmin() {
		return nil, models.ErrNotFound
	}
	return article, nil
}

// List returns every visible article, newest first
func (s *articleService) List(ctx context.Context, identity models.Identity) ([]*models.Article, error) {
	articles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		return articles, nil
	}

	visible := make([]*models.Article, 0, len(articles))
	for _, a := range articles {
		if a.Published {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// ListPage returns one page of visible articles. Non-admins only ever see
// published articles.
func (s *articleService) ListPage(ctx context.Context, identity models.Identity, q models.ArticleQuery) ([]*models.Article, error) {
	if q.Offset < 0 || q.Limit < 0 || q.Limit > repository.MaxPageSize {
		return nil, fmt.Errorf("%w: offset must be >= 0 and limit within 0..%d", models.ErrValidation, repository.MaxPageSize)
	}
	q.PublishedOnly = !identity.IsAdmin()
	return s.repo.FindPaginated(ctx, q)
}

// Update replaces every mutable field of an article
func (s *articleService) Update(ctx context.Context, identity models.Identity, key string, in *models.ArticleInput) (*models.Article, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	if err := validation.Article(in).Err(); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Alias = strings.TrimSpace(in.Alias)

	article, err := s.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	in.Apply(article)
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Int64("article_id", article.ID).Bool("published", article.Published).Msg("Article updated")
	return article, nil
}

// Delete removes an article by id or alias. Its paragraphs are kept.
func (s *articleService) Delete(ctx context.Context, identity models.Identity, key string) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}

	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		article, err := s.repo.FindByAlias(ctx, key)
		if err != nil {
			return err
		}
		id = article.ID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("article_id", id).Msg("Article deleted")
	return nil
}
