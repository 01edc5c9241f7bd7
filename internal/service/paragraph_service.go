package service

import (
	"context"
	"strings"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/rs/zerolog"
)

// paragraphService is the concrete implementation of ParagraphService.
// Every operation is restricted to admins.
type paragraphService struct {
	repo repository.ParagraphRepository
	log  zerolog.Logger
}

func newParagraphService(repo repository.ParagraphRepository, log zerolog.Logger) *paragraphService {
	return &paragraphService{
		repo: repo,
		log:  log.With().Str("service", "paragraph").Logger(),
	}
}

// parseType defaults an empty type to markdown
func parseType(s string) (models.ParagraphType, error) {
	if strings.TrimSpace(s) == "" {
		return models.ParagraphTypeMarkdown, nil
	}
	return models.ParseParagraphType(s)
}

// Create stores a paragraph for the given article
func (s *paragraphService) Create(ctx context.Context, identity models.Identity, in *models.ParagraphInput) (*models.Paragraph, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if err := validation.Paragraph(in, true).Err(); err != nil {
		return nil, err
	}
	kind, err := parseType(in.Type)
	if err != nil {
		return nil, err
	}

	p := &models.Paragraph{
		ArticleID: in.ArticleID,
		Type:      kind,
		Position:  in.Position,
		Content:   in.Content,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("paragraph_id", p.ID).
		Int64("article_id", p.ArticleID).
		Str("type", string(p.Type)).
		Msg("Paragraph created")
	return p, nil
}

// Get returns the raw paragraph without its rendered form
func (s *paragraphService) Get(ctx context.Context, identity models.Identity, id int64) (*models.Paragraph, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Rendered = nil
	return p, nil
}

// GetRendered returns the paragraph with markdown rendering applied
func (s *paragraphService) GetRendered(ctx context.Context, identity models.Identity, id int64) (*models.Paragraph, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update replaces the content and type of a paragraph
func (s *paragraphService) Update(ctx context.Context, identity models.Identity, id int64, in *models.ParagraphInput) (*models.Paragraph, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if err := validation.Paragraph(in, false).Err(); err != nil {
		return nil, err
	}
	kind, err := parseType(in.Type)
	if err != nil {
		return nil, err
	}

	p := &models.Paragraph{ID: id, Type: kind, Content: in.Content}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().Int64("paragraph_id", id).Msg("Paragraph updated")
	return s.repo.FindByID(ctx, id)
}

// Delete removes a paragraph
func (s *paragraphService) Delete(ctx context.Context, identity models.Identity, id int64) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("paragraph_id", id).Msg("Paragraph deleted")
	return nil
}
