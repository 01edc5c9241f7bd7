package service

import (
	"context"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/rs/zerolog"
)

// contactService is the concrete implementation of ContactService
type contactService struct {
	repo repository.ContactRepository
	now  func() time.Time
	log  zerolog.Logger
}

func newContactService(repo repository.ContactRepository, now func() time.Time, log zerolog.Logger) *contactService {
	return &contactService{
		repo: repo,
		now:  now,
		log:  log.With().Str("service", "contact").Logger(),
	}
}

// Submit stores a message from the public contact form
func (s *contactService) Submit(ctx context.Context, in *models.ContactInput) (*models.ContactRequest, error) {
	if err := validation.Contact(in).Err(); err != nil {
		return nil, err
	}

	c := &models.ContactRequest{
		Created: s.now().Unix(),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Int64("contact_id", c.ID).Msg("Contact request received")
	return c, nil
}

// Get returns one contact request
func (s *contactService) Get(ctx context.Context, identity models.Identity, id int64) (*models.ContactRequest, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// List returns every contact request, newest first
func (s *contactService) List(ctx context.Context, identity models.Identity) ([]*models.ContactRequest, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// Delete removes a contact request
func (s *contactService) Delete(ctx context.Context, identity models.Identity, id int64) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("contact_id", id).Msg("Contact request deleted")
	return nil
}
