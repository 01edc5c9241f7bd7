package service

import (
	"context"
	"io"
	"time"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/session"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	Create(ctx context.Context, identity models.Identity, title string) (*models.Article, error)
	Get(ctx context.Context, identity models.Identity, key string) (*models.Article, error)
	List(ctx context.Context, identity models.Identity) ([]*models.Article, error)
	ListPage(ctx context.Context, identity models.Identity, q models.ArticleQuery) ([]*models.Article, error)
	Update(ctx context.Context, identity models.Identity, key string, in *models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, identity models.Identity, key string) error
}

// ParagraphService defines the interface for paragraph operations
type ParagraphService interface {
	Create(ctx context.Context, identity models.Identity, in *models.ParagraphInput) (*models.Paragraph, error)
	Get(ctx context.Context, identity models.Identity, id int64) (*models.Paragraph, error)
	GetRendered(ctx context.Context, identity models.Identity, id int64) (*models.Paragraph, error)
	Update(ctx context.Context, identity models.Identity, id int64, in *models.ParagraphInput) (*models.Paragraph, error)
	Delete(ctx context.Context, identity models.Identity, id int64) error
}

// AuthService defines the interface for login and logout
type AuthService interface {
	Login(user, password string) (models.SessionID, error)
	Logout(identity models.Identity) error
}

// StatsService defines the interface for daily view statistics
type StatsService interface {
	FindOrCreateToday(ctx context.Context) (*models.Stats, error)
	RecordPageView(ctx context.Context, page models.Page) error
	RecordArticleView(ctx context.Context, articleID int64) error
	LastDays(ctx context.Context, n int) ([]*models.Stats, error)
	Overview(ctx context.Context, identity models.Identity, days, top int) (*models.StatsOverview, error)
}

// ContactService defines the interface for contact requests
type ContactService interface {
	Submit(ctx context.Context, in *models.ContactInput) (*models.ContactRequest, error)
	Get(ctx context.Context, identity models.Identity, id int64) (*models.ContactRequest, error)
	List(ctx context.Context, identity models.Identity) ([]*models.ContactRequest, error)
	Delete(ctx context.Context, identity models.Identity, id int64) error
}

// MediaService defines the interface for uploaded media files
type MediaService interface {
	List(ctx context.Context, identity models.Identity) ([]string, error)
	Upload(ctx context.Context, identity models.Identity, articleID int64, filename string, r io.Reader) (string, error)
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	Paragraph ParagraphService
	Auth      AuthService
	Stats     StatsService
	Contact   ContactService
	Media     MediaService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, sessions *session.Store, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Article:   newArticleService(repos.Article, time.Now, log),
		Paragraph: newParagraphService(repos.Paragraph, log),
		Auth:      newAuthService(sessions, cfg.Admin, log),
		Stats:     newStatsService(repos.Stats, repos.Contact, cfg.Stats, time.Now, log),
		Contact:   newContactService(repos.Contact, time.Now, log),
		Media:     newMediaService(cfg.Media, log),
	}
}
