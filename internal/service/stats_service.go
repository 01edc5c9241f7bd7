package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/rs/zerolog"
)

// statsService is the concrete implementation of StatsService
type statsService struct {
	repo     repository.StatsRepository
	contacts repository.ContactRepository
	cfg      config.StatsConfig
	now      func() time.Time
	log      zerolog.Logger

	// articleMu serializes the read-modify-write of the article view map
	articleMu sync.Mutex
}

func newStatsService(repo repository.StatsRepository, contacts repository.ContactRepository, cfg config.StatsConfig, now func() time.Time, log zerolog.Logger) *statsService {
	return &statsService{
		repo:     repo,
		contacts: contacts,
		cfg:      cfg,
		now:      now,
		log:      log.With().Str("service", "stats").Logger(),
	}
}

func (s *statsService) today() int64 {
	return models.DayKey(s.now())
}

// FindOrCreateToday returns the stats row of the current day
func (s *statsService) FindOrCreateToday(ctx context.Context) (*models.Stats, error) {
	return s.repo.FindOrCreate(ctx, s.today())
}

// RecordPageView increments the counter of one page for today
func (s *statsService) RecordPageView(ctx context.Context, page models.Page) error {
	if !models.ValidPages[page] {
		return fmt.Errorf("%w: unknown page %q", models.ErrValidation, page)
	}

	day := s.today()
	if _, err := s.repo.FindOrCreate(ctx, day); err != nil {
		return err
	}
	return s.repo.IncrementPageView(ctx, day, page)
}

// RecordArticleView increments the view count of one article for today
func (s *statsService) RecordArticleView(ctx context.Context, articleID int64) error {
	s.articleMu.Lock()
	defer s.articleMu.Unlock()

	day := s.today()
	stats, err := s.repo.FindOrCreate(ctx, day)
	if err != nil {
		return err
	}
	if stats.ArticleViews == nil {
		stats.ArticleViews = models.ArticleViews{}
	}
	stats.ArticleViews.Add(articleID)
	return s.repo.UpdateArticleViews(ctx, day, stats.ArticleViews)
}

// LastDays returns the n most recent days, newest first
func (s *statsService) LastDays(ctx context.Context, n int) ([]*models.Stats, error) {
	return s.repo.LastDays(ctx, min(n, MaxStatsDays))
}

// Upper bounds of the statistics view
const (
	MaxStatsDays     = 366
	MaxStatsMessages = 100
)

// Overview builds the admin statistics view. Non-positive arguments fall
// back to the configured defaults, larger ones are clamped.
func (s *statsService) Overview(ctx context.Context, identity models.Identity, days, top int) (*models.StatsOverview, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = s.cfg.Days
	}
	if top <= 0 {
		top = s.cfg.TopMessage
	}
	days = min(days, MaxStatsDays)
	top = min(top, MaxStatsMessages)

	stats, err := s.repo.LastDays(ctx, days)
	if err != nil {
		return nil, err
	}
	count, err := s.contacts.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.contacts.FindRecent(ctx, top, 0)
	if err != nil {
		return nil, err
	}

	return &models.StatsOverview{
		Days:         stats,
		MessageCount: count,
		Recent:       recent,
	}, nil
}
