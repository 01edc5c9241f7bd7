package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
)

// MockStatsService is a mock implementation of StatsService that records
// calls and fails every recording when Err is set
type MockStatsService struct {
	mu          sync.Mutex
	Err         error
	PageViews   map[models.Page]int
	ArticleHits map[int64]int
	Overviewed  int
}

// Verify interface compliance
var _ service.StatsService = (*MockStatsService)(nil)

func NewMockStatsService() *MockStatsService {
	return &MockStatsService{
		PageViews:   make(map[models.Page]int),
		ArticleHits: make(map[int64]int),
	}
}

func (m *MockStatsService) FindOrCreateToday(ctx context.Context) (*models.Stats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.Stats{ArticleViews: models.ArticleViews{}}, nil
}

func (m *MockStatsService) RecordPageView(ctx context.Context, page models.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.PageViews[page]++
	return nil
}

func (m *MockStatsService) RecordArticleView(ctx context.Context, articleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.ArticleHits[articleID]++
	return nil
}

func (m *MockStatsService) LastDays(ctx context.Context, n int) ([]*models.Stats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return []*models.Stats{}, nil
}

func (m *MockStatsService) Overview(ctx context.Context, identity models.Identity, days, top int) (*models.StatsOverview, error) {
	if !identity.IsAdmin() {
		return nil, models.ErrUnauthorized
	}
	m.mu.Lock()
	m.Overviewed++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.StatsOverview{Days: []*models.Stats{}, Recent: []*models.ContactRequest{}}, nil
}

// MockHealthChecker is a mock store health probe
type MockHealthChecker struct {
	Err  error
	Pool sql.DBStats
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}

func (m *MockHealthChecker) Stats() sql.DBStats {
	return m.Pool
}
