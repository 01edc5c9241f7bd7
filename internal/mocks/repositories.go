package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
)

// MockArticleRepository is a map-backed implementation of ArticleRepository
type MockArticleRepository struct {
	Articles    map[int64]*models.Article
	NextID      int64
	Err         error
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		NextID:   1,
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.CreateCalls++
	if m.Err != nil {
		return m.Err
	}
	article.ID = m.NextID
	m.NextID++
	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (m *MockArticleRepository) FindByAlias(ctx context.Context, alias string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Articles {
		if alias != "" && a.Alias == alias {
			out := *a
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MockArticleRepository) sorted() []*models.Article {
	list := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		out := *a
		out.Paragraphs = nil
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt != list[j].CreatedAt {
			return list[i].CreatedAt > list[j].CreatedAt
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (m *MockArticleRepository) FindAll(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(), nil
}

func (m *MockArticleRepository) FindPaginated(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	matched := make([]*models.Article, 0)
	for _, a := range m.sorted() {
		if !strings.Contains(a.Tags, q.Tag) {
			continue
		}
		if q.PublishedOnly && !a.Published {
			continue
		}
		matched = append(matched, a)
	}
	if q.Offset >= len(matched) {
		return []*models.Article{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.UpdateCalls++
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Articles[article.ID]; !ok {
		return models.ErrNotFound
	}
	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.Err != nil {
		return m.Err
	}
	delete(m.Articles, id)
	return nil
}

// MockParagraphRepository is a map-backed implementation of ParagraphRepository.
// Reads mark markdown paragraphs as rendered with a fixed prefix.
type MockParagraphRepository struct {
	Paragraphs  map[int64]*models.Paragraph
	NextID      int64
	Err         error
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// Verify interface compliance
var _ repository.ParagraphRepository = (*MockParagraphRepository)(nil)

func NewMockParagraphRepository() *MockParagraphRepository {
	return &MockParagraphRepository{
		Paragraphs: make(map[int64]*models.Paragraph),
		NextID:     1,
	}
}

func rendered(p *models.Paragraph) models.Paragraph {
	out := *p
	out.Rendered = nil
	if out.Type == models.ParagraphTypeMarkdown {
		html := "rendered:" + out.Content
		out.Rendered = &html
	}
	return out
}

func (m *MockParagraphRepository) Create(ctx context.Context, p *models.Paragraph) error {
	m.CreateCalls++
	if m.Err != nil {
		return m.Err
	}
	p.ID = m.NextID
	m.NextID++
	stored := *p
	m.Paragraphs[p.ID] = &stored
	return nil
}

func (m *MockParagraphRepository) FindByID(ctx context.Context, id int64) (*models.Paragraph, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Paragraphs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := rendered(p)
	return &out, nil
}

func (m *MockParagraphRepository) FindAll(ctx context.Context) ([]*models.Paragraph, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	list := make([]*models.Paragraph, 0, len(m.Paragraphs))
	for _, p := range m.Paragraphs {
		out := rendered(p)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *MockParagraphRepository) FindByArticleID(ctx context.Context, articleID int64) ([]models.Paragraph, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	list := make([]models.Paragraph, 0)
	for _, p := range m.Paragraphs {
		if p.ArticleID == articleID {
			list = append(list, rendered(p))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MockParagraphRepository) Update(ctx context.Context, p *models.Paragraph) error {
	m.UpdateCalls++
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Paragraphs[p.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Content = p.Content
	stored.Type = p.Type
	return nil
}

func (m *MockParagraphRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.Err != nil {
		return m.Err
	}
	delete(m.Paragraphs, id)
	return nil
}

// MockStatsRepository is a map-backed implementation of StatsRepository.
// It is safe for concurrent use.
type MockStatsRepository struct {
	mu        sync.Mutex
	Days      map[int64]*models.Stats
	Err       error
	LastDaysN int // Argument of the latest LastDays call
}

// Verify interface compliance
var _ repository.StatsRepository = (*MockStatsRepository)(nil)

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{Days: make(map[int64]*models.Stats)}
}

func copyStats(s *models.Stats) *models.Stats {
	out := *s
	out.ArticleViews = models.ArticleViews{}
	for k, v := range s.ArticleViews {
		out.ArticleViews[k] = v
	}
	return &out
}

func (m *MockStatsRepository) FindOrCreate(ctx context.Context, day int64) (*models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Days[day]
	if !ok {
		s = &models.Stats{Date: day, ArticleViews: models.ArticleViews{}}
		m.Days[day] = s
	}
	return copyStats(s), nil
}

func (m *MockStatsRepository) IncrementPageView(ctx context.Context, day int64, page models.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	s, ok := m.Days[day]
	if !ok {
		return models.ErrNotFound
	}
	switch page {
	case models.PageHome:
		s.HomeViews++
	case models.PageAbout:
		s.AboutViews++
	case models.PageDonate:
		s.DonateViews++
	default:
		return models.ErrValidation
	}
	return nil
}

func (m *MockStatsRepository) UpdateArticleViews(ctx context.Context, day int64, views models.ArticleViews) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	s, ok := m.Days[day]
	if !ok {
		return models.ErrNotFound
	}
	s.ArticleViews = models.ArticleViews{}
	for k, v := range views {
		s.ArticleViews[k] = v
	}
	return nil
}

func (m *MockStatsRepository) LastDays(ctx context.Context, n int) ([]*models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastDaysN = n
	if m.Err != nil {
		return nil, m.Err
	}
	list := make([]*models.Stats, 0, len(m.Days))
	for _, s := range m.Days {
		list = append(list, copyStats(s))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date > list[j].Date })
	if n < len(list) {
		list = list[:n]
	}
	return list, nil
}

// MockContactRepository is a map-backed implementation of ContactRepository
type MockContactRepository struct {
	Contacts    map[int64]*models.ContactRequest
	NextID      int64
	Err         error
	DeleteCalls int
	RecentLimit int // Limit of the latest FindRecent call
}

// Verify interface compliance
var _ repository.ContactRepository = (*MockContactRepository)(nil)

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		Contacts: make(map[int64]*models.ContactRequest),
		NextID:   1,
	}
}

func (m *MockContactRepository) Create(ctx context.Context, c *models.ContactRequest) error {
	if m.Err != nil {
		return m.Err
	}
	c.ID = m.NextID
	m.NextID++
	stored := *c
	m.Contacts[c.ID] = &stored
	return nil
}

func (m *MockContactRepository) FindByID(ctx context.Context, id int64) (*models.ContactRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Contacts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (m *MockContactRepository) FindAll(ctx context.Context) ([]*models.ContactRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	list := make([]*models.ContactRequest, 0, len(m.Contacts))
	for _, c := range m.Contacts {
		out := *c
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Created != list[j].Created {
			return list[i].Created > list[j].Created
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (m *MockContactRepository) FindRecent(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error) {
	m.RecentLimit = limit
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []*models.ContactRequest{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockContactRepository) CountAll(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Contacts), nil
}

func (m *MockContactRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.Err != nil {
		return m.Err
	}
	delete(m.Contacts, id)
	return nil
}

// MockRepositories bundles a fresh set of mocks with the aggregate that serves them
type MockRepositories struct {
	Articles   *MockArticleRepository
	Paragraphs *MockParagraphRepository
	Stats      *MockStatsRepository
	Contacts   *MockContactRepository
}

func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		Articles:   NewMockArticleRepository(),
		Paragraphs: NewMockParagraphRepository(),
		Stats:      NewMockStatsRepository(),
		Contacts:   NewMockContactRepository(),
	}
}

// Repositories returns the aggregate consumed by the services
func (m *MockRepositories) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Article:   m.Articles,
		Paragraph: m.Paragraphs,
		Stats:     m.Stats,
		Contact:   m.Contacts,
	}
}
