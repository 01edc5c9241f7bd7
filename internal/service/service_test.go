package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/mocks"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/session"
	"github.com/rs/zerolog"
)

var (
	admin     = models.Identity{State: models.UserStateAdmin}
	user      = models.Identity{State: models.UserStateUser}
	anonymous = models.Anonymous()
)

type fixture struct {
	repos    *mocks.MockRepositories
	sessions *session.Store
	services *service.Services
	cfg      *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		Admin: config.AdminConfig{User: "admin", Password: "secret"},
		Media: config.MediaConfig{Root: filepath.Join(t.TempDir(), "media"), MaxUploadSize: 1024},
		Stats: config.StatsConfig{Days: 3, TopMessage: 10},
	}
	repos := mocks.NewMockRepositories()
	sessions := session.NewStore()
	return &fixture{
		repos:    repos,
		sessions: sessions,
		services: service.NewServices(repos.Repositories(), sessions, cfg, zerolog.Nop()),
		cfg:      cfg,
	}
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func seedArticle(t *testing.T, f *fixture, title string, published bool, alias string) *models.Article {
	t.Helper()
	ctx := context.Background()
	a, err := f.services.Article.Create(ctx, admin, title)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	a, err = f.services.Article.Update(ctx, admin, key(a.ID), &models.ArticleInput{
		Title:     title,
		Alias:     alias,
		Published: published,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	return a
}

func TestAdminOnlyOperations_RejectBeforeRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing := seedArticle(t, f, "Existing", true, "")
	f.repos.Paragraphs.Paragraphs[1] = &models.Paragraph{ID: 1, ArticleID: existing.ID, Type: models.ParagraphTypeMarkdown}
	f.repos.Contacts.Contacts[1] = &models.ContactRequest{ID: 1, Email: "a@b.c"}

	createCalls := f.repos.Articles.CreateCalls
	updateCalls := f.repos.Articles.UpdateCalls

	ops := map[string]func(models.Identity) error{
		"article create": func(id models.Identity) error {
			_, err := f.services.Article.Create(ctx, id, "x")
			return err
		},
		"article update": func(id models.Identity) error {
			_, err := f.services.Article.Update(ctx, id, key(existing.ID), &models.ArticleInput{Title: "x"})
			return err
		},
		"article delete": func(id models.Identity) error {
			return f.services.Article.Delete(ctx, id, key(existing.ID))
		},
		"paragraph create": func(id models.Identity) error {
			_, err := f.services.Paragraph.Create(ctx, id, &models.ParagraphInput{ArticleID: existing.ID})
			return err
		},
		"paragraph get": func(id models.Identity) error {
			_, err := f.services.Paragraph.Get(ctx, id, 1)
			return err
		},
		"paragraph get rendered": func(id models.Identity) error {
			_, err := f.services.Paragraph.GetRendered(ctx, id, 1)
			return err
		},
		"paragraph update": func(id models.Identity) error {
			_, err := f.services.Paragraph.Update(ctx, id, 1, &models.ParagraphInput{Content: "x"})
			return err
		},
		"paragraph delete": func(id models.Identity) error {
			return f.services.Paragraph.Delete(ctx, id, 1)
		},
		"stats overview": func(id models.Identity) error {
			_, err := f.services.Stats.Overview(ctx, id, 0, 0)
			return err
		},
		"contact get": func(id models.Identity) error {
			_, err := f.services.Contact.Get(ctx, id, 1)
			return err
		},
		"contact list": func(id models.Identity) error {
			_, err := f.services.Contact.List(ctx, id)
			return err
		},
		"contact delete": func(id models.Identity) error {
			return f.services.Contact.Delete(ctx, id, 1)
		},
		"media list": func(id models.Identity) error {
			_, err := f.services.Media.List(ctx, id)
			return err
		},
		"media upload": func(id models.Identity) error {
			_, err := f.services.Media.Upload(ctx, id, existing.ID, "a.txt", strings.NewReader("x"))
			return err
		},
		"logout": func(id models.Identity) error {
			return f.services.Auth.Logout(id)
		},
	}

	for name, op := range ops {
		for _, id := range []models.Identity{anonymous, user} {
			t.Run(name+"/"+string(id.State), func(t *testing.T) {
				if err := op(id); !errors.Is(err, models.ErrUnauthorized) {
					t.Errorf("Expected ErrUnauthorized, got %v", err)
				}
			})
		}
	}

	if f.repos.Articles.CreateCalls != createCalls || f.repos.Articles.UpdateCalls != updateCalls || f.repos.Articles.DeleteCalls != 0 {
		t.Error("Article repository must not be touched by rejected calls")
	}
	if f.repos.Paragraphs.CreateCalls != 0 || f.repos.Paragraphs.UpdateCalls != 0 || f.repos.Paragraphs.DeleteCalls != 0 {
		t.Error("Paragraph repository must not be touched by rejected calls")
	}
	if f.repos.Contacts.DeleteCalls != 0 {
		t.Error("Contact repository must not be touched by rejected calls")
	}
	if _, err := os.Stat(f.cfg.Media.Root); !os.IsNotExist(err) {
		t.Error("Rejected upload must not create the media root")
	}

	// The article survives the rejected delete
	if _, err := f.services.Article.Get(ctx, admin, "1"); err != nil {
		t.Errorf("Admin fetch after rejected delete failed: %v", err)
	}
}

func TestArticleService_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	published := seedArticle(t, f, "Published", true, "pub")
	draft := seedArticle(t, f, "Draft", false, "draft")

	t.Run("list hides drafts from anonymous", func(t *testing.T) {
		list, err := f.services.Article.List(ctx, anonymous)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != published.ID {
			t.Errorf("Expected only the published article, got %d", len(list))
		}
	})

	t.Run("list shows everything to admin", func(t *testing.T) {
		list, err := f.services.Article.List(ctx, admin)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("Expected 2 articles, got %d", len(list))
		}
	})

	t.Run("page hides drafts from users", func(t *testing.T) {
		list, err := f.services.Article.ListPage(ctx, user, models.ArticleQuery{Limit: 10})
		if err != nil {
			t.Fatalf("ListPage failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != published.ID {
			t.Errorf("Expected only the published article, got %d", len(list))
		}
	})

	t.Run("page cannot be widened by the caller", func(t *testing.T) {
		list, err := f.services.Article.ListPage(ctx, anonymous, models.ArticleQuery{Limit: 10, PublishedOnly: false})
		if err != nil {
			t.Fatalf("ListPage failed: %v", err)
		}
		for _, a := range list {
			if !a.Published {
				t.Errorf("Anonymous caller received draft %d", a.ID)
			}
		}
	})

	t.Run("draft by id and alias is not found for anonymous", func(t *testing.T) {
		for _, key := range []string{"2", "draft"} {
			if _, err := f.services.Article.Get(ctx, anonymous, key); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("Get(%q): expected ErrNotFound, got %v", key, err)
			}
		}
	})

	t.Run("draft is visible to admin", func(t *testing.T) {
		a, err := f.services.Article.Get(ctx, admin, "draft")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if a.ID != draft.ID {
			t.Errorf("Expected draft %d, got %d", draft.ID, a.ID)
		}
	})

	t.Run("published by alias for anonymous", func(t *testing.T) {
		a, err := f.services.Article.Get(ctx, anonymous, "pub")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if a.ID != published.ID {
			t.Errorf("Expected %d, got %d", published.ID, a.ID)
		}
	})

	t.Run("invalid page bounds", func(t *testing.T) {
		for _, q := range []models.ArticleQuery{{Offset: -1, Limit: 1}, {Limit: 1000}} {
			if _, err := f.services.Article.ListPage(ctx, admin, q); !errors.Is(err, models.ErrValidation) {
				t.Errorf("Expected ErrValidation for %+v, got %v", q, err)
			}
		}
	})
}

func TestArticleService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.services.Article.Create(ctx, admin, "   "); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for empty title, got %v", err)
	}

	a, err := f.services.Article.Create(ctx, admin, "Hello")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.Published || a.CreatedAt == 0 || a.CreatedAt != a.UpdatedAt {
		t.Errorf("Unexpected new article: %+v", a)
	}

	updated, err := f.services.Article.Update(ctx, admin, key(a.ID), &models.ArticleInput{
		Title: "Hello again", Teaser: "t", Cover: "c.png", Alias: " hello ", Tags: "go", Published: true,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Alias != "hello" || updated.Title != "Hello again" || !updated.Published {
		t.Errorf("Unexpected updated article: %+v", updated)
	}
	if updated.UpdatedAt != a.UpdatedAt || updated.CreatedAt != a.CreatedAt {
		t.Errorf("Timestamps change only on explicit request")
	}

	ts := int64(42)
	updated, err = f.services.Article.Update(ctx, admin, key(a.ID), &models.ArticleInput{Title: "x", UpdatedAt: &ts})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.UpdatedAt != 42 || updated.Alias != "" || updated.Published {
		t.Errorf("Expected full replacement with updated_at, got %+v", updated)
	}

	if _, err := f.services.Article.Update(ctx, admin, key(a.ID), &models.ArticleInput{Alias: "123"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for numeric alias, got %v", err)
	}
	if _, err := f.services.Article.Update(ctx, admin, "999", &models.ArticleInput{Title: "x"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	byAlias := seedArticle(t, f, "By alias", true, "by-alias")
	if err := f.services.Article.Delete(ctx, admin, "missing-alias"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown alias, got %v", err)
	}
	if err := f.services.Article.Delete(ctx, admin, "by-alias"); err != nil {
		t.Fatalf("Delete by alias failed: %v", err)
	}
	if _, ok := f.repos.Articles.Articles[byAlias.ID]; ok {
		t.Error("Article should be deleted")
	}
}

func TestParagraphService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.services.Paragraph.Create(ctx, admin, &models.ParagraphInput{Content: "x"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation without article id, got %v", err)
	}
	if _, err := f.services.Paragraph.Create(ctx, admin, &models.ParagraphInput{ArticleID: 1, Type: "rst"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown type, got %v", err)
	}

	p, err := f.services.Paragraph.Create(ctx, admin, &models.ParagraphInput{ArticleID: 1, Type: "Markdown", Position: 3, Content: "# Hi"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Type != models.ParagraphTypeMarkdown || p.Position != 3 {
		t.Errorf("Unexpected paragraph: %+v", p)
	}

	raw, err := f.services.Paragraph.Get(ctx, admin, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw.Rendered != nil || raw.Content != "# Hi" {
		t.Errorf("Raw fetch must not carry rendered output: %+v", raw)
	}

	rendered, err := f.services.Paragraph.GetRendered(ctx, admin, p.ID)
	if err != nil {
		t.Fatalf("GetRendered failed: %v", err)
	}
	if rendered.Rendered == nil {
		t.Error("Expected rendered output")
	}

	updated, err := f.services.Paragraph.Update(ctx, admin, p.ID, &models.ParagraphInput{Type: "html", Content: "<p>x</p>", Position: 99})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Type != models.ParagraphTypeHTML || updated.Content != "<p>x</p>" || updated.Position != 3 {
		t.Errorf("Only content and type may change: %+v", updated)
	}

	if err := f.services.Paragraph.Delete(ctx, admin, p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := f.services.Paragraph.Get(ctx, admin, p.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_LoginLogout(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		user     string
		password string
	}{
		{"wrong user", "root", "secret"},
		{"wrong password", "admin", "nope"},
		{"both empty", "", ""},
		{"prefix password", "admin", "secre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.services.Auth.Login(tt.user, tt.password); !errors.Is(err, models.ErrUnauthorized) {
				t.Errorf("Expected ErrUnauthorized, got %v", err)
			}
		})
	}
	if f.sessions.Len() != 0 {
		t.Fatalf("Failed logins must not create sessions, got %d", f.sessions.Len())
	}

	id, err := f.services.Auth.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	state, ok := f.sessions.Lookup(id)
	if !ok || state != models.UserStateAdmin {
		t.Fatalf("Expected admin session, got %v %v", state, ok)
	}

	if err := f.services.Auth.Logout(models.Identity{State: models.UserStateAdmin, SessionID: &id}); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, ok := f.sessions.Lookup(id); ok {
		t.Error("Session should be invalidated")
	}
}

func TestAuthService_EmptyCredentialsNeverMatch(t *testing.T) {
	repos := mocks.NewMockRepositories()
	sessions := session.NewStore()
	cfg := &config.Config{Stats: config.StatsConfig{Days: 3, TopMessage: 10}}
	services := service.NewServices(repos.Repositories(), sessions, cfg, zerolog.Nop())

	if _, err := services.Auth.Login("", ""); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if sessions.Len() != 0 {
		t.Error("No session may be created")
	}
}

func TestStatsService_Recording(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	today, err := f.services.Stats.FindOrCreateToday(ctx)
	if err != nil {
		t.Fatalf("FindOrCreateToday failed: %v", err)
	}
	again, err := f.services.Stats.FindOrCreateToday(ctx)
	if err != nil {
		t.Fatalf("FindOrCreateToday failed: %v", err)
	}
	if today.Date != again.Date || len(f.repos.Stats.Days) != 1 {
		t.Errorf("Expected a single row per day, got %d", len(f.repos.Stats.Days))
	}

	for _, page := range []models.Page{models.PageHome, models.PageHome, models.PageAbout} {
		if err := f.services.Stats.RecordPageView(ctx, page); err != nil {
			t.Fatalf("RecordPageView failed: %v", err)
		}
	}
	if err := f.services.Stats.RecordPageView(ctx, models.Page("admin")); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := f.services.Stats.RecordArticleView(ctx, int64(i%2+1)); err != nil {
				t.Errorf("RecordArticleView failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	days, err := f.services.Stats.LastDays(ctx, 3)
	if err != nil {
		t.Fatalf("LastDays failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(days))
	}
	got := days[0]
	if got.HomeViews != 2 || got.AboutViews != 1 || got.DonateViews != 0 {
		t.Errorf("Unexpected page counters: %+v", got)
	}
	if got.ArticleViews[1] != 25 || got.ArticleViews[2] != 25 {
		t.Errorf("Concurrent article views lost updates: %v", got.ArticleViews)
	}
}

func TestStatsService_Overview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := models.DayKey(time.Now())
	for i := int64(0); i < 5; i++ {
		f.repos.Stats.Days[base-i*86400] = &models.Stats{Date: base - i*86400, HomeViews: i}
	}
	for i := 0; i < 12; i++ {
		if _, err := f.services.Contact.Submit(ctx, &models.ContactInput{Email: "reader@example.com", Message: "hi"}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	overview, err := f.services.Stats.Overview(ctx, admin, 0, 0)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(overview.Days) != 3 || overview.Days[0].Date != base {
		t.Errorf("Expected 3 newest days, got %d", len(overview.Days))
	}
	if overview.MessageCount != 12 || len(overview.Recent) != 10 {
		t.Errorf("Expected 12 messages with 10 recent, got %d/%d", overview.MessageCount, len(overview.Recent))
	}

	overview, err = f.services.Stats.Overview(ctx, admin, 5, 2)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(overview.Days) != 5 || len(overview.Recent) != 2 {
		t.Errorf("Explicit arguments not honored: %d days, %d messages", len(overview.Days), len(overview.Recent))
	}

	overview, err = f.services.Stats.Overview(ctx, admin, 1<<40, 1<<40)
	if err != nil {
		t.Fatalf("Overview with huge arguments failed: %v", err)
	}
	if f.repos.Stats.LastDaysN != service.MaxStatsDays {
		t.Errorf("Expected days clamped to %d, got %d", service.MaxStatsDays, f.repos.Stats.LastDaysN)
	}
	if f.repos.Contacts.RecentLimit != service.MaxStatsMessages {
		t.Errorf("Expected messages clamped to %d, got %d", service.MaxStatsMessages, f.repos.Contacts.RecentLimit)
	}
	if len(overview.Days) != 5 || len(overview.Recent) != 12 {
		t.Errorf("Expected every stored row, got %d days, %d messages", len(overview.Days), len(overview.Recent))
	}

	if _, err := f.services.Stats.LastDays(ctx, 1<<50); err != nil {
		t.Fatalf("LastDays failed: %v", err)
	}
	if f.repos.Stats.LastDaysN != service.MaxStatsDays {
		t.Errorf("Expected LastDays clamped to %d, got %d", service.MaxStatsDays, f.repos.Stats.LastDaysN)
	}
}

func TestContactService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invalid := []*models.ContactInput{
		{Email: "", Message: "hi"},
		{Email: "not-an-email", Message: "hi"},
		{Email: "reader@example.com", Message: "   "},
	}
	for _, in := range invalid {
		if _, err := f.services.Contact.Submit(ctx, in); !errors.Is(err, models.ErrValidation) {
			t.Errorf("Submit(%+v): expected ErrValidation, got %v", in, err)
		}
	}

	c, err := f.services.Contact.Submit(ctx, &models.ContactInput{Email: " reader@example.com ", Subject: "Hi", Message: "Hello"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if c.ID == 0 || c.Email != "reader@example.com" || c.Created == 0 {
		t.Errorf("Unexpected contact: %+v", c)
	}

	got, err := f.services.Contact.Get(ctx, admin, c.ID)
	if err != nil || got.Subject != "Hi" {
		t.Errorf("Get failed: %v %+v", err, got)
	}
	list, err := f.services.Contact.List(ctx, admin)
	if err != nil || len(list) != 1 {
		t.Errorf("List failed: %v %d", err, len(list))
	}
	if err := f.services.Contact.Delete(ctx, admin, c.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := f.services.Contact.Get(ctx, admin, c.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMediaService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	files, err := f.services.Media.List(ctx, admin)
	if err != nil {
		t.Fatalf("List on missing root failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %v", files)
	}

	url, err := f.services.Media.Upload(ctx, admin, 7, "../../escape/cover.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url != "/static/media/7/cover.png" {
		t.Errorf("Unexpected url %q", url)
	}
	data, err := os.ReadFile(filepath.Join(f.cfg.Media.Root, "7", "cover.png"))
	if err != nil || string(data) != "png" {
		t.Errorf("File not written inside the article dir: %v", err)
	}

	if _, err := f.services.Media.Upload(ctx, admin, 7, "notes.txt", strings.NewReader("n")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	files, err = f.services.Media.List(ctx, admin)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"/static/media/7/cover.png", "/static/media/7/notes.txt"}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, files)
	}

	invalid := []struct {
		name string
		id   int64
		file string
	}{
		{"empty name", 7, ""},
		{"dot dot", 7, ".."},
		{"bad article", 0, "a.txt"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.services.Media.Upload(ctx, admin, tt.id, tt.file, strings.NewReader("x")); !errors.Is(err, models.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}

	big := strings.NewReader(strings.Repeat("x", 2048))
	if _, err := f.services.Media.Upload(ctx, admin, 8, "big.bin", big); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for oversized file, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.cfg.Media.Root, "8", "big.bin")); !os.IsNotExist(err) {
		t.Error("Oversized upload must be removed")
	}
	assertNoPartials(t, filepath.Join(f.cfg.Media.Root, "8"))
}

// failingReader yields data once, then fails like a dropped connection
type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("client went away")
	}
	r.done = true
	return copy(p, r.data), nil
}

func assertNoPartials(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".part") {
			t.Errorf("Temporary upload left behind: %s", e.Name())
		}
	}
}

func TestMediaService_FailedUploadKeepsExistingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	target := filepath.Join(f.cfg.Media.Root, "3", "cover.png")

	if _, err := f.services.Media.Upload(ctx, admin, 3, "cover.png", strings.NewReader("original")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	tests := []struct {
		name    string
		reader  io.Reader
		wantErr error
	}{
		{"oversized replacement", strings.NewReader(strings.Repeat("x", 2048)), models.ErrValidation},
		{"interrupted replacement", &failingReader{data: "half"}, models.ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.services.Media.Upload(ctx, admin, 3, "cover.png", tt.reader); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			data, err := os.ReadFile(target)
			if err != nil {
				t.Fatalf("Existing file was removed: %v", err)
			}
			if string(data) != "original" {
				t.Errorf("Existing file was modified: %q", data)
			}
			assertNoPartials(t, filepath.Dir(target))
		})
	}

	if _, err := f.services.Media.Upload(ctx, admin, 4, "partial.bin", &failingReader{data: "half"}); !errors.Is(err, models.ErrStore) {
		t.Fatalf("Expected ErrStore, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.cfg.Media.Root, "4", "partial.bin")); !os.IsNotExist(err) {
		t.Error("Interrupted upload must not leave a file")
	}
	assertNoPartials(t, filepath.Join(f.cfg.Media.Root, "4"))

	files, err := f.services.Media.List(ctx, admin)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 1 || files[0] != "/static/media/3/cover.png" {
		t.Errorf("Unexpected listing %v", files)
	}
}
