package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/mocks"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/render"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/session"
	"github.com/blog-cms-api/internal/validation"
	"github.com/rs/zerolog"
)

// BenchmarkRenderMarkdown benchmarks the per-read markdown conversion
func BenchmarkRenderMarkdown(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\nSome *emphasis*, a [link](https://example.com) and `code`.\n\n- one\n- two\n\n", i)
	}
	content := sb.String()

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(content)))

	for i := 0; i < b.N; i++ {
		if _, _, err := render.Render(content, models.ParagraphTypeMarkdown); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkResolveIdentity benchmarks cookie parsing and session lookup
func BenchmarkResolveIdentity(b *testing.B) {
	sessions := session.NewStore()
	for i := 0; i < 1000; i++ {
		if _, err := sessions.Create(models.UserStateAdmin); err != nil {
			b.Fatal(err)
		}
	}
	id, err := sessions.Create(models.UserStateAdmin)
	if err != nil {
		b.Fatal(err)
	}
	resolver := auth.NewResolver(sessions, auth.CookieName)
	header := "theme=dark; " + auth.CookieName + "=" + id.String() + "; lang=en"

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if !resolver.Resolve(header, true).IsAdmin() {
				b.Fatal("expected admin identity")
			}
		}
	})
}

// BenchmarkValidation benchmarks the contact form checks
func BenchmarkValidation(b *testing.B) {
	in := &models.ContactInput{
		Email:   "reader@example.com",
		Subject: "Hello",
		Message: strings.Repeat("word ", 200),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.Contact(in)
	}
}

// BenchmarkListPage benchmarks a visitor fetching one page of articles
func BenchmarkListPage(b *testing.B) {
	repos := mocks.NewMockRepositories()
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		repos.Articles.Create(ctx, &models.Article{
			Title:     fmt.Sprintf("Article %04d", i),
			Tags:      "go,web",
			CreatedAt: time.Now().Unix(),
			Published: i%2 == 0,
		})
	}
	services := service.NewServices(repos.Repositories(), session.NewStore(), &config.Config{}, zerolog.Nop())
	q := models.ArticleQuery{Tag: "go", Offset: 100, Limit: 20}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := services.Article.ListPage(ctx, models.Anonymous(), q); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(20*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkRecordArticleViewParallel benchmarks concurrent view counting
func BenchmarkRecordArticleViewParallel(b *testing.B) {
	repos := mocks.NewMockRepositories()
	services := service.NewServices(repos.Repositories(), session.NewStore(), &config.Config{}, zerolog.Nop())
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		var id int64
		for pb.Next() {
			id = id%10 + 1
			if err := services.Stats.RecordArticleView(ctx, id); err != nil {
				b.Fatal(err)
			}
		}
	})
}
