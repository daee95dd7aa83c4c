package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/markdown"
)

func strPtr(s string) *string { return &s }

func newSiteFixture(t *testing.T) (*fakeBackend, SiteService) {
	t.Helper()
	b := newFakeBackend()
	log := zap.NewNop()
	svc := NewSiteService(SiteDeps{
		Projects:  NewProjectService(b, newFakePublisher(), time.Second, log),
		Blog:      NewBlogService(b),
		Timeline:  NewTimelineService(b),
		Offerings: NewOfferingService(b),
		About:     NewAboutService(b),
		Settings:  NewSettingsService(b),
	}, markdown.NewRenderer(), "http://backend:8000", log)
	return b, svc
}

func TestSiteService_HomePicksLanguage(t *testing.T) {
	b, svc := newSiteFixture(t)
	b.projects = []models.Project{
		{ID: 1, Title: "Proje", TitleEN: strPtr("Project"), Description: "Açıklama", IsPublished: true, ImageURL: strPtr("/uploads/p.png")},
		{ID: 2, Title: "Taslak", IsPublished: false},
	}
	b.about = &models.About{FullName: "Ada", Title: "Geliştirici", TitleEN: "Developer", Bio: "**Merhaba**"}
	b.offerings = []models.Offering{
		{ID: 1, Title: "B", Status: models.OfferingPublished, Order: 2},
		{ID: 2, Title: "A", Status: models.OfferingPublished, Order: 1},
		{ID: 3, Title: "Draft", Status: models.OfferingDraft},
	}

	page := svc.Home(context.Background(), "en")
	assert.Empty(t, page.Degraded)
	require.Len(t, page.Projects, 1)
	assert.Equal(t, "Project", page.Projects[0].Title)
	assert.Equal(t, "Açıklama", page.Projects[0].Description, "missing English falls back to Turkish")
	assert.Equal(t, "http://backend:8000/uploads/p.png", page.Projects[0].ImageURL)
	assert.Equal(t, "Developer", page.About.Title)
	assert.Contains(t, string(page.About.Bio), "<strong>Merhaba</strong>")
	require.Len(t, page.Offerings, 2)
	assert.Equal(t, "A", page.Offerings[0].Title)
	assert.Equal(t, models.DefaultSettings().SiteTitle, page.Settings.SiteTitle, "missing settings use defaults")

	page = svc.Home(context.Background(), "tr")
	assert.Equal(t, "Proje", page.Projects[0].Title)
}

func TestSiteService_FailedSectionDegrades(t *testing.T) {
	b, svc := newSiteFixture(t)
	b.projects = seedProjects(1, 2)
	b.failing["blog"] = true
	b.failing["timeline"] = true

	page := svc.Home(context.Background(), "tr")
	assert.ElementsMatch(t, []string{"blog", "timeline"}, page.Degraded)
	assert.Len(t, page.Projects, 2)
	assert.Empty(t, page.Posts)
}

func TestSiteService_Post(t *testing.T) {
	b, svc := newSiteFixture(t)
	b.posts = []models.BlogPost{
		{ID: 1, Title: "Yazı", Slug: "yazi", Content: "# Başlık\n<script>alert(1)</script>", IsPublished: true},
		{ID: 2, Title: "Gizli", Slug: "gizli", Content: "x", IsPublished: false},
	}

	post, err := svc.Post(context.Background(), "yazi", "tr")
	require.NoError(t, err)
	assert.Equal(t, "Yazı", post.Title)
	assert.Contains(t, string(post.Content), "Başlık</h1>")
	assert.NotContains(t, string(post.Content), "<script>")

	_, err = svc.Post(context.Background(), "gizli", "tr")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
