package services

import (
	"context"
	"html/template"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/pkg/markdown"
)

// excerptLen, blog kartlarındaki özet uzunluğu (karakter).
const excerptLen = 160

// ProjectCard, public sitedeki bir proje kartı. Metinler seçilen dildedir.
type ProjectCard struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     string
	GithubURL    string
	LiveURL      string
	Technologies []string
	Featured     bool
}

// PostCard, blog listesindeki bir yazı.
type PostCard struct {
	Title       string
	Slug        string
	Excerpt     string
	ImageURL    string
	ExternalURL string
	Tags        []string
	Date        time.Time
}

// AboutView, "hakkımda" bölümü.
type AboutView struct {
	FullName     string
	Title        string
	Bio          template.HTML
	ProfileImage string
	CVURL        string
	Email        string
	Location     string
	Skills       []map[string]any
	SocialLinks  map[string]string
}

// HomePage, public ana sayfanın tüm verisi.
//
// Degraded, backend'den alınamayan bölümlerin adlarıdır: bu bölümler boş
// gösterilir, sayfa yine de render edilir.
type HomePage struct {
	Lang      string
	Settings  models.Settings
	About     AboutView
	Projects  []ProjectCard
	Posts     []PostCard
	Offerings []models.Offering
	Timeline  []models.TimelineItem
	Degraded  []string
}

// PostPage, tek bir blog yazısının sayfası.
type PostPage struct {
	Lang        string
	Settings    models.Settings
	Title       string
	Content     template.HTML
	ImageURL    string
	ExternalURL string
	Tags        []string
	Date        time.Time
}

// SiteService interface'i: public sayfa modellerini kurar.
type SiteService interface {
	Home(ctx context.Context, lang string) *HomePage
	Post(ctx context.Context, slug, lang string) (*PostPage, error)
}

type siteService struct {
	projects   ProjectService
	blog       BlogService
	timeline   TimelineService
	offerings  OfferingService
	about      AboutService
	settings   SettingsService
	md         *markdown.Renderer
	backendURL string
	log        *zap.Logger
}

// SiteDeps, SiteService'in kullandığı servisler.
type SiteDeps struct {
	Projects  ProjectService
	Blog      BlogService
	Timeline  TimelineService
	Offerings OfferingService
	About     AboutService
	Settings  SettingsService
}

// NewSiteService, constructor.
func NewSiteService(deps SiteDeps, md *markdown.Renderer, backendURL string, log *zap.Logger) SiteService {
	return &siteService{
		projects:   deps.Projects,
		blog:       deps.Blog,
		timeline:   deps.Timeline,
		offerings:  deps.Offerings,
		about:      deps.About,
		settings:   deps.Settings,
		md:         md,
		backendURL: backendURL,
		log:        log.Named("site"),
	}
}

// Home, bütün bölümleri paralel çeker. Bir bölümün hatası sadece o
// bölümü boş bırakır; Home hiçbir zaman hata dönmez.
func (s *siteService) Home(ctx context.Context, lang string) *HomePage {
	lang = i18n.Normalize(lang)
	page := &HomePage{Lang: lang, Settings: models.DefaultSettings()}

	var mu sync.Mutex
	degrade := func(section string, err error) {
		s.log.Warn("section unavailable", zap.String("section", section), zap.Error(err))
		mu.Lock()
		page.Degraded = append(page.Degraded, section)
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		settings, err := s.settings.Get(egCtx)
		if err != nil {
			degrade("settings", err)
			return nil
		}
		page.Settings = *settings
		return nil
	})
	eg.Go(func() error {
		about, err := s.about.Get(egCtx)
		if err != nil {
			degrade("about", err)
			return nil
		}
		page.About = s.aboutView(*about, lang)
		return nil
	})
	eg.Go(func() error {
		projects, err := s.projects.List(egCtx)
		if err != nil {
			degrade("projects", err)
			return nil
		}
		page.Projects = s.projectCards(projects, lang)
		return nil
	})
	eg.Go(func() error {
		posts, err := s.blog.Published(egCtx)
		if err != nil {
			degrade("blog", err)
			return nil
		}
		page.Posts = s.postCards(posts, lang)
		return nil
	})
	eg.Go(func() error {
		offerings, err := s.offerings.Published(egCtx)
		if err != nil {
			degrade("services", err)
			return nil
		}
		page.Offerings = offerings
		return nil
	})
	eg.Go(func() error {
		items, err := s.timeline.List(egCtx)
		if err != nil {
			degrade("timeline", err)
			return nil
		}
		page.Timeline = items
		return nil
	})

	_ = eg.Wait()
	return page
}

func (s *siteService) Post(ctx context.Context, slug, lang string) (*PostPage, error) {
	lang = i18n.Normalize(lang)

	post, err := s.blog.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	content, err := s.md.Render(post.LocalizedContent(lang))
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Warn("section unavailable", zap.String("section", "settings"), zap.Error(err))
		d := models.DefaultSettings()
		settings = &d
	}

	return &PostPage{
		Lang:        lang,
		Settings:    *settings,
		Title:       post.LocalizedTitle(lang),
		Content:     content,
		ImageURL:    AssetURL(s.backendURL, deref(post.ImageURL)),
		ExternalURL: deref(post.ExternalURL),
		Tags:        post.Tags,
		Date:        post.CreatedAt,
	}, nil
}

func (s *siteService) projectCards(projects []models.Project, lang string) []ProjectCard {
	cards := make([]ProjectCard, 0, len(projects))
	for _, p := range projects {
		if !p.IsPublished {
			continue
		}
		cards = append(cards, ProjectCard{
			ID:           p.ID,
			Title:        p.LocalizedTitle(lang),
			Description:  p.LocalizedDescription(lang),
			ImageURL:     AssetURL(s.backendURL, deref(p.ImageURL)),
			GithubURL:    deref(p.GithubURL),
			LiveURL:      deref(p.LiveURL),
			Technologies: p.Technologies,
			Featured:     p.IsFeatured,
		})
	}
	return cards
}

func (s *siteService) postCards(posts []models.BlogPost, lang string) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, PostCard{
			Title:       p.LocalizedTitle(lang),
			Slug:        p.Slug,
			Excerpt:     s.md.Excerpt(p.LocalizedContent(lang), excerptLen),
			ImageURL:    AssetURL(s.backendURL, deref(p.ImageURL)),
			ExternalURL: deref(p.ExternalURL),
			Tags:        p.Tags,
			Date:        p.CreatedAt,
		})
	}
	return cards
}

func (s *siteService) aboutView(a models.About, lang string) AboutView {
	bio, err := s.md.Render(a.LocalizedBio(lang))
	if err != nil {
		bio = template.HTML(template.HTMLEscapeString(a.LocalizedBio(lang)))
	}
	return AboutView{
		FullName:     a.FullName,
		Title:        a.LocalizedTitle(lang),
		Bio:          bio,
		ProfileImage: AssetURL(s.backendURL, a.ProfileImage),
		CVURL:        AssetURL(s.backendURL, a.LocalizedCV(lang)),
		Email:        a.Email,
		Location:     a.Location,
		Skills:       a.Skills,
		SocialLinks:  a.SocialLinks,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
