// Package main: Service katmanı başlatma.
//
// initServices, apiclient.Client'ı (tüm backend interface'lerini karşılar)
// service'lere dağıtır. Sıra önemlidir: SiteService diğer service'leri kullanır.
package main

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/portfolyo/site/apiclient"
	"github.com/portfolyo/site/config"
	"github.com/portfolyo/site/pkg/cache"
	"github.com/portfolyo/site/pkg/email"
	"github.com/portfolyo/site/pkg/markdown"
	"github.com/portfolyo/site/services"
	"github.com/portfolyo/site/ws"
)

// principalCleanupInterval, oturum cache'inde süresi dolan kayıtların temizlenme aralığı.
const principalCleanupInterval = 5 * time.Minute

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	Project   services.ProjectService
	Blog      services.BlogService
	Timeline  services.TimelineService
	Message   services.MessageService
	Offering  services.OfferingService
	About     services.AboutService
	Settings  services.SettingsService
	Upload    services.UploadService
	Dashboard services.DashboardService
	Site      services.SiteService

	// Principals, AuthService'in oturum cache'i; shutdown'da kapatılır.
	Principals *cache.TTLCache[string, services.Principal]
}

func initServices(db *sql.DB, repos *Repositories, backend *apiclient.Client, hub *ws.Hub, cfg *config.Config, log *zap.Logger) (*Services, error) {
	principals := cache.New[string, services.Principal](cfg.Session.TTL, principalCleanupInterval)

	authService, err := services.NewAuthService(db, repos.Session, backend, principals, cfg.Session.Secret, cfg.Session.TTL, log)
	if err != nil {
		principals.Close()
		return nil, err
	}

	notifier := email.NewNopNotifier()
	if cfg.Email.ResendAPIKey != "" && cfg.Email.NotifyTo != "" {
		notifier = email.NewResendNotifier(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.NotifyTo)
	} else {
		log.Info("contact notifications disabled (RESEND_API_KEY or CONTACT_NOTIFY_EMAIL not set)")
	}

	projectService := services.NewProjectService(backend, hub, cfg.API.Timeout, log)
	blogService := services.NewBlogService(backend)
	timelineService := services.NewTimelineService(backend)
	offeringService := services.NewOfferingService(backend)
	aboutService := services.NewAboutService(backend)
	settingsService := services.NewSettingsService(backend)

	siteService := services.NewSiteService(services.SiteDeps{
		Projects:  projectService,
		Blog:      blogService,
		Timeline:  timelineService,
		Offerings: offeringService,
		About:     aboutService,
		Settings:  settingsService,
	}, markdown.NewRenderer(), cfg.API.BackendURL, log)

	return &Services{
		Auth:       authService,
		Project:    projectService,
		Blog:       blogService,
		Timeline:   timelineService,
		Message:    services.NewMessageService(backend, notifier, log),
		Offering:   offeringService,
		About:      aboutService,
		Settings:   settingsService,
		Upload:     services.NewUploadService(backend, cfg.Upload.MaxSize, cfg.API.BackendURL),
		Dashboard:  services.NewDashboardService(backend, backend, backend, log),
		Site:       siteService,
		Principals: principals,
	}, nil
}
