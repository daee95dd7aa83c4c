// Package main: Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Handler'lar "thin" dir: sadece form/JSON parse + service call + response write.
package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/portfolyo/site/config"
	"github.com/portfolyo/site/handlers"
	"github.com/portfolyo/site/middleware"
	"github.com/portfolyo/site/pkg/ratelimit"
	"github.com/portfolyo/site/ws"
)

// RateLimiters, brute-force ve spam korumaları.
type RateLimiters struct {
	Login   *ratelimit.LoginRateLimiter
	Contact *ratelimit.ContactRateLimiter
}

func initRateLimiters() *RateLimiters {
	return &RateLimiters{
		// 15 dakikada 5 başarısız login denemesi
		Login: ratelimit.NewLoginRateLimiter(5, 15*time.Minute),
		// saatte 3 mesaj, aşılırsa 10 dakika bekleme
		Contact: ratelimit.NewContactRateLimiter(3, time.Hour, 10*time.Minute),
	}
}

// Stop, limiter'ların cleanup goroutine'lerini durdurur.
func (l *RateLimiters) Stop() {
	l.Login.Stop()
	l.Contact.Stop()
}

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Site      *handlers.SiteHandler
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Project   *handlers.ProjectHandler
	Blog      *handlers.BlogHandler
	Timeline  *handlers.TimelineHandler
	Offering  *handlers.OfferingHandler
	Inbox     *handlers.InboxHandler
	Profile   *handlers.ProfileHandler
	WS        *ws.Handler

	Session *middleware.SessionMiddleware
}

func initHandlers(
	svcs *Services,
	render *handlers.Renderer,
	limiters *RateLimiters,
	hub *ws.Hub,
	cfg *config.Config,
	log *zap.Logger,
) *Handlers {
	cookie := handlers.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}
	base := handlers.NewBase(render, svcs.Auth, cookie, log)
	session := middleware.NewSessionMiddleware(svcs.Auth, cookie, base.RenderFailure)
	maxSize := cfg.Upload.MaxSize

	return &Handlers{
		Site:      handlers.NewSiteHandler(base, svcs.Site, svcs.Message, limiters.Contact),
		Auth:      handlers.NewAuthHandler(base, limiters.Login),
		Dashboard: handlers.NewDashboardHandler(base, svcs.Dashboard),
		Project:   handlers.NewProjectHandler(base, svcs.Project, svcs.Upload, maxSize),
		Blog:      handlers.NewBlogHandler(base, svcs.Blog, svcs.Upload, maxSize),
		Timeline:  handlers.NewTimelineHandler(base, svcs.Timeline),
		Offering:  handlers.NewOfferingHandler(base, svcs.Offering),
		Inbox:     handlers.NewInboxHandler(base, svcs.Message),
		Profile:   handlers.NewProfileHandler(base, svcs.About, svcs.Settings, svcs.Upload, maxSize),
		WS:        ws.NewHandler(hub, session, cfg.CORS.AllowedOrigins),
		Session:   session,
	}
}
