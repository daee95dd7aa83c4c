// Package main: HTTP route tanımları.
//
// Go 1.22+ ServeMux pattern'ları: "METHOD /path/{param}".
// Public sayfalar oturum gerektirmez; /admin altındaki her şey
// SessionMiddleware'den geçer (login sayfası hariç).
package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/portfolyo/site/config"
	"github.com/portfolyo/site/middleware"
)

// initRoutes, tüm route'ları kurar. ping, /healthz'de oturum DB'sini kontrol eder.
func initRoutes(h *Handlers, assets fs.FS, ping func(context.Context) error, cfg *config.Config, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		w.Header().Set("Content-Type", "application/json")
		if err := ping(ctx); err != nil {
			log.Warn("health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status":"unavailable"}`)
			return
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))

	// ─── Public ───
	// "/" dışındaki bilinmeyen yollar Home içinde yerelleştirilmiş 404 alır.
	mux.HandleFunc("GET /", h.Site.Home)
	mux.HandleFunc("GET /blog/{slug}", h.Site.Post)
	mux.HandleFunc("POST /contact", h.Site.Contact)
	mux.HandleFunc("GET /lang/{code}", h.Site.SetLanguage)

	// ─── Admin: login ───
	mux.HandleFunc("GET /admin/login", h.Auth.LoginPage)
	mux.HandleFunc("POST /admin/login", h.Auth.Login)
	mux.HandleFunc("POST /admin/logout", h.Auth.Logout)

	// ─── Admin: sayfalar ───
	page := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, h.Session.RequirePage(fn))
	}

	page("GET /admin", h.Dashboard.Show)
	page("GET /admin/", h.Dashboard.Show)

	page("GET /admin/projects", h.Project.Index)
	page("GET /admin/projects/new", h.Project.New)
	page("POST /admin/projects", h.Project.Create)
	page("GET /admin/projects/{id}/edit", h.Project.Edit)
	page("POST /admin/projects/{id}", h.Project.Update)
	page("POST /admin/projects/{id}/delete", h.Project.Delete)

	page("GET /admin/blog", h.Blog.Index)
	page("GET /admin/blog/new", h.Blog.New)
	page("POST /admin/blog", h.Blog.Create)
	page("GET /admin/blog/{id}/edit", h.Blog.Edit)
	page("POST /admin/blog/{id}", h.Blog.Update)
	page("POST /admin/blog/{id}/delete", h.Blog.Delete)

	page("GET /admin/timeline", h.Timeline.Index)
	page("GET /admin/timeline/new", h.Timeline.New)
	page("POST /admin/timeline", h.Timeline.Create)
	page("GET /admin/timeline/{id}/edit", h.Timeline.Edit)
	page("POST /admin/timeline/{id}", h.Timeline.Update)
	page("POST /admin/timeline/{id}/delete", h.Timeline.Delete)

	page("GET /admin/services", h.Offering.Index)
	page("POST /admin/services", h.Offering.Create)

	page("GET /admin/messages", h.Inbox.Index)
	page("GET /admin/messages/{id}", h.Inbox.Show)
	page("POST /admin/messages/{id}/read", h.Inbox.SetRead)
	page("POST /admin/messages/{id}/delete", h.Inbox.Delete)

	page("GET /admin/about", h.Profile.About)
	page("POST /admin/about", h.Profile.SaveAbout)
	page("GET /admin/settings", h.Profile.Settings)
	page("POST /admin/settings", h.Profile.SaveSettings)
	page("GET /admin/upload", h.Profile.UploadPage)
	page("POST /admin/upload", h.Profile.Upload)

	// ─── Admin: sıralama JSON API ───
	//
	// Aynı origin'den çağrılır; ALLOWED_ORIGINS ile ayrı bir geliştirme
	// sunucusundan da (credentials ile) erişilebilir.
	apiCORS := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, apiCORS.Handler(h.Session.RequireAPI(fn)))
	}
	api("POST /admin/api/projects/drag/begin", h.Project.BeginDrag)
	api("POST /admin/api/projects/drag/cancel", h.Project.CancelDrag)
	api("POST /admin/api/projects/drag/complete", h.Project.CompleteDrag)
	api("GET /admin/api/projects/state", h.Project.State)
	api("POST /admin/api/projects/retry", h.Project.Retry)
	mux.Handle("OPTIONS /admin/api/", apiCORS.Handler(http.NotFoundHandler()))

	// WebSocket: oturum cookie'si upgrade öncesinde ws.Handler içinde çözülür.
	mux.HandleFunc("GET /admin/ws", h.WS.HandleConnection)

	var handler http.Handler = mux
	handler = middleware.Language(handler)
	handler = middleware.Logging(log)(handler)
	return handler
}
