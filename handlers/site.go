package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/pkg/ratelimit"
	"github.com/portfolyo/site/services"
)

// SiteHandler, public sayfalar: ana sayfa, blog yazısı, iletişim formu, dil seçimi.
type SiteHandler struct {
	*Base
	site     services.SiteService
	messages services.MessageService
	limiter  *ratelimit.ContactRateLimiter
}

// NewSiteHandler, constructor. limiter nil ise iletişim formu sınırlanmaz.
func NewSiteHandler(base *Base, site services.SiteService, messages services.MessageService, limiter *ratelimit.ContactRateLimiter) *SiteHandler {
	return &SiteHandler{Base: base, site: site, messages: messages, limiter: limiter}
}

// Home godoc
// GET /
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w, r, "site")
		return
	}
	home := h.site.Home(r.Context(), LanguageFrom(r.Context()))
	p := h.page(r, "", home)
	p.Title = home.Settings.SiteTitle
	if r.URL.Query().Get("sent") == "1" {
		p.Notice = p.L.T("contact.sent")
	}
	h.render.Render(w, http.StatusOK, "site/home", p)
}

// Post godoc
// GET /blog/{slug}
func (h *SiteHandler) Post(w http.ResponseWriter, r *http.Request) {
	post, err := h.site.Post(r.Context(), r.PathValue("slug"), LanguageFrom(r.Context()))
	if errors.Is(err, pkg.ErrNotFound) {
		h.notFound(w, r, "site")
		return
	}
	if err != nil {
		h.log.Warn("blog post unavailable", zap.Error(err))
		p := h.page(r, "", nil)
		p.Error = p.L.T("common.operationFailed")
		h.render.Render(w, pkg.StatusFor(err), "site/error", p)
		return
	}
	p := h.page(r, "", post)
	p.Title = post.Title
	h.render.Render(w, http.StatusOK, "site/post", p)
}

// Contact godoc
// POST /contact
//
// Başarılı gönderimde /?sent=1#contact adresine yönlendirir (PRG).
// Hata durumunda ana sayfa girilen değerlerle yeniden gösterilir.
func (h *SiteHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.contactFailed(w, r, fmt.Errorf("%w: invalid form", pkg.ErrBadRequest))
		return
	}

	ip := ratelimit.ExtractIP(r)
	if h.limiter != nil && !h.limiter.Allow(ip) {
		lang := LanguageFrom(r.Context())
		wait := h.limiter.CooldownSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", wait))
		p := h.homePage(r)
		p.Error = p.L.TWithParams("contact.tooMany", map[string]string{"wait": ratelimit.FormatWait(wait, lang)})
		p.Form = r.PostForm
		h.render.Render(w, http.StatusTooManyRequests, "site/home", p)
		return
	}

	in := models.MessageInput{
		SenderName:  r.PostFormValue("name"),
		SenderEmail: r.PostFormValue("email"),
		Subject:     r.PostFormValue("subject"),
		Content:     r.PostFormValue("message"),
	}
	if _, err := h.messages.Send(r.Context(), &in); err != nil {
		h.contactFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
}

func (h *SiteHandler) contactFailed(w http.ResponseWriter, r *http.Request, err error) {
	p := h.homePage(r)
	p.Error = localizeError(p.L, err)
	p.Form = r.PostForm
	h.render.Render(w, pkg.StatusFor(err), "site/home", p)
}

func (h *SiteHandler) homePage(r *http.Request) Page {
	home := h.site.Home(r.Context(), LanguageFrom(r.Context()))
	p := h.page(r, "", home)
	p.Title = home.Settings.SiteTitle
	return p
}

// SetLanguage godoc
// GET /lang/{code}
//
// Dil cookie'sini yazar ve geldiği sayfaya döner. Admin oturumu varsa
// oturumun dili de güncellenir.
func (h *SiteHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Normalize(r.PathValue("code"))
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookie,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})

	if id := h.cookie.Read(r); id != "" {
		if err := h.auth.SetLanguage(r.Context(), id, lang); err != nil && !errors.Is(err, pkg.ErrNotFound) {
			h.log.Warn("failed to store session language", zap.Error(err))
		}
	}

	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo, Referer aynı host'a aitse onun yolunu, değilse "/" döner.
func backTo(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != r.Host || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.RequestURI()
}
