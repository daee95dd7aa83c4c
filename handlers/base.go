package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/services"
)

// Base, admin ve public handler'larının ortak bağımlılıkları.
type Base struct {
	render *Renderer
	auth   services.AuthService
	cookie SessionCookie
	log    *zap.Logger
}

// NewBase, constructor.
func NewBase(render *Renderer, auth services.AuthService, cookie SessionCookie, log *zap.Logger) *Base {
	return &Base{render: render, auth: auth, cookie: cookie, log: log.Named("http")}
}

// page, request'ten ortak sayfa verisini kurar.
func (b *Base) page(r *http.Request, titleKey string, data any) Page {
	lang := LanguageFrom(r.Context())
	p := Page{
		Lang: lang,
		L:    i18n.NewLocalizer(lang),
		Path: r.URL.Path,
		Data: data,
	}
	if titleKey != "" {
		p.Title = p.L.T(titleKey)
	}
	if principal, ok := PrincipalFrom(r.Context()); ok {
		p.Principal = principal
	}
	return p
}

// principal, RequirePage/RequireAPI arkasındaki handler'larda oturumu döner.
func principal(r *http.Request) *services.Principal {
	p, _ := PrincipalFrom(r.Context())
	if p == nil {
		return &services.Principal{}
	}
	return p
}

// expire, backend token'ı reddettiğinde oturumu kapatır ve login'e yönlendirir.
func (b *Base) expire(w http.ResponseWriter, r *http.Request) {
	b.dropSession(w, r)
	http.Redirect(w, r, LoginURL(r, true), http.StatusSeeOther)
}

// dropSession, backend'in reddettiği oturumu siler ve cookie'yi temizler.
func (b *Base) dropSession(w http.ResponseWriter, r *http.Request) {
	if p, ok := PrincipalFrom(r.Context()); ok {
		if err := b.auth.Logout(r.Context(), p.SessionID); err != nil {
			b.log.Warn("failed to drop rejected session", zap.Error(err))
		}
	}
	b.cookie.Clear(w)
}

// fail, form veya sayfa hatasını işler.
//
// Backend 401 → oturum kapanır, login'e yönlendirilir.
// Doğrulama hatası → form kullanıcının değerleriyle yeniden gösterilir.
// Diğer hatalar → genel "İşlem başarısız" mesajı, sayfa kullanılabilir kalır.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error, name string, p Page) {
	if errors.Is(err, pkg.ErrUnauthorized) {
		b.expire(w, r)
		return
	}

	p.Error = localizeError(p.L, err)
	status := pkg.StatusFor(err)
	if status >= http.StatusInternalServerError {
		b.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	if p.Form == nil && r.Form != nil {
		p.Form = r.PostForm
	}
	b.render.Render(w, status, name, p)
}

// failJSON, admin JSON API hatası. 401'de oturum da kapatılır.
func (b *Base) failJSON(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pkg.ErrUnauthorized) {
		b.dropSession(w, r)
	}
	l := i18n.NewLocalizer(LanguageFrom(r.Context()))
	pkg.ErrorWithMessage(w, pkg.StatusFor(err), localizeError(l, err))
}

// RenderFailure, handler'a ulaşmadan oluşan hatalar için admin hata sayfası
// (ör. oturum deposu okunamadı). Mesaj her zaman yerelleştirilmiş genel metindir.
func (b *Base) RenderFailure(w http.ResponseWriter, r *http.Request, err error) {
	b.fail(w, r, err, "admin/error", b.page(r, "common.operationFailed", nil))
}

// notFound, dile göre 404 sayfası.
func (b *Base) notFound(w http.ResponseWriter, r *http.Request, group string) {
	p := b.page(r, "common.notFound", nil)
	b.render.Render(w, http.StatusNotFound, group+"/error", p)
}

// localizeError, hatayı kullanıcıya gösterilecek yerel mesaja çevirir.
// Doğrulama mesajları models.Validate ve UploadService'in ürettiği
// metinlere göre eşlenir.
func localizeError(l *i18n.Localizer, err error) string {
	if !errors.Is(err, pkg.ErrBadRequest) {
		if errors.Is(err, pkg.ErrNotFound) {
			return l.T("common.notFound")
		}
		return l.T("common.operationFailed")
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "too large"):
		return l.T("validation.fileTooLarge")
	case strings.Contains(msg, "file type"):
		return l.T("validation.fileType")
	case strings.Contains(msg, "email is invalid"):
		return l.T("validation.invalidEmail")
	case strings.Contains(msg, "required"):
		return l.T("validation.required")
	default:
		return l.T("validation.invalid")
	}
}

// LoginURL, login sayfasının adresini döner; mevcut sayfa "next" olarak eklenir.
func LoginURL(r *http.Request, expired bool) string {
	q := url.Values{}
	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/admin") {
		q.Set("next", r.URL.RequestURI())
	}
	if expired {
		q.Set("expired", "1")
	}
	if len(q) == 0 {
		return "/admin/login"
	}
	return "/admin/login?" + q.Encode()
}

// safeNext, open redirect'i önler: sadece /admin altındaki göreli yollar.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/admin") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/admin"
	}
	return next
}

// splitList, "a, b ,c" → ["a","b","c"].
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
