// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// Middleware kendi işini yapar (ör: oturumu çöz), sonra next'i çağırır.
// Hata varsa next'i çağırmaz → request burada durur.
// Zincir: Logging → Language → Session → Handler
package middleware

import (
	"errors"
	"net/http"

	"github.com/portfolyo/site/handlers"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// SessionMiddleware, admin oturum cookie'sini doğrular.
//
// Cookie'deki oturum id'si AuthService ile çözülür; geçerliyse Principal
// (backend token'ını taşıyan AuthContext dahil) context'e eklenir.
type SessionMiddleware struct {
	auth    services.AuthService
	cookie  handlers.SessionCookie
	failure PageFailure
}

// PageFailure, oturum çözülürken 401 dışı bir hata oluştuğunda (ör. SQLite
// hatası) HTML sayfasını yazar. Oturum bu durumda geçerli sayılır.
type PageFailure func(w http.ResponseWriter, r *http.Request, err error)

// NewSessionMiddleware, constructor.
func NewSessionMiddleware(auth services.AuthService, cookie handlers.SessionCookie, failure PageFailure) *SessionMiddleware {
	return &SessionMiddleware{auth: auth, cookie: cookie, failure: failure}
}

// RequirePage, HTML admin sayfaları için: oturum yoksa login'e yönlendirir.
// Süresi dolmuş oturumda login sayfası "oturum sona erdi" mesajını gösterir;
// diğer hatalarda cookie korunur ve genel hata sayfası gösterilir.
func (m *SessionMiddleware) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.cookie.Read(r)
		if id == "" {
			http.Redirect(w, r, handlers.LoginURL(r, false), http.StatusSeeOther)
			return
		}
		p, err := m.auth.Authenticate(r.Context(), id)
		if errors.Is(err, pkg.ErrUnauthorized) {
			m.cookie.Clear(w)
			http.Redirect(w, r, handlers.LoginURL(r, true), http.StatusSeeOther)
			return
		}
		if err != nil {
			m.failure(w, r, err)
			return
		}
		ctx := handlers.WithPrincipal(r.Context(), p)
		// Dil cookie'si yoksa oturumun dili kullanılır.
		if _, err := r.Cookie(handlers.LanguageCookie); err != nil && p.Language != "" && r.URL.Query().Get("lang") == "" {
			ctx = handlers.WithLanguage(ctx, p.Language)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAPI, admin JSON API'si için: oturum yoksa 401 JSON döner.
func (m *SessionMiddleware) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := m.principal(r)
		if err != nil {
			pkg.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithPrincipal(r.Context(), p)))
	})
}

// ResolveSession, ws.SessionResolver: upgrade öncesinde oturum id'sini çözer.
func (m *SessionMiddleware) ResolveSession(r *http.Request) (string, error) {
	p, err := m.principal(r)
	if err != nil {
		return "", err
	}
	return p.SessionID, nil
}

func (m *SessionMiddleware) principal(r *http.Request) (*services.Principal, error) {
	id := m.cookie.Read(r)
	if id == "" {
		return nil, pkg.ErrUnauthorized
	}
	return m.auth.Authenticate(r.Context(), id)
}
