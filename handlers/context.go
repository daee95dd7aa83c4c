// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi "ince" olmalı:
// 1. Formu veya JSON body'yi parse et
// 2. Service katmanını çağır
// 3. Sonucu HTML sayfası, redirect veya JSON olarak döndür
//
// Handler ASLA iş mantığı içermez ve backend'e doğrudan gitmez.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/services"
)

// contextKey, context'te değer taşımak için kullanılan key tipi.
// Özel tip string key'lerle çakışmayı önler.
type contextKey string

// PrincipalContextKey, SessionMiddleware'in çözdüğü oturumu taşır.
const PrincipalContextKey contextKey = "principal"

// LanguageContextKey, LanguageMiddleware'in seçtiği dili taşır.
const LanguageContextKey contextKey = "lang"

// LanguageCookie, public sitede seçilen dilin saklandığı cookie.
const LanguageCookie = "lang"

// WithPrincipal, context'e oturumu ekler.
func WithPrincipal(ctx context.Context, p *services.Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, p)
}

// PrincipalFrom, context'teki oturumu döner.
func PrincipalFrom(ctx context.Context) (*services.Principal, bool) {
	p, ok := ctx.Value(PrincipalContextKey).(*services.Principal)
	return p, ok && p != nil
}

// WithLanguage, context'e dili ekler.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LanguageContextKey, lang)
}

// LanguageFrom, context'teki dili döner; yoksa varsayılan dil.
func LanguageFrom(ctx context.Context) string {
	if lang, ok := ctx.Value(LanguageContextKey).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

// SessionCookie, admin oturum cookie'sinin ayarları.
// Cookie sadece oturum id'sini taşır; HttpOnly olduğu için JS okuyamaz.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set, oturum cookie'sini yazar.
func (c SessionCookie) Set(w http.ResponseWriter, id string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    id,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear, oturum cookie'sini siler.
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read, request'teki oturum id'sini döner.
func (c SessionCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// pathID, URL'deki {id} parametresini int64'e çevirir.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", pkg.ErrBadRequest)
	}
	return id, nil
}
