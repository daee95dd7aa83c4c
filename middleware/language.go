package middleware

import (
	"net/http"

	"github.com/portfolyo/site/handlers"
	"github.com/portfolyo/site/pkg/i18n"
)

// Language, request'in dilini seçer ve context'e ekler.
//
// Öncelik sırası: ?lang= parametresi → "lang" cookie'si → Accept-Language → tr.
// Desteklenmeyen değerler varsayılan dile düşer.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(handlers.WithLanguage(r.Context(), pickLanguage(r))))
	})
}

func pickLanguage(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); q != "" {
		return i18n.Normalize(q)
	}
	if c, err := r.Cookie(handlers.LanguageCookie); err == nil && c.Value != "" {
		return i18n.Normalize(c.Value)
	}
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}
