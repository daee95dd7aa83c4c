package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/portfolyo/site/apiclient"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/ratelimit"
)

// AuthHandler, admin login/logout.
type AuthHandler struct {
	*Base
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler, constructor.
// loginLimiter: brute-force koruması. nil ise rate limiting devre dışı kalır.
func NewAuthHandler(base *Base, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{Base: base, loginLimiter: loginLimiter}
}

type loginView struct {
	Next string
}

// LoginPage godoc
// GET /admin/login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Geçerli oturum varsa doğrudan panele.
	if id := h.cookie.Read(r); id != "" {
		if _, err := h.auth.Authenticate(r.Context(), id); err == nil {
			http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
			return
		}
	}

	p := h.page(r, "auth.title", loginView{Next: safeNext(r.URL.Query().Get("next"))})
	if r.URL.Query().Get("expired") == "1" {
		p.Error = p.L.T("auth.sessionExpired")
	}
	h.render.Render(w, http.StatusOK, "admin/login", p)
}

// Login godoc
// POST /admin/login
//
// Rate limiting: IP bazlı brute-force koruması. Başarılı login sayacı sıfırlar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid form")
		return
	}
	next := safeNext(r.PostFormValue("next"))
	p := h.page(r, "auth.title", loginView{Next: next})
	p.Form = r.PostForm
	p.Form.Del("password")

	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		p.Error = p.L.TWithParams("auth.tooManyAttempts", map[string]string{
			"wait": ratelimit.FormatWait(retryAfter, p.Lang),
		})
		h.render.Render(w, http.StatusTooManyRequests, "admin/login", p)
		return
	}

	req := models.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	session, err := h.auth.Login(r.Context(), &req, p.Lang)
	if err != nil {
		status := pkg.StatusFor(err)
		switch {
		case errors.Is(err, pkg.ErrUnauthorized), errors.As(err, new(*apiclient.APIError)) && errors.Is(err, pkg.ErrBadRequest):
			// Backend yanlış şifrede 400 veya 401 dönebilir.
			p.Error = p.L.T("auth.invalidCredentials")
			status = http.StatusUnauthorized
		default:
			p.Error = localizeError(p.L, err)
			if status >= http.StatusInternalServerError {
				h.log.Error("login failed", zap.Error(err))
			}
		}
		h.render.Render(w, status, "admin/login", p)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}
	h.cookie.Set(w, session.ID, session.ExpiresAt)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout godoc
// POST /admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := h.cookie.Read(r); id != "" {
		if err := h.auth.Logout(r.Context(), id); err != nil {
			h.log.Warn("logout failed", zap.Error(err))
		}
	}
	h.cookie.Clear(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
