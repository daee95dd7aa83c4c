package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/portfolyo/site/handlers"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

type fakeAuth struct {
	sessions map[string]*services.Principal
	err      error
}

func (f *fakeAuth) Login(context.Context, *models.LoginRequest, string) (*models.Session, error) {
	return nil, pkg.ErrUnauthorized
}

func (f *fakeAuth) Authenticate(_ context.Context, id string) (*services.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.sessions[id]
	if !ok {
		return nil, pkg.ErrUnauthorized
	}
	return p, nil
}

func (f *fakeAuth) Logout(context.Context, string) error               { return nil }
func (f *fakeAuth) SetLanguage(context.Context, string, string) error  { return nil }
func (f *fakeAuth) PurgeExpired(context.Context) (int64, error)         { return 0, nil }
func (f *fakeAuth) RunPurge(context.Context, time.Duration)             {}
func (f *fakeAuth) OnLogout(func(string))                               {}

var cookie = handlers.SessionCookie{Name: "sid"}

func newSessionMiddleware() *SessionMiddleware {
	return newSessionMiddlewareWith(&fakeAuth{sessions: map[string]*services.Principal{
		"s1": {SessionID: "s1", Email: "admin@example.com", Language: "en"},
	}})
}

func newSessionMiddlewareWith(auth *fakeAuth) *SessionMiddleware {
	return NewSessionMiddleware(auth, cookie, func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(pkg.StatusFor(err))
		w.Write([]byte("operation failed"))
	})
}

func echoPrincipal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := handlers.PrincipalFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Write([]byte(p.SessionID + ":" + handlers.LanguageFrom(r.Context())))
	})
}

func TestRequirePage_RedirectsWithoutSession(t *testing.T) {
	h := newSessionMiddleware().RequirePage(echoPrincipal())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fprojects", rec.Header().Get("Location"))
}

func TestRequirePage_UnknownSessionIsExpired(t *testing.T) {
	h := newSessionMiddleware().RequirePage(echoPrincipal())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "gone"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "expired=1")
	// cookie temizlenir
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestRequirePage_StoreFailureKeepsSession(t *testing.T) {
	h := newSessionMiddlewareWith(&fakeAuth{err: errors.New("database is locked")}).RequirePage(echoPrincipal())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "operation failed", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"), "not treated as an expired session")
	assert.Empty(t, rec.Result().Cookies(), "cookie kept")
}

func TestRequirePage_UsesSessionLanguage(t *testing.T) {
	h := newSessionMiddleware().RequirePage(echoPrincipal())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1:en", rec.Body.String())
}

func TestRequireAPI_Returns401JSON(t *testing.T) {
	h := newSessionMiddleware().RequireAPI(echoPrincipal())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/projects/state", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestResolveSession(t *testing.T) {
	m := newSessionMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/admin/ws", nil)
	_, err := m.ResolveSession(req)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	req.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})
	id, err := m.ResolveSession(req)
	require.NoError(t, err)
	assert.Equal(t, "s1", id)
}

func TestLanguage_Priority(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{name: "default", want: "tr"},
		{name: "accept-language", accept: "en-US,en;q=0.9", want: "en"},
		{name: "cookie beats header", cookie: "tr", accept: "en", want: "tr"},
		{name: "query beats cookie", query: "en", cookie: "tr", want: "en"},
		{name: "unsupported falls back", query: "de", want: "tr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = handlers.LanguageFrom(r.Context())
			}))
			target := "/"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: handlers.LanguageCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogging_RecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "/missing", fields["path"])
}
