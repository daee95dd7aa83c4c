package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/pkg/ratelimit"
	"github.com/portfolyo/site/reorder"
	"github.com/portfolyo/site/services"
	"github.com/portfolyo/site/static"
)

func TestMain(m *testing.M) {
	locales, err := fs.Sub(i18n.EmbeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	if err := i18n.Load(locales); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

// ─── Fakes ───

type fakeAuth struct {
	login     func(req *models.LoginRequest) (*models.Session, error)
	logouts   []string
	logoutErr error
	languages map[string]string
}

func (f *fakeAuth) Login(_ context.Context, req *models.LoginRequest, _ string) (*models.Session, error) {
	if f.login == nil {
		return nil, pkg.ErrUnauthorized
	}
	return f.login(req)
}

func (f *fakeAuth) Authenticate(context.Context, string) (*services.Principal, error) {
	return nil, pkg.ErrUnauthorized
}

func (f *fakeAuth) Logout(_ context.Context, id string) error {
	f.logouts = append(f.logouts, id)
	return f.logoutErr
}

func (f *fakeAuth) SetLanguage(_ context.Context, id, lang string) error {
	if f.languages == nil {
		f.languages = map[string]string{}
	}
	f.languages[id] = lang
	return nil
}

func (f *fakeAuth) PurgeExpired(context.Context) (int64, error) { return 0, nil }
func (f *fakeAuth) RunPurge(context.Context, time.Duration)     {}
func (f *fakeAuth) OnLogout(func(string))                       {}

// fakeProjects sadece sıralama akışını taklit eder; CRUD çağrıları
// gömülü nil interface üzerinden panic eder.
type fakeProjects struct {
	services.ProjectService

	view      *services.EditorView
	err       error
	began     []int64
	completed [][2]int64
}

func (f *fakeProjects) OpenEditor(context.Context, string, models.AuthContext) (*services.EditorView, error) {
	return f.view, f.err
}

func (f *fakeProjects) BeginDrag(_ string, id int64) error {
	f.began = append(f.began, id)
	return f.err
}

func (f *fakeProjects) CancelDrag(string) error { return f.err }

func (f *fakeProjects) CompleteDrag(_ string, sourceID, targetID int64) (*services.EditorView, error) {
	f.completed = append(f.completed, [2]int64{sourceID, targetID})
	return f.view, f.err
}

func (f *fakeProjects) EditorState(string) (*services.EditorView, error) { return f.view, f.err }

func (f *fakeProjects) RetrySync(string) (reorder.SyncState, error) {
	if f.err != nil {
		return reorder.SyncState{}, f.err
	}
	return f.view.Sync, nil
}

type fakeSite struct {
	home *services.HomePage
}

func (f *fakeSite) Home(context.Context, string) *services.HomePage {
	if f.home == nil {
		return &services.HomePage{}
	}
	return f.home
}

func (f *fakeSite) Post(context.Context, string, string) (*services.PostPage, error) {
	return nil, pkg.ErrNotFound
}

type fakeMessages struct {
	services.MessageService
	sent []models.MessageInput
}

func (f *fakeMessages) Send(_ context.Context, in *models.MessageInput) (*models.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	f.sent = append(f.sent, *in)
	return &models.Message{ID: int64(len(f.sent))}, nil
}

// ─── Helpers ───

var testCookie = SessionCookie{Name: "sid"}

func newTestBase(t *testing.T, auth services.AuthService) *Base {
	t.Helper()
	render, err := NewRenderer(static.FS, zap.NewNop())
	require.NoError(t, err)
	return NewBase(render, auth, testCookie, zap.NewNop())
}

func withAdmin(r *http.Request) *http.Request {
	p := &services.Principal{SessionID: "s1", Email: "admin@example.com", Language: "tr"}
	return r.WithContext(WithPrincipal(r.Context(), p))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func sampleView() *services.EditorView {
	return &services.EditorView{
		Items: []models.Project{{ID: 3, Title: "Üç"}, {ID: 1, Title: "Bir"}, {ID: 2, Title: "İki"}},
		IDs:   []int64{3, 1, 2},
		Sync:  reorder.SyncState{Status: reorder.Pending, Version: 4, IntentID: "i-1"},
	}
}

// ─── Login ───

func TestLogin_SuccessSetsCookieAndRedirects(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	auth := &fakeAuth{login: func(req *models.LoginRequest) (*models.Session, error) {
		require.Equal(t, "admin@example.com", req.Email)
		return &models.Session{ID: "s1", ExpiresAt: expires}, nil
	}}
	h := NewAuthHandler(newTestBase(t, auth), nil)

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
		"next":     {"/admin/projects"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/projects", rec.Header().Get("Location"))
	c := findCookie(rec, "sid")
	require.NotNil(t, c)
	assert.Equal(t, "s1", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestLogin_InvalidCredentialsRerendersForm(t *testing.T) {
	h := NewAuthHandler(newTestBase(t, &fakeAuth{}), nil)

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"hunter2-secret"},
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, i18n.NewLocalizer("tr").T("auth.invalidCredentials"))
	assert.Contains(t, body, "admin@example.com")
	assert.NotContains(t, body, "hunter2-secret")
	assert.Nil(t, findCookie(rec, "sid"))
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := ratelimit.NewLoginRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	h := NewAuthHandler(newTestBase(t, &fakeAuth{}), limiter)

	form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/admin/login", form))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, postForm("/admin/login", form))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestLogin_NextCannotLeaveAdmin(t *testing.T) {
	auth := &fakeAuth{login: func(*models.LoginRequest) (*models.Session, error) {
		return &models.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}}
	h := NewAuthHandler(newTestBase(t, auth), nil)

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/admin/login", url.Values{"next": {"//evil.example.com/admin"}}))

	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestLogout_ClearsCookie(t *testing.T) {
	auth := &fakeAuth{}
	h := NewAuthHandler(newTestBase(t, auth), nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"s1"}, auth.logouts)
	c := findCookie(rec, "sid")
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

// ─── Projects JSON API ───

func newProjectHandler(t *testing.T, auth services.AuthService, projects services.ProjectService) *ProjectHandler {
	t.Helper()
	return NewProjectHandler(newTestBase(t, auth), projects, nil, 1<<20)
}

func TestCompleteDrag_ReturnsNewOrder(t *testing.T) {
	projects := &fakeProjects{view: sampleView()}
	h := newProjectHandler(t, &fakeAuth{}, projects)

	req := withAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/projects/drag/complete",
		strings.NewReader(`{"source_id":3,"target_id":1}`)))
	rec := httptest.NewRecorder()
	h.CompleteDrag(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[services.EditorView](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, []int64{3, 1, 2}, env.Data.IDs)
	assert.Equal(t, reorder.Pending, env.Data.Sync.Status)
	assert.Equal(t, uint64(4), env.Data.Sync.Version)
	assert.Equal(t, [][2]int64{{3, 1}}, projects.completed)
}

func TestBeginDrag(t *testing.T) {
	projects := &fakeProjects{view: sampleView()}
	h := newProjectHandler(t, &fakeAuth{}, projects)

	rec := httptest.NewRecorder()
	h.BeginDrag(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/projects/drag/begin",
		strings.NewReader(`{"id":2}`))))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[map[string]any](t, rec)
	assert.Equal(t, "dragging", env.Data["state"])
	assert.Equal(t, []int64{2}, projects.began)
}

func TestDragAPI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   string
		status int
	}{
		{"malformed body", nil, `{"source_id":`, http.StatusBadRequest},
		{"no editor", fmt.Errorf("%w: editor not open", pkg.ErrNotFound), `{"source_id":1,"target_id":2}`, http.StatusNotFound},
		{"already dragging", fmt.Errorf("%w: drag in progress", pkg.ErrConflict), `{"source_id":1,"target_id":2}`, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newProjectHandler(t, &fakeAuth{}, &fakeProjects{view: sampleView(), err: tt.err})

			rec := httptest.NewRecorder()
			h.CompleteDrag(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/projects/drag/complete",
				strings.NewReader(tt.body))))

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope[any](t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestDragAPI_BackendUnauthorizedEndsSession(t *testing.T) {
	auth := &fakeAuth{}
	h := newProjectHandler(t, auth, &fakeProjects{err: fmt.Errorf("load projects: %w", pkg.ErrUnauthorized)})

	rec := httptest.NewRecorder()
	h.State(rec, withAdmin(httptest.NewRequest(http.MethodGet, "/admin/api/projects/state", nil)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"s1"}, auth.logouts)
	c := findCookie(rec, "sid")
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestFailJSON_LogsLogoutFailure(t *testing.T) {
	render, err := NewRenderer(static.FS, zap.NewNop())
	require.NoError(t, err)
	core, logs := observer.New(zap.WarnLevel)
	auth := &fakeAuth{logoutErr: fmt.Errorf("delete session: %w", context.DeadlineExceeded)}
	b := NewBase(render, auth, testCookie, zap.New(core))

	rec := httptest.NewRecorder()
	b.failJSON(rec, withAdmin(httptest.NewRequest(http.MethodGet, "/admin/api/projects/state", nil)), pkg.ErrUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"s1"}, auth.logouts)
	assert.Equal(t, 1, logs.FilterMessage("failed to drop rejected session").Len())
	c := findCookie(rec, "sid")
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestRenderFailure_GenericPageKeepsSession(t *testing.T) {
	auth := &fakeAuth{}
	b := newTestBase(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req = req.WithContext(WithLanguage(req.Context(), "tr"))
	rec := httptest.NewRecorder()
	b.RenderFailure(rec, req, fmt.Errorf("failed to read session: %w", context.DeadlineExceeded))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "İşlem başarısız")
	assert.NotContains(t, rec.Body.String(), "failed to read session")
	assert.Empty(t, auth.logouts)
	assert.Nil(t, findCookie(rec, "sid"))
}

func TestRetry_ReturnsSyncState(t *testing.T) {
	h := newProjectHandler(t, &fakeAuth{}, &fakeProjects{view: sampleView()})

	rec := httptest.NewRecorder()
	h.Retry(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/projects/retry", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[reorder.SyncState](t, rec)
	assert.Equal(t, reorder.Pending, env.Data.Status)
	assert.Equal(t, "i-1", env.Data.IntentID)
}

func TestProjectsPage_RendersOrder(t *testing.T) {
	h := newProjectHandler(t, &fakeAuth{}, &fakeProjects{view: sampleView()})

	rec := httptest.NewRecorder()
	h.Index(rec, withAdmin(httptest.NewRequest(http.MethodGet, "/admin/projects?saved=1", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	first := strings.Index(body, `data-id="3"`)
	second := strings.Index(body, `data-id="1"`)
	require.True(t, first >= 0 && second >= 0, body)
	assert.Less(t, first, second)
	assert.Contains(t, body, `data-version="4"`)
	assert.Contains(t, body, i18n.NewLocalizer("tr").T("common.saved"))
}

// ─── Public site ───

func newSiteHandler(t *testing.T, auth *fakeAuth, messages services.MessageService) *SiteHandler {
	t.Helper()
	return NewSiteHandler(newTestBase(t, auth), &fakeSite{}, messages, nil)
}

func TestContact_RedirectsAfterSend(t *testing.T) {
	messages := &fakeMessages{}
	h := newSiteHandler(t, &fakeAuth{}, messages)

	rec := httptest.NewRecorder()
	h.Contact(rec, postForm("/contact", url.Values{
		"name":    {"Ayşe"},
		"email":   {"ayse@example.com"},
		"message": {"Merhaba"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?sent=1#contact", rec.Header().Get("Location"))
	require.Len(t, messages.sent, 1)
	assert.Equal(t, "Ayşe", messages.sent[0].SenderName)
}

func TestContact_InvalidEmailKeepsValues(t *testing.T) {
	messages := &fakeMessages{}
	h := newSiteHandler(t, &fakeAuth{}, messages)

	rec := httptest.NewRecorder()
	h.Contact(rec, postForm("/contact", url.Values{
		"name":    {"Ayşe"},
		"email":   {"not-an-address"},
		"message": {"Merhaba"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, i18n.NewLocalizer("tr").T("validation.invalidEmail"))
	assert.Contains(t, body, `value="Ayşe"`)
	assert.Empty(t, messages.sent)
}

func TestContact_RateLimited(t *testing.T) {
	limiter := ratelimit.NewContactRateLimiter(1, time.Hour, time.Minute)
	t.Cleanup(limiter.Stop)
	messages := &fakeMessages{}
	h := NewSiteHandler(newTestBase(t, &fakeAuth{}), &fakeSite{}, messages, limiter)

	form := url.Values{"name": {"Ayşe"}, "email": {"ayse@example.com"}, "message": {"Merhaba"}}

	rec := httptest.NewRecorder()
	h.Contact(rec, postForm("/contact", form))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	h.Contact(rec, postForm("/contact", form))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Len(t, messages.sent, 1)
}

func TestHome_UnknownPathIsLocalized404(t *testing.T) {
	h := newSiteHandler(t, &fakeAuth{}, &fakeMessages{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req = req.WithContext(WithLanguage(req.Context(), "en"))
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.NewLocalizer("en").T("common.notFound"))
}

func TestPost_Missing404(t *testing.T) {
	h := newSiteHandler(t, &fakeAuth{}, &fakeMessages{})

	req := httptest.NewRequest(http.MethodGet, "/blog/nope", nil)
	req.SetPathValue("slug", "nope")
	rec := httptest.NewRecorder()
	h.Post(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetLanguage(t *testing.T) {
	auth := &fakeAuth{}
	h := newSiteHandler(t, auth, &fakeMessages{})

	req := httptest.NewRequest(http.MethodGet, "/lang/EN", nil)
	req.SetPathValue("code", "EN")
	req.Header.Set("Referer", "http://example.com/blog/hello?x=1")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "s1"})
	rec := httptest.NewRecorder()
	h.SetLanguage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blog/hello?x=1", rec.Header().Get("Location"))
	c := findCookie(rec, LanguageCookie)
	require.NotNil(t, c)
	assert.Equal(t, "en", c.Value)
	assert.Equal(t, "en", auth.languages["s1"])
}

// ─── Helpers ───

func TestBackTo(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://example.com/", "/"},
		{"http://example.com/admin/projects", "/admin/projects"},
		{"https://evil.example.org/phish", "/"},
		{"::not a url", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.referer, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/lang/tr", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, backTo(req))
		})
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                     "/admin",
		"/admin/blog":          "/admin/blog",
		"/":                    "/admin",
		"https://evil.example": "/admin",
		"//evil.example/admin": "/admin",
		"/admin\\..\\evil":     "/admin",
		"/admin/projects?x=1":  "/admin/projects?x=1",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func TestLoginURL(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/admin/blog?page=2", nil)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fblog%3Fpage%3D2", LoginURL(get, false))

	post := httptest.NewRequest(http.MethodPost, "/admin/blog", nil)
	assert.Equal(t, "/admin/login?expired=1", LoginURL(post, true))
	assert.Equal(t, "/admin/login", LoginURL(post, false))
}

func TestLocalizeError(t *testing.T) {
	l := i18n.NewLocalizer("en")
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: file too large", pkg.ErrBadRequest), l.T("validation.fileTooLarge")},
		{fmt.Errorf("%w: unsupported file type", pkg.ErrBadRequest), l.T("validation.fileType")},
		{fmt.Errorf("%w: email is invalid", pkg.ErrBadRequest), l.T("validation.invalidEmail")},
		{fmt.Errorf("%w: title is required", pkg.ErrBadRequest), l.T("validation.required")},
		{fmt.Errorf("%w: order out of range", pkg.ErrBadRequest), l.T("validation.invalid")},
		{pkg.ErrNotFound, l.T("common.notFound")},
		{fmt.Errorf("backend: connection refused"), l.T("common.operationFailed")},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, localizeError(l, tt.err))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"go", "htmx", "sqlite"}, splitList(" go, htmx ,, sqlite "))
	assert.Equal(t, []string{}, splitList(""))
}
