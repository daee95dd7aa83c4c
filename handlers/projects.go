package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// DashboardHandler, admin ana sayfası.
type DashboardHandler struct {
	*Base
	dashboard services.DashboardService
}

// NewDashboardHandler, constructor.
func NewDashboardHandler(base *Base, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Base: base, dashboard: dashboard}
}

// Show godoc
// GET /admin
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/admin" && r.URL.Path != "/admin/" {
		h.notFound(w, r, "admin")
		return
	}
	stats := h.dashboard.Stats(r.Context(), principal(r).Auth)
	h.render.Render(w, http.StatusOK, "admin/dashboard", h.page(r, "admin.dashboard", stats))
}

// ProjectHandler, admin proje ekranları ve sürükle-bırak JSON API'si.
type ProjectHandler struct {
	*Base
	projects services.ProjectService
	uploads  services.UploadService
	maxSize  int64
}

// NewProjectHandler, constructor.
func NewProjectHandler(base *Base, projects services.ProjectService, uploads services.UploadService, maxSize int64) *ProjectHandler {
	return &ProjectHandler{Base: base, projects: projects, uploads: uploads, maxSize: maxSize}
}

type projectFormView struct {
	Project *models.Project
}

// Index godoc
// GET /admin/projects
//
// Her açılışta backend'den güncel liste yüklenir ve oturum için yeni bir
// sıralama editor'ü oluşur.
func (h *ProjectHandler) Index(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	view, err := h.projects.OpenEditor(r.Context(), p.SessionID, p.Auth)
	if err != nil {
		h.fail(w, r, err, "admin/projects", h.page(r, "admin.projects", &services.EditorView{}))
		return
	}
	page := h.page(r, "admin.projects", view)
	page.Notice = noticeFrom(r, page)
	h.render.Render(w, http.StatusOK, "admin/projects", page)
}

// New godoc
// GET /admin/projects/new
func (h *ProjectHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin/project_form", h.page(r, "admin.projects", projectFormView{}))
}

// Edit godoc
// GET /admin/projects/{id}/edit
func (h *ProjectHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	project, err := h.projects.Get(r.Context(), id)
	if errors.Is(err, pkg.ErrNotFound) {
		h.notFound(w, r, "admin")
		return
	}
	if err != nil {
		h.fail(w, r, err, "admin/project_form", h.page(r, "admin.projects", projectFormView{}))
		return
	}
	h.render.Render(w, http.StatusOK, "admin/project_form", h.page(r, "admin.projects", projectFormView{Project: project}))
}

// Create godoc
// POST /admin/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update godoc
// POST /admin/projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	h.save(w, r, id)
}

func (h *ProjectHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	page := h.page(r, "admin.projects", projectFormView{Project: &models.Project{ID: id}})
	if err := parseMultipart(r, h.maxSize); err != nil {
		h.fail(w, r, err, "admin/project_form", page)
		return
	}

	in := models.ProjectInput{
		Title:         r.PostFormValue("title"),
		TitleEN:       r.PostFormValue("title_en"),
		Description:   r.PostFormValue("description"),
		DescriptionEN: r.PostFormValue("description_en"),
		ImageURL:      r.PostFormValue("image_url"),
		GithubURL:     r.PostFormValue("github_url"),
		LiveURL:       r.PostFormValue("live_url"),
		Technologies:  splitList(r.PostFormValue("technologies")),
		IsFeatured:    r.PostFormValue("is_featured") == "on",
		IsPublished:   r.PostFormValue("is_published") == "on",
	}
	if err := in.Validate(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error()), "admin/project_form", page)
		return
	}

	auth := principal(r).Auth
	if upload, ok, err := formFile(r, "image"); err != nil {
		h.fail(w, r, err, "admin/project_form", page)
		return
	} else if ok {
		res, err := h.uploads.UploadProjectImage(r.Context(), auth, upload)
		closeUpload(upload)
		if err != nil {
			h.fail(w, r, err, "admin/project_form", page)
			return
		}
		in.ImageURL = res.URL
	}

	var err error
	if id == 0 {
		_, err = h.projects.Create(r.Context(), auth, &in)
	} else {
		_, err = h.projects.Update(r.Context(), auth, id, &in)
	}
	if err != nil {
		h.fail(w, r, err, "admin/project_form", page)
		return
	}
	http.Redirect(w, r, "/admin/projects?saved=1", http.StatusSeeOther)
}

// Delete godoc
// POST /admin/projects/{id}/delete
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	if err := h.projects.Delete(r.Context(), principal(r).Auth, id); err != nil {
		h.fail(w, r, err, "admin/projects", h.page(r, "admin.projects", h.currentView(r)))
		return
	}
	http.Redirect(w, r, "/admin/projects?deleted=1", http.StatusSeeOther)
}

// currentView, hata sonrası listeyi yeniden göstermek için editor durumunu döner.
func (h *ProjectHandler) currentView(r *http.Request) *services.EditorView {
	view, err := h.projects.EditorState(principal(r).SessionID)
	if err != nil {
		return &services.EditorView{}
	}
	return view
}

// ─── Sürükle-bırak JSON API ───

type dragRequest struct {
	ID       int64 `json:"id"`
	SourceID int64 `json:"source_id"`
	TargetID int64 `json:"target_id"`
}

func decodeDrag(r *http.Request) (dragRequest, error) {
	var req dragRequest
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 4096)).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: invalid request body", pkg.ErrBadRequest)
	}
	return req, nil
}

// BeginDrag godoc
// POST /admin/api/projects/drag/begin  {"id": 3}
func (h *ProjectHandler) BeginDrag(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDrag(r)
	if err != nil {
		h.failJSON(w, r, err)
		return
	}
	if err := h.projects.BeginDrag(principal(r).SessionID, req.ID); err != nil {
		h.failJSON(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"id": req.ID, "state": "dragging"})
}

// CancelDrag godoc
// POST /admin/api/projects/drag/cancel
func (h *ProjectHandler) CancelDrag(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.CancelDrag(principal(r).SessionID); err != nil {
		h.failJSON(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"state": "idle"})
}

// CompleteDrag godoc
// POST /admin/api/projects/drag/complete  {"source_id": 3, "target_id": 1}
//
// Yeni sıra hemen döner; backend'e yazma arka planda sürer ve sonucu
// websocket üzerinden sync_state olarak gelir.
func (h *ProjectHandler) CompleteDrag(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDrag(r)
	if err != nil {
		h.failJSON(w, r, err)
		return
	}
	view, err := h.projects.CompleteDrag(principal(r).SessionID, req.SourceID, req.TargetID)
	if err != nil {
		h.failJSON(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, view)
}

// State godoc
// GET /admin/api/projects/state
func (h *ProjectHandler) State(w http.ResponseWriter, r *http.Request) {
	view, err := h.projects.EditorState(principal(r).SessionID)
	if err != nil {
		h.failJSON(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, view)
}

// Retry godoc
// POST /admin/api/projects/retry
func (h *ProjectHandler) Retry(w http.ResponseWriter, r *http.Request) {
	st, err := h.projects.RetrySync(principal(r).SessionID)
	if err != nil {
		h.failJSON(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, st)
}

// noticeFrom, PRG redirect'inden sonra gösterilecek mesaj.
func noticeFrom(r *http.Request, p Page) string {
	q := r.URL.Query()
	switch {
	case q.Get("saved") == "1":
		return p.L.T("common.saved")
	case q.Get("deleted") == "1":
		return p.L.T("common.deleted")
	}
	return ""
}

// formInt, boş veya geçersiz değerde 0 döner.
func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.PostFormValue(key))
	if err != nil {
		return 0
	}
	return n
}
