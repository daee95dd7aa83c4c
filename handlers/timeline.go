package handlers

import (
	"errors"
	"net/http"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// TimelineHandler, admin zaman çizelgesi ekranları.
type TimelineHandler struct {
	*Base
	timeline services.TimelineService
}

// NewTimelineHandler, constructor.
func NewTimelineHandler(base *Base, timeline services.TimelineService) *TimelineHandler {
	return &TimelineHandler{Base: base, timeline: timeline}
}

type timelineFormView struct {
	Item  *models.TimelineItem
	Icons []string
}

// Index godoc
// GET /admin/timeline
func (h *TimelineHandler) Index(w http.ResponseWriter, r *http.Request) {
	items, err := h.timeline.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "admin/timeline", h.page(r, "admin.timeline", []models.TimelineItem{}))
		return
	}
	p := h.page(r, "admin.timeline", items)
	p.Notice = noticeFrom(r, p)
	h.render.Render(w, http.StatusOK, "admin/timeline", p)
}

// New godoc
// GET /admin/timeline/new
func (h *TimelineHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin/timeline_form",
		h.page(r, "admin.timeline", timelineFormView{Icons: models.TimelineIcons}))
}

// Edit godoc
// GET /admin/timeline/{id}/edit
func (h *TimelineHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	item, err := h.timeline.Get(r.Context(), id)
	if errors.Is(err, pkg.ErrNotFound) {
		h.notFound(w, r, "admin")
		return
	}
	view := timelineFormView{Item: item, Icons: models.TimelineIcons}
	if err != nil {
		h.fail(w, r, err, "admin/timeline_form", h.page(r, "admin.timeline", view))
		return
	}
	h.render.Render(w, http.StatusOK, "admin/timeline_form", h.page(r, "admin.timeline", view))
}

// Create godoc
// POST /admin/timeline
func (h *TimelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update godoc
// POST /admin/timeline/{id}
func (h *TimelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	h.save(w, r, id)
}

func (h *TimelineHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	view := timelineFormView{Item: &models.TimelineItem{ID: id}, Icons: models.TimelineIcons}
	page := h.page(r, "admin.timeline", view)
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, pkg.ErrBadRequest, "admin/timeline_form", page)
		return
	}

	in := models.TimelineInput{
		Year:        r.PostFormValue("year"),
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Icon:        r.PostFormValue("icon"),
		Order:       formInt(r, "order"),
	}

	var err error
	auth := principal(r).Auth
	if id == 0 {
		_, err = h.timeline.Create(r.Context(), auth, &in)
	} else {
		_, err = h.timeline.Update(r.Context(), auth, id, &in)
	}
	if err != nil {
		h.fail(w, r, err, "admin/timeline_form", page)
		return
	}
	http.Redirect(w, r, "/admin/timeline?saved=1", http.StatusSeeOther)
}

// Delete godoc
// POST /admin/timeline/{id}/delete
func (h *TimelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	if err := h.timeline.Delete(r.Context(), principal(r).Auth, id); err != nil {
		items, _ := h.timeline.List(r.Context())
		h.fail(w, r, err, "admin/timeline", h.page(r, "admin.timeline", items))
		return
	}
	http.Redirect(w, r, "/admin/timeline?deleted=1", http.StatusSeeOther)
}
