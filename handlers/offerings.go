package handlers

import (
	"net/http"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// OfferingHandler, admin "hizmetler" ekranı. Backend sadece listeleme ve
// oluşturmayı destekler.
type OfferingHandler struct {
	*Base
	offerings services.OfferingService
}

// NewOfferingHandler, constructor.
func NewOfferingHandler(base *Base, offerings services.OfferingService) *OfferingHandler {
	return &OfferingHandler{Base: base, offerings: offerings}
}

type offeringsView struct {
	Items    []models.Offering
	Statuses []string
}

// Index godoc
// GET /admin/services
func (h *OfferingHandler) Index(w http.ResponseWriter, r *http.Request) {
	items, err := h.offerings.List(r.Context())
	view := offeringsView{Items: items, Statuses: []string{models.OfferingPublished, models.OfferingDraft}}
	if err != nil {
		h.fail(w, r, err, "admin/services", h.page(r, "admin.services", view))
		return
	}
	p := h.page(r, "admin.services", view)
	p.Notice = noticeFrom(r, p)
	h.render.Render(w, http.StatusOK, "admin/services", p)
}

// Create godoc
// POST /admin/services
func (h *OfferingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid form")
		return
	}
	in := models.OfferingInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Icon:        r.PostFormValue("icon"),
		IconColor:   r.PostFormValue("icon_color"),
		Status:      r.PostFormValue("status"),
		Tags:        splitList(r.PostFormValue("tags")),
		Order:       formInt(r, "order"),
	}
	if _, err := h.offerings.Create(r.Context(), principal(r).Auth, &in); err != nil {
		items, _ := h.offerings.List(r.Context())
		view := offeringsView{Items: items, Statuses: []string{models.OfferingPublished, models.OfferingDraft}}
		h.fail(w, r, err, "admin/services", h.page(r, "admin.services", view))
		return
	}
	http.Redirect(w, r, "/admin/services?saved=1", http.StatusSeeOther)
}
