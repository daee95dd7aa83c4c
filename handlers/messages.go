package handlers

import (
	"errors"
	"net/http"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// InboxHandler, iletişim formundan gelen mesajların admin ekranları.
type InboxHandler struct {
	*Base
	messages services.MessageService
}

// NewInboxHandler, constructor.
func NewInboxHandler(base *Base, messages services.MessageService) *InboxHandler {
	return &InboxHandler{Base: base, messages: messages}
}

// Index godoc
// GET /admin/messages
func (h *InboxHandler) Index(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.List(r.Context(), principal(r).Auth)
	if err != nil {
		h.fail(w, r, err, "admin/messages", h.page(r, "admin.messages", []models.Message{}))
		return
	}
	p := h.page(r, "admin.messages", msgs)
	p.Notice = noticeFrom(r, p)
	h.render.Render(w, http.StatusOK, "admin/messages", p)
}

// Show godoc
// GET /admin/messages/{id}
//
// Okunmamış mesaj açıldığında okundu işaretlenir.
func (h *InboxHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	msg, err := h.messages.Open(r.Context(), principal(r).Auth, id)
	if errors.Is(err, pkg.ErrNotFound) {
		h.notFound(w, r, "admin")
		return
	}
	if err != nil {
		h.fail(w, r, err, "admin/message", h.page(r, "admin.messages", &models.Message{ID: id}))
		return
	}
	h.render.Render(w, http.StatusOK, "admin/message", h.page(r, "admin.messages", msg))
}

// SetRead godoc
// POST /admin/messages/{id}/read    (read=0 → okunmadı)
func (h *InboxHandler) SetRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	read := r.PostFormValue("read") != "0"
	if _, err := h.messages.SetRead(r.Context(), principal(r).Auth, id, read); err != nil {
		h.listFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/messages?saved=1", http.StatusSeeOther)
}

// Delete godoc
// POST /admin/messages/{id}/delete
func (h *InboxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	if err := h.messages.Delete(r.Context(), principal(r).Auth, id); err != nil {
		h.listFailed(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/messages?deleted=1", http.StatusSeeOther)
}

func (h *InboxHandler) listFailed(w http.ResponseWriter, r *http.Request, err error) {
	msgs, _ := h.messages.List(r.Context(), principal(r).Auth)
	h.fail(w, r, err, "admin/messages", h.page(r, "admin.messages", msgs))
}
