package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// BlogHandler, admin blog ekranları.
type BlogHandler struct {
	*Base
	blog    services.BlogService
	uploads services.UploadService
	maxSize int64
}

// NewBlogHandler, constructor.
func NewBlogHandler(base *Base, blog services.BlogService, uploads services.UploadService, maxSize int64) *BlogHandler {
	return &BlogHandler{Base: base, blog: blog, uploads: uploads, maxSize: maxSize}
}

type blogFormView struct {
	Post *models.BlogPost
}

// Index godoc
// GET /admin/blog
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "admin/blog", h.page(r, "admin.blog", []models.BlogPost{}))
		return
	}
	p := h.page(r, "admin.blog", posts)
	p.Notice = noticeFrom(r, p)
	h.render.Render(w, http.StatusOK, "admin/blog", p)
}

// New godoc
// GET /admin/blog/new
func (h *BlogHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin/blog_form", h.page(r, "admin.blog", blogFormView{}))
}

// Edit godoc
// GET /admin/blog/{id}/edit
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	post, err := h.blog.GetByID(r.Context(), id)
	if errors.Is(err, pkg.ErrNotFound) {
		h.notFound(w, r, "admin")
		return
	}
	if err != nil {
		h.fail(w, r, err, "admin/blog_form", h.page(r, "admin.blog", blogFormView{}))
		return
	}
	h.render.Render(w, http.StatusOK, "admin/blog_form", h.page(r, "admin.blog", blogFormView{Post: post}))
}

// Create godoc
// POST /admin/blog
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update godoc
// POST /admin/blog/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	h.save(w, r, id)
}

func (h *BlogHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	page := h.page(r, "admin.blog", blogFormView{Post: &models.BlogPost{ID: id}})
	if err := parseMultipart(r, h.maxSize); err != nil {
		h.fail(w, r, err, "admin/blog_form", page)
		return
	}

	in := models.BlogPostInput{
		Title:       r.PostFormValue("title"),
		TitleEN:     r.PostFormValue("title_en"),
		Slug:        r.PostFormValue("slug"),
		Content:     r.PostFormValue("content"),
		ContentEN:   r.PostFormValue("content_en"),
		ImageURL:    r.PostFormValue("image_url"),
		ExternalURL: r.PostFormValue("external_url"),
		Tags:        splitList(r.PostFormValue("tags")),
		IsPublished: r.PostFormValue("is_published") == "on",
	}
	if err := in.Validate(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error()), "admin/blog_form", page)
		return
	}

	auth := principal(r).Auth
	if upload, ok, err := formFile(r, "image"); err != nil {
		h.fail(w, r, err, "admin/blog_form", page)
		return
	} else if ok {
		res, err := h.uploads.UploadFile(r.Context(), auth, upload)
		closeUpload(upload)
		if err != nil {
			h.fail(w, r, err, "admin/blog_form", page)
			return
		}
		in.ImageURL = res.URL
	}

	var err error
	if id == 0 {
		_, err = h.blog.Create(r.Context(), auth, &in)
	} else {
		_, err = h.blog.Update(r.Context(), auth, id, &in)
	}
	if err != nil {
		h.fail(w, r, err, "admin/blog_form", page)
		return
	}
	http.Redirect(w, r, "/admin/blog?saved=1", http.StatusSeeOther)
}

// Delete godoc
// POST /admin/blog/{id}/delete
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.notFound(w, r, "admin")
		return
	}
	if err := h.blog.Delete(r.Context(), principal(r).Auth, id); err != nil {
		posts, _ := h.blog.List(r.Context())
		h.fail(w, r, err, "admin/blog", h.page(r, "admin.blog", posts))
		return
	}
	http.Redirect(w, r, "/admin/blog?deleted=1", http.StatusSeeOther)
}
