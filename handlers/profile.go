package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// ProfileHandler, "hakkımda", site ayarları ve genel dosya yükleme ekranları.
type ProfileHandler struct {
	*Base
	about    services.AboutService
	settings services.SettingsService
	uploads  services.UploadService
	maxSize  int64
}

// NewProfileHandler, constructor.
func NewProfileHandler(
	base *Base,
	about services.AboutService,
	settings services.SettingsService,
	uploads services.UploadService,
	maxSize int64,
) *ProfileHandler {
	return &ProfileHandler{Base: base, about: about, settings: settings, uploads: uploads, maxSize: maxSize}
}

// aboutView, liste alanları textarea'da JSON olarak düzenlenir.
type aboutView struct {
	About      *models.About
	Skills     string
	Experience string
	Education  string
}

func newAboutView(a *models.About) aboutView {
	return aboutView{
		About:      a,
		Skills:     toJSON(a.Skills),
		Experience: toJSON(a.Experience),
		Education:  toJSON(a.Education),
	}
}

func toJSON(v []map[string]any) string {
	if len(v) == 0 {
		return "[]"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}

func fromJSON(field, s string) ([]map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []map[string]any{}, nil
	}
	var out []map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("%w: %s must be a JSON list", pkg.ErrBadRequest, field)
	}
	return out, nil
}

// About godoc
// GET /admin/about
func (h *ProfileHandler) About(w http.ResponseWriter, r *http.Request) {
	about, err := h.about.Get(r.Context())
	if err != nil {
		h.fail(w, r, err, "admin/about", h.page(r, "admin.about", newAboutView(&models.About{})))
		return
	}
	p := h.page(r, "admin.about", newAboutView(about))
	p.Notice = noticeFrom(r, p)
	h.render.Render(w, http.StatusOK, "admin/about", p)
}

// SaveAbout godoc
// POST /admin/about
//
// Profil görseli ve CV dosyası seçildiyse önce yüklenir, dönen URL'ler
// kayda yazılır.
func (h *ProfileHandler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	in := &models.About{}
	page := h.page(r, "admin.about", newAboutView(in))
	if err := parseMultipart(r, h.maxSize); err != nil {
		h.fail(w, r, err, "admin/about", page)
		return
	}

	in.FullName = strings.TrimSpace(r.PostFormValue("full_name"))
	in.Title = r.PostFormValue("title")
	in.TitleEN = r.PostFormValue("title_en")
	in.Bio = r.PostFormValue("bio")
	in.BioEN = r.PostFormValue("bio_en")
	in.ProfileImage = r.PostFormValue("profile_image")
	in.CVURL = r.PostFormValue("cv_url")
	in.CVURLEN = r.PostFormValue("cv_url_en")
	in.Email = r.PostFormValue("email")
	in.Phone = r.PostFormValue("phone")
	in.Location = r.PostFormValue("location")
	in.SocialLinks = map[string]string{}
	for _, key := range []string{"github", "linkedin", "twitter", "instagram"} {
		if v := strings.TrimSpace(r.PostFormValue("social_" + key)); v != "" {
			in.SocialLinks[key] = v
		}
	}

	var err error
	if in.Skills, err = fromJSON("skills", r.PostFormValue("skills")); err == nil {
		if in.Experience, err = fromJSON("experience", r.PostFormValue("experience")); err == nil {
			in.Education, err = fromJSON("education", r.PostFormValue("education"))
		}
	}
	if err != nil {
		h.fail(w, r, err, "admin/about", page)
		return
	}

	auth := principal(r).Auth
	for field, target := range map[string]*string{"profile_file": &in.ProfileImage, "cv_file": &in.CVURL} {
		upload, ok, err := formFile(r, field)
		if err != nil {
			h.fail(w, r, err, "admin/about", page)
			return
		}
		if !ok {
			continue
		}
		res, err := h.uploads.UploadFile(r.Context(), auth, upload)
		closeUpload(upload)
		if err != nil {
			h.fail(w, r, err, "admin/about", page)
			return
		}
		*target = res.URL
	}

	if _, err := h.about.Save(r.Context(), auth, in); err != nil {
		h.fail(w, r, err, "admin/about", page)
		return
	}
	http.Redirect(w, r, "/admin/about?saved=1", http.StatusSeeOther)
}

// Settings godoc
// GET /admin/settings
func (h *ProfileHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		d := models.DefaultSettings()
		h.fail(w, r, err, "admin/settings", h.page(r, "admin.settings", &d))
		return
	}
	p := h.page(r, "admin.settings", settings)
	p.Notice = noticeFrom(r, p)
	h.render.Render(w, http.StatusOK, "admin/settings", p)
}

// SaveSettings godoc
// POST /admin/settings
func (h *ProfileHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	in := &models.Settings{}
	page := h.page(r, "admin.settings", in)
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: invalid form", pkg.ErrBadRequest), "admin/settings", page)
		return
	}
	in.SiteTitle = r.PostFormValue("site_title")
	in.SiteDescription = r.PostFormValue("site_description")
	in.SiteKeywords = r.PostFormValue("site_keywords")
	in.SiteAuthor = r.PostFormValue("site_author")
	in.SiteURL = r.PostFormValue("site_url")
	in.AnalyticsID = r.PostFormValue("analytics_id")
	in.ContactEmail = r.PostFormValue("contact_email")
	in.SocialGithub = r.PostFormValue("social_github")
	in.SocialLinkedin = r.PostFormValue("social_linkedin")
	in.SocialTwitter = r.PostFormValue("social_twitter")
	in.SocialInstagram = r.PostFormValue("social_instagram")
	in.ThemePrimaryColor = r.PostFormValue("theme_primary_color")
	in.ThemeSecondaryColor = r.PostFormValue("theme_secondary_color")

	if _, err := h.settings.Save(r.Context(), principal(r).Auth, in); err != nil {
		h.fail(w, r, err, "admin/settings", page)
		return
	}
	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}

// UploadPage godoc
// GET /admin/upload
func (h *ProfileHandler) UploadPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin/upload", h.page(r, "admin.upload", (*models.UploadResult)(nil)))
}

// Upload godoc
// POST /admin/upload
//
// Yüklenen dosyanın URL'i sayfada kopyalanabilir şekilde gösterilir.
func (h *ProfileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	page := h.page(r, "admin.upload", (*models.UploadResult)(nil))
	if err := parseMultipart(r, h.maxSize); err != nil {
		h.fail(w, r, err, "admin/upload", page)
		return
	}
	upload, ok, err := formFile(r, "file")
	if err == nil && !ok {
		err = fmt.Errorf("%w: file is required", pkg.ErrBadRequest)
	}
	if err != nil {
		h.fail(w, r, err, "admin/upload", page)
		return
	}
	defer closeUpload(upload)

	res, err := h.uploads.UploadFile(r.Context(), principal(r).Auth, upload)
	if err != nil {
		h.fail(w, r, err, "admin/upload", page)
		return
	}
	page.Data = res
	page.Notice = page.L.T("admin.uploaded")
	h.render.Render(w, http.StatusOK, "admin/upload", page)
}
