package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/services"
)

// Page, her template'e geçilen ortak veri.
// Sayfaya özel veri Data alanında taşınır.
type Page struct {
	Lang      string
	L         *i18n.Localizer
	Title     string
	Path      string
	Principal *services.Principal
	Error     string
	Notice    string
	// Form, doğrulama hatasında formu kullanıcının girdiği değerlerle
	// yeniden doldurmak için kullanılır.
	Form url.Values
	Data any
}

// Renderer, gömülü template'leri sayfa başına bir kere parse eder.
//
// templates/layouts/{group}.html "layout" template'ini tanımlar;
// templates/{group}/*.html her biri "title" ve "content" tanımlar.
// Sayfa adı "group/dosya" biçimindedir: "site/home", "admin/projects".
type Renderer struct {
	pages map[string]*template.Template
	log   *zap.Logger
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time, lang string) string {
		if t.IsZero() {
			return ""
		}
		if lang == "en" {
			return t.Format("Jan 2, 2006")
		}
		return t.Format("02.01.2006")
	},
	"join": strings.Join,
	"list": func(s ...string) []string { return s },
	"inc":  func(i int) int { return i + 1 },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// NewRenderer, fsys içindeki template'leri parse eder.
func NewRenderer(fsys fs.FS, log *zap.Logger) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), log: log.Named("render")}

	for _, group := range []string{"site", "admin"} {
		files, err := fs.Glob(fsys, "templates/"+group+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			name := group + "/" + strings.TrimSuffix(path.Base(file), ".html")
			t, err := template.New(path.Base(file)).Funcs(templateFuncs).
				ParseFS(fsys, "templates/layouts/"+group+".html", file)
			if err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
			}
			r.pages[name] = t
		}
	}

	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no templates found")
	}
	return r, nil
}

// Has, sayfa template'i varsa true.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render, sayfayı önce buffer'a yazar: template hatası yarım HTML
// göndermek yerine 500 olarak döner.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		r.log.Error("unknown template", zap.String("name", name))
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.log.Error("template execution failed", zap.String("name", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
