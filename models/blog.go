package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BlogPost, bir blog yazısı. ExternalURL doluysa yazı harici bir siteye
// (ör: Medium) yönlendirir, içerik kısa bir özettir.
type BlogPost struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	TitleEN     *string    `json:"title_en,omitempty"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	ContentEN   *string    `json:"content_en,omitempty"`
	ImageURL    *string    `json:"image_url"`
	ExternalURL *string    `json:"external_url"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// LocalizedTitle, dile göre başlık döner.
func (b BlogPost) LocalizedTitle(lang string) string {
	return pick(lang, b.Title, b.TitleEN)
}

// LocalizedContent, dile göre içerik döner.
func (b BlogPost) LocalizedContent(lang string) string {
	return pick(lang, b.Content, b.ContentEN)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BlogPostInput, blog oluşturma/güncelleme formu.
type BlogPostInput struct {
	Title       string   `json:"title"`
	TitleEN     string   `json:"title_en,omitempty"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	ContentEN   string   `json:"content_en,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	ExternalURL string   `json:"external_url,omitempty"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

// Validate, BlogPostInput'u kontrol eder. Slug boşsa başlıktan türetilir.
func (r *BlogPostInput) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Slug = strings.TrimSpace(r.Slug)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}
	if r.Slug == "" {
		r.Slug = Slugify(r.Title)
	}
	if !slugPattern.MatchString(r.Slug) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and dashes")
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return nil
}

// turkishFold, Türkçe karakterleri slug için ASCII karşılıklarına çevirir.
var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// Slugify, başlıktan URL dostu slug üretir: "Go'da Eşzamanlılık" → "go-da-eszamanlilik"
func Slugify(s string) string {
	s = strings.ToLower(turkishFold.Replace(s))

	var b strings.Builder
	dash := false
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
