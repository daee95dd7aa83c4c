package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Project, portfolyodaki bir proje kaydı.
// Backend listeyi "order" kolonuna göre sıralı döner.
type Project struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	TitleEN       *string    `json:"title_en,omitempty"`
	Description   string     `json:"description"`
	DescriptionEN *string    `json:"description_en,omitempty"`
	ImageURL      *string    `json:"image_url"`
	GithubURL     *string    `json:"github_url"`
	LiveURL       *string    `json:"live_url"`
	Technologies  []string   `json:"technologies"`
	IsFeatured    bool       `json:"is_featured"`
	IsPublished   bool       `json:"is_published"`
	Order         int        `json:"order"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// ItemID, reorder.Editor'ün kimlik olarak kullandığı değer.
func (p Project) ItemID() int64 { return p.ID }

// LocalizedTitle, dile göre başlık döner; İngilizce yoksa Türkçe'ye düşer.
func (p Project) LocalizedTitle(lang string) string {
	return pick(lang, p.Title, p.TitleEN)
}

// LocalizedDescription, dile göre açıklama döner.
func (p Project) LocalizedDescription(lang string) string {
	return pick(lang, p.Description, p.DescriptionEN)
}

// maxDescriptionLen, admin formundaki sayaçla aynı sınır.
const maxDescriptionLen = 250

// ProjectInput, proje oluşturma ve güncelleme formundan gelen veri.
// Backend'in ProjectCreate şeması ile aynı alanları taşır.
type ProjectInput struct {
	Title         string   `json:"title"`
	TitleEN       string   `json:"title_en,omitempty"`
	Description   string   `json:"description"`
	DescriptionEN string   `json:"description_en,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	GithubURL     string   `json:"github_url,omitempty"`
	LiveURL       string   `json:"live_url,omitempty"`
	Technologies  []string `json:"technologies"`
	IsFeatured    bool     `json:"is_featured"`
	IsPublished   bool     `json:"is_published"`
}

// Validate, ProjectInput'un geçerli olup olmadığını kontrol eder.
func (r *ProjectInput) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLen ||
		utf8.RuneCountInString(r.DescriptionEN) > maxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLen)
	}
	if r.Technologies == nil {
		r.Technologies = []string{}
	}
	return nil
}

// pick, lang "en" ise ve İngilizce değer doluysa onu, aksi halde Türkçe'yi döner.
func pick(lang, tr string, en *string) string {
	if lang == "en" && en != nil && strings.TrimSpace(*en) != "" {
		return *en
	}
	return tr
}
