package models

import (
	"fmt"
	"strings"
)

// Offering statüleri; backend Türkçe değerler saklar.
const (
	OfferingPublished = "Yayında"
	OfferingDraft     = "Taslak"
)

// Offering, public sitenin "hizmetler" bölümündeki bir kayıt.
// Backend'de /resources/services altında durur; Go tarafında
// katmanlardaki "service" kelimesiyle çakışmaması için Offering adını taşır.
type Offering struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	IconColor   *string  `json:"icon_color"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
}

// Published, hizmet public sitede gösterilecekse true.
func (o Offering) Published() bool {
	return o.Status == OfferingPublished
}

// OfferingInput, hizmet oluşturma formu.
type OfferingInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	IconColor   string   `json:"icon_color,omitempty"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
}

// Validate, OfferingInput'u kontrol eder.
func (r *OfferingInput) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Icon = strings.TrimSpace(r.Icon)
	if r.Title == "" || r.Description == "" || r.Icon == "" {
		return fmt.Errorf("title, description and icon are required")
	}
	switch r.Status {
	case "":
		r.Status = OfferingPublished
	case OfferingPublished, OfferingDraft:
	default:
		return fmt.Errorf("unknown status: %s", r.Status)
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return nil
}
