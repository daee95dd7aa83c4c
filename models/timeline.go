package models

import (
	"fmt"
	"strings"
)

// TimelineIcons, zaman çizelgesi kayıtları için izin verilen ikonlar.
var TimelineIcons = []string{"work", "school", "laptop_mac", "star"}

// TimelineItem, "hakkımda" bölümündeki zaman çizelgesinin bir kaydı.
type TimelineItem struct {
	ID          int64  `json:"id"`
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

// TimelineInput, zaman çizelgesi formu.
type TimelineInput struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

// Validate, TimelineInput'u kontrol eder. İkon boşsa "work" kullanılır.
func (r *TimelineInput) Validate() error {
	r.Year = strings.TrimSpace(r.Year)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Year == "" || r.Title == "" || r.Description == "" {
		return fmt.Errorf("year, title and description are required")
	}
	if r.Icon == "" {
		r.Icon = TimelineIcons[0]
	}
	valid := false
	for _, icon := range TimelineIcons {
		if icon == r.Icon {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown icon: %s", r.Icon)
	}
	if r.Order < 0 {
		return fmt.Errorf("order cannot be negative")
	}
	return nil
}
