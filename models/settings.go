package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Settings, site genelindeki ayarlar (başlık, sosyal linkler, tema renkleri).
type Settings struct {
	ID                  int64      `json:"id,omitempty"`
	SiteTitle           string     `json:"site_title"`
	SiteDescription     string     `json:"site_description"`
	SiteKeywords        string     `json:"site_keywords"`
	SiteAuthor          string     `json:"site_author"`
	SiteURL             string     `json:"site_url"`
	AnalyticsID         string     `json:"analytics_id"`
	ContactEmail        string     `json:"contact_email"`
	SocialGithub        string     `json:"social_github"`
	SocialLinkedin      string     `json:"social_linkedin"`
	SocialTwitter       string     `json:"social_twitter"`
	SocialInstagram     string     `json:"social_instagram"`
	ThemePrimaryColor   string     `json:"theme_primary_color"`
	ThemeSecondaryColor string     `json:"theme_secondary_color"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// DefaultSettings, backend henüz ayar kaydı oluşturmamışsa kullanılan değerler.
func DefaultSettings() Settings {
	return Settings{
		SiteTitle:           "Portfolio",
		ThemePrimaryColor:   "#6366f1",
		ThemeSecondaryColor: "#8b5cf6",
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate, ayar formunu kontrol eder.
func (s *Settings) Validate() error {
	s.SiteTitle = strings.TrimSpace(s.SiteTitle)
	if s.SiteTitle == "" {
		return fmt.Errorf("site title is required")
	}
	for _, c := range []string{s.ThemePrimaryColor, s.ThemeSecondaryColor} {
		if c != "" && !hexColor.MatchString(c) {
			return fmt.Errorf("invalid color: %s", c)
		}
	}
	return nil
}
