package models

import "time"

// About, public sitedeki "hakkımda" profil verisi.
// Backend tek bir kayıt tutar; POST /resources/about upsert yapar.
type About struct {
	ID           int64             `json:"id,omitempty"`
	FullName     string            `json:"full_name"`
	Title        string            `json:"title"`
	TitleEN      string            `json:"title_en,omitempty"`
	Bio          string            `json:"bio"`
	BioEN        string            `json:"bio_en,omitempty"`
	ProfileImage string            `json:"profile_image"`
	CVURL        string            `json:"cv_url"`
	CVURLEN      string            `json:"cv_url_en,omitempty"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Location     string            `json:"location"`
	Skills       []map[string]any  `json:"skills"`
	Experience   []map[string]any  `json:"experience"`
	Education    []map[string]any  `json:"education"`
	SocialLinks  map[string]string `json:"social_links"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

// LocalizedTitle, dile göre unvan döner.
func (a About) LocalizedTitle(lang string) string {
	return pick(lang, a.Title, &a.TitleEN)
}

// LocalizedBio, dile göre biyografi döner.
func (a About) LocalizedBio(lang string) string {
	return pick(lang, a.Bio, &a.BioEN)
}

// LocalizedCV, dile göre CV linki döner.
func (a About) LocalizedCV(lang string) string {
	return pick(lang, a.CVURL, &a.CVURLEN)
}
