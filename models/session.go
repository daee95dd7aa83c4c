package models

import "time"

// Session, bir admin tarayıcı oturumu.
//
// Cookie'de sadece ID taşınır. Backend'in bearer token'ı SQLite'ta
// şifreli saklanır (EncryptedToken); tarayıcı token'ı hiç görmez.
type Session struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	EncryptedToken string    `json:"-"`
	Language       string    `json:"language"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired, oturum süresi dolduysa true döner.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
