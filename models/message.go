package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, iletişim formundan gelen bir mesaj.
type Message struct {
	ID          int64     `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// maxMessageLen, iletişim formu içeriği için üst sınır.
const maxMessageLen = 5000

// MessageInput, public iletişim formu.
type MessageInput struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
}

// Validate, MessageInput'u kontrol eder. Konu boşsa "-" gönderilir
// (backend şeması subject'i zorunlu tutar).
func (r *MessageInput) Validate() error {
	r.SenderName = strings.TrimSpace(r.SenderName)
	r.SenderEmail = strings.TrimSpace(r.SenderEmail)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Content = strings.TrimSpace(r.Content)

	if r.SenderName == "" {
		return fmt.Errorf("name is required")
	}
	if r.SenderEmail == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(r.SenderEmail); err != nil {
		return fmt.Errorf("email is invalid")
	}
	if r.Content == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(r.Content) > maxMessageLen {
		return fmt.Errorf("message must be at most %d characters", maxMessageLen)
	}
	if r.Subject == "" {
		r.Subject = "-"
	}
	return nil
}

// MessageUpdate, PUT /resources/messages/{id} gövdesi.
type MessageUpdate struct {
	IsRead *bool `json:"is_read,omitempty"`
}
