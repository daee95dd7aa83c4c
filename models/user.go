// Package models, uygulamanın domain modellerini tanımlar.
//
// Modeller harici REST backend'in JSON şemalarının Go karşılığıdır.
// json tag'leri backend'in alan adlarıyla birebir aynıdır.
// Create/Update request'leri kendi Validate() metodlarını taşır;
// zorunlu alan eksikse backend'e hiç gidilmez.
package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// User, backend'in GET /auth/me yanıtı.
type User struct {
	ID             int64   `json:"id"`
	Email          *string `json:"email"`
	FullName       *string `json:"full_name"`
	IsActive       bool    `json:"is_active"`
	IsSuperuser    bool    `json:"is_superuser"`
	Title          *string `json:"title"`
	Bio            *string `json:"bio"`
	AvatarURL      *string `json:"avatar_url"`
	CVURL          *string `json:"cv_url"`
	SocialGithub   *string `json:"social_github"`
	SocialLinkedin *string `json:"social_linkedin"`
	SocialTwitter  *string `json:"social_twitter"`
}

// UpdateUserRequest, PUT /auth/me için.
// Backend bu alanları query parameter olarak bekler; boş olanlar gönderilmez.
type UpdateUserRequest struct {
	FullName string
	Email    string
	Password string
}

// LoginRequest, admin login formundan gelen veri.
type LoginRequest struct {
	Email    string
	Password string
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email is invalid")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
