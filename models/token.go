package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenResponse, backend'in POST /auth/login yanıtı.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenClaims, backend'in ürettiği JWT'nin payload'ı.
// Backend token'ı "sub" (kullanıcı id) ve "exp" ile imzalar.
// İmzayı biz doğrulamayız; anahtar backend'de. Sadece exp'i okuruz.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// AuthContext, authenticated bir backend çağrısı için gereken her şeyi taşır.
//
// Global token storage yerine her API çağrısına açıkça geçilir.
// Expiry sözleşmesi: ExpiresAt geçtiyse context kullanılamaz,
// sessizce yenilenmez; kullanıcı tekrar login olur.
type AuthContext struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// Valid, token boş değilse ve süresi dolmadıysa true döner.
func (a AuthContext) Valid(now time.Time) bool {
	return a.Token != "" && now.Before(a.ExpiresAt)
}

// Header, Authorization header değerini döner.
func (a AuthContext) Header() string {
	return "Bearer " + a.Token
}

// NewAuthContext, bearer token'dan AuthContext oluşturur.
// Token bir JWT ise expiry "exp" claim'inden okunur; opaque token'larda
// (veya exp yoksa) now+fallbackTTL kullanılır.
func NewAuthContext(token string, now time.Time, fallbackTTL time.Duration) AuthContext {
	token = StripBearer(strings.TrimSpace(token))
	ac := AuthContext{
		Token:     token,
		ExpiresAt: now.Add(fallbackTTL),
	}

	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ac
	}
	ac.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		ac.ExpiresAt = claims.ExpiresAt.Time
	}
	return ac
}

// StripBearer, "Bearer " prefix'ini (büyük/küçük harf duyarsız) kaldırır.
func StripBearer(s string) string {
	if len(s) >= 7 && strings.EqualFold(s[:7], "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
