// Package crypto, admin oturumlarındaki backend token'larını SQLite'ta
// şifreli saklar. Veritabanı dosyası sızsa bile token'lar SESSION_SECRET
// olmadan okunamaz.
//
// Şifreleme AES-256-GCM'dir; anahtar secret'tan HKDF-SHA256 ile türetilir.
// Her kayıt kendi bağlamına (oturum id'si) bağlanır: bir satırın şifreli
// token'ı başka bir oturum satırına kopyalanırsa açılmaz.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// keyInfo, HKDF "info" parametresi. Aynı secret'tan başka amaçla
// türetilecek anahtarlar farklı info kullanmalı.
const keyInfo = "portfolyo session token v1"

// ErrOpen, şifreli değer çözülemediğinde döner (yanlış anahtar,
// bozuk veri veya farklı bağlam).
var ErrOpen = errors.New("crypto: cannot open sealed value")

// Sealer, tek bir anahtarla şifreleyip çözen AEAD sarmalayıcısı.
// Goroutine-safe'dir.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer, secret'tan anahtar türetir. Boş secret kabul edilmez.
func NewSealer(secret string) (*Sealer, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// DeriveKey, secret'tan 32 byte'lık AES-256 anahtarı türetir.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("crypto: secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return key, nil
}

// Seal, plaintext'i context'e bağlı olarak şifreler.
// Çıktı: base64url(nonce || ciphertext || tag), padding'siz.
func (s *Sealer) Seal(plaintext, context string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(context))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open, Seal'in çıktısını aynı context ile çözer.
func (s *Sealer) Open(sealed, context string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(data) < s.aead.NonceSize()+s.aead.Overhead() {
		return "", ErrOpen
	}
	n := s.aead.NonceSize()
	plaintext, err := s.aead.Open(nil, data[:n], data[n:], []byte(context))
	if err != nil {
		return "", ErrOpen
	}
	return string(plaintext), nil
}
