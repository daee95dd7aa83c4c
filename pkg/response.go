package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// APIResponse, admin JSON endpoint'lerinin zarfı. admin.js her yanıtta
// önce success'e bakar, sonra data'yı ya da error'u kullanır.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı yanıtı data ile gönderir.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, APIResponse{Success: true, Data: data})
}

// Error, domain error'ından status'u türetip err.Error()'ı mesaj yapar.
// Kullanıcıya gösterilecek mesaj gerekiyorsa ErrorWithMessage kullanılır.
func Error(w http.ResponseWriter, err error) {
	ErrorWithMessage(w, StatusFor(err), err.Error())
}

// ErrorWithMessage, hata yanıtını verilen mesajla gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	write(w, status, APIResponse{Error: message})
}

func write(w http.ResponseWriter, status int, resp APIResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// statusTable, sentinel → HTTP status. Sıra önemli: bir hata birden
// fazla sentinel'i sarıyorsa ilk eşleşen kazanır.
var statusTable = []struct {
	err    error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrConflict, http.StatusConflict},
	{ErrBadRequest, http.StatusBadRequest},
	{ErrUpstream, http.StatusBadGateway},
}

// StatusFor, domain error'ını HTTP status'a çevirir (wrap edilmiş hatalar
// dahil). HTML handler'ları da sayfa status'u için bunu kullanır.
// Tanınmayan hata 500'dür.
func StatusFor(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
