package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/portfolyo/site/pkg"
)

// APIError, backend'in 2xx dışı bir yanıtı.
//
// Err her zaman bir pkg sentinel'idir; çağıran taraf
// errors.Is(err, pkg.ErrUnauthorized) gibi kontrol eder.
type APIError struct {
	Status int
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error { return e.Err }

// sentinelFor, HTTP status'u domain hatasına eşler.
func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return pkg.ErrUnauthorized
	case http.StatusForbidden:
		return pkg.ErrForbidden
	case http.StatusNotFound:
		return pkg.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkg.ErrBadRequest
	case http.StatusConflict:
		return pkg.ErrConflict
	default:
		return pkg.ErrUpstream
	}
}

// newAPIError, yanıt gövdesinden FastAPI "detail" alanını çıkarır.
//
// detail iki biçimde gelebilir:
//
//	{"detail": "Incorrect email or password"}
//	{"detail": [{"loc": ["body", "title"], "msg": "field required"}]}
func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		Status: status,
		Detail: parseDetail(body),
		Err:    sentinelFor(status),
	}
}

func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if len(it.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
