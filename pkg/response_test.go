package pkg

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("get project: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: token expired", ErrUnauthorized), http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("reorder: %w", ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: title is required", ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("POST /projects/reorder: %w: timeout", ErrUpstream), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]int{"version": 3})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"version":3}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Error(rec, fmt.Errorf("%w: editor not open", ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"not found: editor not open"}`, rec.Body.String())
}
