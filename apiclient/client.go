// Package apiclient, portfolyo REST backend'inin Go istemcisi.
//
// İstemci durumsuzdur: sadece değişmez yapılandırma (base URL, *http.Client)
// tutar. Token saklamaz, cache'lemez, tekrar denemez. Yetki gerektiren her
// çağrı açık bir models.AuthContext alır ve "Authorization: Bearer <token>"
// header'ı gönderir.
//
// 2xx dışı yanıtlar *APIError olarak döner; APIError.Err bir pkg sentinel'idir
// (pkg.ErrUnauthorized, pkg.ErrNotFound, ...). Ağ hataları pkg.ErrUpstream sarar.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

// maxResponseBody, okunacak yanıt gövdesinin üst sınırı.
const maxResponseBody = 10 << 20

// Client, backend REST istemcisi. Eşzamanlı kullanıma uygundur.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New, yeni bir Client oluşturur.
// baseURL: "http://localhost:8000/api/v1" biçiminde, sonda "/" olmadan.
func New(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTransportConfig())
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// BaseURL, yapılandırılmış backend adresini döner.
func (c *Client) BaseURL() string { return c.baseURL }

// request, tek bir backend çağrısının parametreleri.
type request struct {
	method      string
	path        string
	auth        *models.AuthContext
	body        io.Reader
	contentType string
}

// do, isteği gönderir ve 2xx yanıt gövdesini out'a decode eder (out nil olabilir).
func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", r.method, r.path, err)
	}

	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.auth != nil {
		req.Header.Set("Authorization", r.auth.Header())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w: %v", r.method, r.path, pkg.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response %s %s: %w: %v", r.method, r.path, pkg.ErrUpstream, err)
	}

	c.log.Debug("backend request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response %s %s: %w: %v", r.method, r.path, pkg.ErrUpstream, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, auth *models.AuthContext, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, auth: auth}, out)
}

func (c *Client) delete(ctx context.Context, path string, auth *models.AuthContext) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, auth: auth}, nil)
}

// sendJSON, payload'ı JSON olarak gönderir.
func (c *Client) sendJSON(ctx context.Context, method, path string, auth *models.AuthContext, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request %s %s: %w", method, path, err)
	}
	return c.do(ctx, request{
		method:      method,
		path:        path,
		auth:        auth,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, out)
}

// sendForm, url-encoded form gönderir (OAuth2 password flow).
func (c *Client) sendForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, out)
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
