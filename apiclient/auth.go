package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/portfolyo/site/models"
)

// Login, POST /auth/login: OAuth2 password flow.
// Backend e-postayı "username" alanında bekler.
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok models.TokenResponse
	if err := c.sendForm(ctx, "/auth/login", form, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me, GET /auth/me
func (c *Client) Me(ctx context.Context, auth models.AuthContext) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/auth/me", &auth, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe, PUT /auth/me
// Alanlar query parameter olarak gider; boş alanlar değişmez.
func (c *Client) UpdateMe(ctx context.Context, auth models.AuthContext, req models.UpdateUserRequest) (*models.User, error) {
	q := url.Values{}
	if req.FullName != "" {
		q.Set("full_name", req.FullName)
	}
	if req.Email != "" {
		q.Set("email", req.Email)
	}
	if req.Password != "" {
		q.Set("password", req.Password)
	}
	path := "/auth/me"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var user models.User
	if err := c.do(ctx, request{method: http.MethodPut, path: path, auth: &auth}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
