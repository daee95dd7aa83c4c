package apiclient

import (
	"context"
	"net/http"

	"github.com/portfolyo/site/models"
)

// ─── Services ("hizmetler") ───

// ListOfferings, GET /resources/services
func (c *Client) ListOfferings(ctx context.Context) ([]models.Offering, error) {
	var out []models.Offering
	if err := c.get(ctx, "/resources/services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOffering, POST /resources/services
func (c *Client) CreateOffering(ctx context.Context, auth models.AuthContext, in models.OfferingInput) (*models.Offering, error) {
	var out models.Offering
	if err := c.sendJSON(ctx, http.MethodPost, "/resources/services", &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Timeline ───

// ListTimeline, GET /resources/timeline: "order" sırasıyla.
func (c *Client) ListTimeline(ctx context.Context) ([]models.TimelineItem, error) {
	var out []models.TimelineItem
	if err := c.get(ctx, "/resources/timeline", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTimeline, POST /resources/timeline
func (c *Client) CreateTimeline(ctx context.Context, auth models.AuthContext, in models.TimelineInput) (*models.TimelineItem, error) {
	var out models.TimelineItem
	if err := c.sendJSON(ctx, http.MethodPost, "/resources/timeline", &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTimeline, PUT /resources/timeline/{id}
func (c *Client) UpdateTimeline(ctx context.Context, auth models.AuthContext, id int64, in models.TimelineInput) (*models.TimelineItem, error) {
	var out models.TimelineItem
	if err := c.sendJSON(ctx, http.MethodPut, idPath("/resources/timeline", id), &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTimeline, DELETE /resources/timeline/{id}
func (c *Client) DeleteTimeline(ctx context.Context, auth models.AuthContext, id int64) error {
	return c.delete(ctx, idPath("/resources/timeline", id), &auth)
}

// ─── Messages ───

// SendMessage, POST /resources/messages: public iletişim formu, yetki gerekmez.
func (c *Client) SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error) {
	var out models.Message
	if err := c.sendJSON(ctx, http.MethodPost, "/resources/messages", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessages, GET /resources/messages
func (c *Client) ListMessages(ctx context.Context, auth models.AuthContext) ([]models.Message, error) {
	var out []models.Message
	if err := c.get(ctx, "/resources/messages", &auth, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMessage, PUT /resources/messages/{id}
func (c *Client) UpdateMessage(ctx context.Context, auth models.AuthContext, id int64, in models.MessageUpdate) (*models.Message, error) {
	var out models.Message
	if err := c.sendJSON(ctx, http.MethodPut, idPath("/resources/messages", id), &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMessage, DELETE /resources/messages/{id}
func (c *Client) DeleteMessage(ctx context.Context, auth models.AuthContext, id int64) error {
	return c.delete(ctx, idPath("/resources/messages", id), &auth)
}

// ─── Blog ───

// ListBlogPosts, GET /resources/blog
func (c *Client) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	var out []models.BlogPost
	if err := c.get(ctx, "/resources/blog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBlogPost, POST /resources/blog
func (c *Client) CreateBlogPost(ctx context.Context, auth models.AuthContext, in models.BlogPostInput) (*models.BlogPost, error) {
	var out models.BlogPost
	if err := c.sendJSON(ctx, http.MethodPost, "/resources/blog", &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBlogPost, PUT /resources/blog/{id}
func (c *Client) UpdateBlogPost(ctx context.Context, auth models.AuthContext, id int64, in models.BlogPostInput) (*models.BlogPost, error) {
	var out models.BlogPost
	if err := c.sendJSON(ctx, http.MethodPut, idPath("/resources/blog", id), &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBlogPost, DELETE /resources/blog/{id}
func (c *Client) DeleteBlogPost(ctx context.Context, auth models.AuthContext, id int64) error {
	return c.delete(ctx, idPath("/resources/blog", id), &auth)
}

// ─── About ───

// GetAbout, GET /resources/about
func (c *Client) GetAbout(ctx context.Context) (*models.About, error) {
	var out models.About
	if err := c.get(ctx, "/resources/about", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveAbout, POST /resources/about: upsert.
func (c *Client) SaveAbout(ctx context.Context, auth models.AuthContext, in models.About) (*models.About, error) {
	var out models.About
	if err := c.sendJSON(ctx, http.MethodPost, "/resources/about", &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Settings ───

// GetSettings, GET /resources/settings
func (c *Client) GetSettings(ctx context.Context) (*models.Settings, error) {
	var out models.Settings
	if err := c.get(ctx, "/resources/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSettings, POST /resources/settings: upsert.
func (c *Client) SaveSettings(ctx context.Context, auth models.AuthContext, in models.Settings) (*models.Settings, error) {
	var out models.Settings
	if err := c.sendJSON(ctx, http.MethodPost, "/resources/settings", &auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
