package apiclient

import (
	"context"
	"net/http"

	"github.com/portfolyo/site/models"
)

// ListProjects, GET /projects/: backend "order" kolonuna göre sıralı döner.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.get(ctx, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject, GET /projects/{id}
func (c *Client) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	var p models.Project
	if err := c.get(ctx, idPath("/projects", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject, POST /projects/
func (c *Client) CreateProject(ctx context.Context, auth models.AuthContext, in models.ProjectInput) (*models.Project, error) {
	var p models.Project
	if err := c.sendJSON(ctx, http.MethodPost, "/projects/", &auth, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject, PUT /projects/{id}
func (c *Client) UpdateProject(ctx context.Context, auth models.AuthContext, id int64, in models.ProjectInput) (*models.Project, error) {
	var p models.Project
	if err := c.sendJSON(ctx, http.MethodPut, idPath("/projects", id), &auth, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject, DELETE /projects/{id}
func (c *Client) DeleteProject(ctx context.Context, auth models.AuthContext, id int64) error {
	return c.delete(ctx, idPath("/projects", id), &auth)
}

// ReorderProjects, POST /projects/reorder
//
// Gövde sıralı id dizisidir: [3,1,2,4]. Backend her projeye dizideki
// indeksini "order" olarak yazar ve yeni sırayla listeyi döner.
func (c *Client) ReorderProjects(ctx context.Context, auth models.AuthContext, ids []int64) ([]models.Project, error) {
	if ids == nil {
		ids = []int64{}
	}
	var projects []models.Project
	if err := c.sendJSON(ctx, http.MethodPost, "/projects/reorder", &auth, ids, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UploadProjectImage, POST /projects/upload-image: yanıt {"image_url": "..."}.
func (c *Client) UploadProjectImage(ctx context.Context, auth models.AuthContext, file File) (*models.UploadResult, error) {
	var resp struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.upload(ctx, "/projects/upload-image", auth, file, &resp); err != nil {
		return nil, err
	}
	return &models.UploadResult{URL: resp.ImageURL}, nil
}
