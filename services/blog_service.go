package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

// BlogService interface'i.
type BlogService interface {
	// List, tüm yazıları yeniden eskiye döner (taslaklar dahil).
	List(ctx context.Context) ([]models.BlogPost, error)
	// Published, sadece yayındaki yazıları döner.
	Published(ctx context.Context) ([]models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	GetByID(ctx context.Context, id int64) (*models.BlogPost, error)
	Create(ctx context.Context, auth models.AuthContext, in *models.BlogPostInput) (*models.BlogPost, error)
	Update(ctx context.Context, auth models.AuthContext, id int64, in *models.BlogPostInput) (*models.BlogPost, error)
	Delete(ctx context.Context, auth models.AuthContext, id int64) error
}

type blogService struct {
	backend BlogBackend
}

// NewBlogService, constructor.
func NewBlogService(backend BlogBackend) BlogService {
	return &blogService{backend: backend}
}

func (s *blogService) List(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.backend.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *blogService) Published(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := posts[:0]
	for _, p := range posts {
		if p.IsPublished {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetBySlug, yayındaki yazıyı slug ile bulur. Backend slug endpoint'i
// sunmadığı için liste üzerinden arar.
func (s *blogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	posts, err := s.Published(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: blog post %q", pkg.ErrNotFound, slug)
}

func (s *blogService) GetByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	posts, err := s.backend.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: blog post %d", pkg.ErrNotFound, id)
}

func (s *blogService) Create(ctx context.Context, auth models.AuthContext, in *models.BlogPostInput) (*models.BlogPost, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.CreateBlogPost(ctx, auth, *in)
}

func (s *blogService) Update(ctx context.Context, auth models.AuthContext, id int64, in *models.BlogPostInput) (*models.BlogPost, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.UpdateBlogPost(ctx, auth, id, *in)
}

func (s *blogService) Delete(ctx context.Context, auth models.AuthContext, id int64) error {
	return s.backend.DeleteBlogPost(ctx, auth, id)
}
