package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

// TimelineService interface'i.
type TimelineService interface {
	// List, kayıtları Order alanına göre sıralı döner.
	List(ctx context.Context) ([]models.TimelineItem, error)
	Get(ctx context.Context, id int64) (*models.TimelineItem, error)
	Create(ctx context.Context, auth models.AuthContext, in *models.TimelineInput) (*models.TimelineItem, error)
	Update(ctx context.Context, auth models.AuthContext, id int64, in *models.TimelineInput) (*models.TimelineItem, error)
	Delete(ctx context.Context, auth models.AuthContext, id int64) error
}

type timelineService struct {
	backend TimelineBackend
}

// NewTimelineService, constructor.
func NewTimelineService(backend TimelineBackend) TimelineService {
	return &timelineService{backend: backend}
}

func (s *timelineService) List(ctx context.Context) ([]models.TimelineItem, error) {
	items, err := s.backend.ListTimeline(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

func (s *timelineService) Get(ctx context.Context, id int64) (*models.TimelineItem, error) {
	items, err := s.backend.ListTimeline(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: timeline item %d", pkg.ErrNotFound, id)
}

func (s *timelineService) Create(ctx context.Context, auth models.AuthContext, in *models.TimelineInput) (*models.TimelineItem, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.CreateTimeline(ctx, auth, *in)
}

func (s *timelineService) Update(ctx context.Context, auth models.AuthContext, id int64, in *models.TimelineInput) (*models.TimelineItem, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.UpdateTimeline(ctx, auth, id, *in)
}

func (s *timelineService) Delete(ctx context.Context, auth models.AuthContext, id int64) error {
	return s.backend.DeleteTimeline(ctx, auth, id)
}
