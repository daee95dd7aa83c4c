package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/portfolyo/site/models"
)

// DashboardService interface'i: admin ana sayfası sayaçları.
type DashboardService interface {
	// Stats, sayaçları paralel çeker. Alınamayan sayaç 0 kalır.
	Stats(ctx context.Context, auth models.AuthContext) models.DashboardStats
}

type dashboardService struct {
	projects ProjectBackend
	messages MessageBackend
	blog     BlogBackend
	log      *zap.Logger
}

// NewDashboardService, constructor.
func NewDashboardService(projects ProjectBackend, messages MessageBackend, blog BlogBackend, log *zap.Logger) DashboardService {
	return &dashboardService{
		projects: projects,
		messages: messages,
		blog:     blog,
		log:      log.Named("dashboard"),
	}
}

func (s *dashboardService) Stats(ctx context.Context, auth models.AuthContext) models.DashboardStats {
	var stats models.DashboardStats
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		projects, err := s.projects.ListProjects(egCtx)
		if err != nil {
			s.log.Warn("projects count unavailable", zap.Error(err))
			return nil
		}
		stats.ProjectsCount = len(projects)
		return nil
	})
	eg.Go(func() error {
		msgs, err := s.messages.ListMessages(egCtx, auth)
		if err != nil {
			s.log.Warn("messages count unavailable", zap.Error(err))
			return nil
		}
		stats.MessagesCount = len(msgs)
		for _, m := range msgs {
			if !m.IsRead {
				stats.UnreadCount++
			}
		}
		return nil
	})
	eg.Go(func() error {
		posts, err := s.blog.ListBlogPosts(egCtx)
		if err != nil {
			s.log.Warn("blog count unavailable", zap.Error(err))
			return nil
		}
		stats.BlogCount = len(posts)
		return nil
	})

	_ = eg.Wait()
	return stats
}
