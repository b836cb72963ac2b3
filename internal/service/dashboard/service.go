package dashboard

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

// statsTTL bounds how stale the dashboard may be. The aggregate runs several
// queries, so hammering the endpoint should not hammer the database.
const statsTTL = 30 * time.Second

const statsCacheKey = "dashboard_stats"

type Servicer interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type Service struct {
	repo  repository.DashboardRepository
	cache *cache.Cache
	now   func() time.Time
}

func NewService(repo repository.DashboardRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(statsTTL, 2*statsTTL),
		now:   time.Now,
	}
}

func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(statsCacheKey); ok {
		return cached.(*model.DashboardStats), nil
	}

	stats, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(statsCacheKey, stats)
	return stats, nil
}
