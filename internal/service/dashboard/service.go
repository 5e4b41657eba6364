package dashboard

import (
	"context"
	"time"

	"github.com/peoplecore/attendance-backend-go/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	repo dashboard.Repository
}

func NewDashboardService(repo dashboard.Repository) dashboard.Service {
	return &DashboardServiceImpl{repo: repo}
}

// Stats implements dashboard.Service.
func (s *DashboardServiceImpl) Stats(ctx context.Context) (dashboard.Stats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.Stats(ctx, today)
}
