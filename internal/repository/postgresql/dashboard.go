package postgresql

import (
	"context"
	"time"

	"github.com/peoplecore/attendance-backend-go/internal/domain/dashboard"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) Stats(ctx context.Context, today time.Time) (dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees) AS total_employees,
			(SELECT COUNT(*) FROM attendance_records WHERE date = $1) AS present_today,
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending') AS pending_leaves,
			(SELECT COUNT(*) FROM holidays WHERE date >= $1) AS upcoming_holidays
	`

	var stats dashboard.Stats
	err := q.QueryRow(ctx, query, today).Scan(
		&stats.TotalEmployees,
		&stats.PresentToday,
		&stats.PendingLeaves,
		&stats.UpcomingHolidays,
	)
	if err != nil {
		return dashboard.Stats{}, err
	}

	stats.Date = today.Format("2006-01-02")
	return stats, nil
}
