package dashboard

import (
	"context"
	"time"
)

// Repository aggregates counts across employees, attendance, leave and
// holidays for the dashboard.
type Repository interface {
	Stats(ctx context.Context, today time.Time) (Stats, error)
}
