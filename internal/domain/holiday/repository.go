package holiday

import (
	"context"
	"time"
)

// Repository - interface for the holidays table
type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id int64) (Holiday, error)
	// List returns all holidays ordered by date ascending.
	List(ctx context.Context) ([]Holiday, error)
	Update(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id int64) error
	CountUpcoming(ctx context.Context, from time.Time) (int64, error)
}
