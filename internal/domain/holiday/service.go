package holiday

import "context"

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	Get(ctx context.Context, id int64) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Update(ctx context.Context, id int64, req UpdateHolidayRequest) (Holiday, error)
	Delete(ctx context.Context, id int64) error
}
