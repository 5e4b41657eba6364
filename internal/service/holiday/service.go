package holiday

import (
	"context"

	"github.com/peoplecore/attendance-backend-go/internal/domain/holiday"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	repo holiday.Repository
}

func NewHolidayService(repo holiday.Repository) holiday.Service {
	return &HolidayServiceImpl{repo: repo}
}

// Create implements holiday.Service.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	return s.repo.Create(ctx, holiday.Holiday{
		Name:        req.Name,
		Date:        req.ParsedDate(),
		Description: req.Description,
	})
}

// Get implements holiday.Service.
func (s *HolidayServiceImpl) Get(ctx context.Context, id int64) (holiday.Holiday, error) {
	return s.repo.GetByID(ctx, id)
}

// List implements holiday.Service.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	return s.repo.List(ctx)
}

// Update implements holiday.Service.
func (s *HolidayServiceImpl) Update(ctx context.Context, id int64, req holiday.UpdateHolidayRequest) (holiday.Holiday, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return holiday.Holiday{}, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Date != nil {
		d, _ := validator.IsValidDate(*req.Date)
		h.Date = d
	}
	if req.Description != nil {
		h.Description = *req.Description
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return holiday.Holiday{}, err
	}
	return h, nil
}

// Delete implements holiday.Service.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
