package vehicles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/routeledger/routeledger/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Vehicle, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, vehicleNo string) (Vehicle, error) {
	if strings.TrimSpace(vehicleNo) == "" {
		return Vehicle{}, fmt.Errorf("%w: vehicle number required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, vehicleNo)
}

func (s *Service) Create(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	if err := s.validate(vehicle); err != nil {
		return Vehicle{}, err
	}
	vehicle.VehicleNo = strings.ToUpper(strings.TrimSpace(vehicle.VehicleNo))
	if vehicle.Ownership == "" {
		vehicle.Ownership = "Own"
	}
	return s.repo.Create(ctx, vehicle)
}

func (s *Service) Update(ctx context.Context, vehicleNo string, vehicle Vehicle) error {
	if strings.TrimSpace(vehicleNo) == "" {
		return fmt.Errorf("%w: vehicle number required", shared.ErrValidation)
	}
	if err := s.validate(vehicle); err != nil {
		return err
	}
	return s.repo.Update(ctx, vehicleNo, vehicle)
}

func (s *Service) Delete(ctx context.Context, vehicleNo string) error {
	if strings.TrimSpace(vehicleNo) == "" {
		return fmt.Errorf("%w: vehicle number required", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, vehicleNo)
}

// ListExpiring reports vehicles with any regulatory document expiring on or
// before the given date.
func (s *Service) ListExpiring(ctx context.Context, before time.Time) ([]Vehicle, error) {
	return s.repo.ListExpiring(ctx, before)
}
