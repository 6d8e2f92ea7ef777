package drivers

import (
	"context"
	"fmt"
	"strings"

	"github.com/routeledger/routeledger/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Driver, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, driverID string) (Driver, error) {
	if strings.TrimSpace(driverID) == "" {
		return Driver{}, fmt.Errorf("%w: driver id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, driverID)
}

func (s *Service) Create(ctx context.Context, driver Driver) (Driver, error) {
	if err := s.validate(driver); err != nil {
		return Driver{}, err
	}
	driver.DriverID = strings.ToUpper(strings.TrimSpace(driver.DriverID))
	return s.repo.Create(ctx, driver)
}

func (s *Service) Update(ctx context.Context, driverID string, driver Driver) error {
	if strings.TrimSpace(driverID) == "" {
		return fmt.Errorf("%w: driver id required", shared.ErrValidation)
	}
	if err := s.validate(driver); err != nil {
		return err
	}
	return s.repo.Update(ctx, driverID, driver)
}

func (s *Service) Delete(ctx context.Context, driverID string) error {
	if strings.TrimSpace(driverID) == "" {
		return fmt.Errorf("%w: driver id required", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, driverID)
}

func (s *Service) validate(d Driver) error {
	if strings.TrimSpace(d.DriverID) == "" {
		return fmt.Errorf("%w: driver id is required", shared.ErrValidation)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: driver name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(d.LicenseNo) == "" {
		return fmt.Errorf("%w: license number is required", shared.ErrValidation)
	}
	if d.LicenseExpiry.IsZero() {
		return fmt.Errorf("%w: license expiry is required", shared.ErrValidation)
	}
	if d.FixedSalary < 0 || d.WageRate < 0 {
		return fmt.Errorf("%w: salary and wage rate cannot be negative", shared.ErrValidation)
	}
	return nil
}
