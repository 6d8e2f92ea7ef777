package parties

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

func (s *Service) List(ctx context.Context, role Role, filters shared.ListFilters) ([]Party, int, error) {
	if role != "" && !role.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown party type %q", shared.ErrValidation, role)
	}
	return s.repo.List(ctx, role, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Party, error) {
	if id <= 0 {
		return Party{}, fmt.Errorf("%w: party id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// GetWithRole fetches a party and verifies it may act in the given slot.
func (s *Service) GetWithRole(ctx context.Context, id int64, role Role) (Party, error) {
	party, err := s.Get(ctx, id)
	if err != nil {
		return Party{}, err
	}
	if err := RequireRole(party, role); err != nil {
		return Party{}, err
	}
	return party, nil
}

func (s *Service) Create(ctx context.Context, party Party) (Party, error) {
	if err := s.validate(party); err != nil {
		return Party{}, err
	}
	return s.repo.Create(ctx, party)
}

func (s *Service) Update(ctx context.Context, id int64, party Party) error {
	if id <= 0 {
		return fmt.Errorf("%w: party id required", shared.ErrValidation)
	}
	if err := s.validate(party); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, party)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: party id required", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(p Party) error {
	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown party type %q", shared.ErrValidation, p.Role)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: party name is required", shared.ErrValidation)
	}
	if p.CommissionRate < 0 || p.CommissionRate > 100 {
		return fmt.Errorf("%w: commission rate must be between 0 and 100", shared.ErrValidation)
	}
	if p.OraiCharge < 0 {
		return fmt.Errorf("%w: orai charge cannot be negative", shared.ErrValidation)
	}
	return nil
}
