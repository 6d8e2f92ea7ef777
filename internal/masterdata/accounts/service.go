package accounts

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

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Account, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	if id <= 0 {
		return Account{}, fmt.Errorf("%w: account id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, account Account) (Account, error) {
	if err := s.validate(account); err != nil {
		return Account{}, err
	}
	account.Name = strings.TrimSpace(account.Name)
	return s.repo.Create(ctx, account)
}

func (s *Service) Update(ctx context.Context, id int64, account Account) error {
	if id <= 0 {
		return fmt.Errorf("%w: account id required", shared.ErrValidation)
	}
	if err := s.validate(account); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, account)
}

func (s *Service) validate(a Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", shared.ErrValidation)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", shared.ErrValidation, a.Type)
	}
	return nil
}
