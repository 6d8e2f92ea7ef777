package dockets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/routeledger/routeledger/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, tripID string) ([]Docket, error) {
	return s.repo.List(ctx, tripID)
}

func (s *Service) Get(ctx context.Context, id int64) (Docket, error) {
	if id <= 0 {
		return Docket{}, fmt.Errorf("%w: docket id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, docket Docket) (Docket, error) {
	if strings.TrimSpace(docket.DocketNo) == "" {
		return Docket{}, fmt.Errorf("%w: docket number is required", shared.ErrValidation)
	}
	if strings.TrimSpace(docket.TripID) == "" {
		return Docket{}, fmt.Errorf("%w: trip id is required", shared.ErrValidation)
	}
	if docket.SendDate.IsZero() {
		return Docket{}, fmt.Errorf("%w: send date is required", shared.ErrValidation)
	}
	return s.repo.Create(ctx, docket)
}

// MarkReceived flips the challan-received flag, defaulting the received
// date to today.
func (s *Service) MarkReceived(ctx context.Context, id int64, receivedDate *time.Time) error {
	if id <= 0 {
		return fmt.Errorf("%w: docket id required", shared.ErrValidation)
	}
	when := s.now()
	if receivedDate != nil {
		when = *receivedDate
	}
	return s.repo.MarkReceived(ctx, id, when)
}
