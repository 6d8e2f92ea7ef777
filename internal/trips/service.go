package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/masterdata/drivers"
	"github.com/routeledger/routeledger/internal/masterdata/parties"
	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
	"github.com/routeledger/routeledger/internal/shared"
)

// advanceDefaultShare is the fraction of total freight the advance defaults
// to when the caller leaves it unset.
const advanceDefaultShare = 0.80

type VehiclesPort interface {
	Get(ctx context.Context, vehicleNo string) (vehicles.Vehicle, error)
}

type DriversPort interface {
	Get(ctx context.Context, driverID string) (drivers.Driver, error)
}

type PartiesPort interface {
	GetWithRole(ctx context.Context, id int64, role parties.Role) (parties.Party, error)
}

type Service struct {
	repo     Repository
	vehicles VehiclesPort
	drivers  DriversPort
	parties  PartiesPort
	now      func() time.Time
}

func NewService(repo Repository, vehiclesPort VehiclesPort, driversPort DriversPort, partiesPort PartiesPort) *Service {
	return &Service{repo: repo, vehicles: vehiclesPort, drivers: driversPort, parties: partiesPort, now: time.Now}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Trip, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, tripID string) (Trip, error) {
	if tripID == "" {
		return Trip{}, fmt.Errorf("%w: trip id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, tripID)
}

// Create validates every reference, freezes the transporter's commission
// rate and orai charge onto the trip, derives the money fields and mints
// the next sequential trip id inside one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (Trip, error) {
	if err := in.Validate(); err != nil {
		return Trip{}, err
	}

	if _, err := s.vehicles.Get(ctx, in.VehicleNo); err != nil {
		return Trip{}, fmt.Errorf("trips: vehicle %s: %w", in.VehicleNo, err)
	}
	if _, err := s.drivers.Get(ctx, in.DriverID); err != nil {
		return Trip{}, fmt.Errorf("trips: driver %s: %w", in.DriverID, err)
	}
	if _, err := s.parties.GetWithRole(ctx, in.ClientID, parties.RoleClient); err != nil {
		return Trip{}, fmt.Errorf("trips: client: %w", err)
	}
	transporter, err := s.parties.GetWithRole(ctx, in.TransporterID, parties.RoleTransporter)
	if err != nil {
		return Trip{}, fmt.Errorf("trips: transporter: %w", err)
	}

	trip := Trip{
		Date:           in.Date,
		VehicleNo:      in.VehicleNo,
		DriverID:       in.DriverID,
		ClientID:       in.ClientID,
		TransporterID:  in.TransporterID,
		Origin:         in.Origin,
		Destination:    in.Destination,
		Rate:           in.Rate,
		Weight:         in.Weight,
		CommissionRate: transporter.CommissionRate,
		OraiCharge:     transporter.OraiCharge,
		Halting:        in.Halting,
		Status:         in.Status,
	}
	if trip.Status == "" {
		trip.Status = StatusPending
	}
	trip.recompute()

	if in.Advance != nil {
		trip.Advance = shared.Round2(*in.Advance)
	} else {
		trip.Advance = shared.Round2(trip.TotalFreight * advanceDefaultShare)
	}

	var created Trip
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		lastID, err := tx.MaxTripID(ctx)
		if err != nil {
			return err
		}
		trip.TripID = NextTripID(lastID)
		created, err = tx.Insert(ctx, trip)
		return err
	})
	if err != nil {
		return Trip{}, err
	}
	return created, nil
}

// Update edits a trip and recomputes the derived fields the same way
// creation does. The commission snapshot is re-frozen only when the
// transporter reference itself changes.
func (s *Service) Update(ctx context.Context, tripID string, in UpdateInput) (Trip, error) {
	current, err := s.Get(ctx, tripID)
	if err != nil {
		return Trip{}, err
	}
	createShape := CreateInput{
		Date: in.Date, ClientID: in.ClientID, VehicleNo: in.VehicleNo, DriverID: in.DriverID,
		TransporterID: in.TransporterID, Origin: in.Origin, Destination: in.Destination,
		Rate: in.Rate, Weight: in.Weight, Halting: in.Halting, Advance: in.Advance, Status: in.Status,
	}
	if err := createShape.Validate(); err != nil {
		return Trip{}, err
	}

	if _, err := s.vehicles.Get(ctx, in.VehicleNo); err != nil {
		return Trip{}, fmt.Errorf("trips: vehicle %s: %w", in.VehicleNo, err)
	}
	if _, err := s.drivers.Get(ctx, in.DriverID); err != nil {
		return Trip{}, fmt.Errorf("trips: driver %s: %w", in.DriverID, err)
	}
	if _, err := s.parties.GetWithRole(ctx, in.ClientID, parties.RoleClient); err != nil {
		return Trip{}, fmt.Errorf("trips: client: %w", err)
	}

	commissionRate := current.CommissionRate
	oraiCharge := current.OraiCharge
	if in.TransporterID != current.TransporterID {
		transporter, err := s.parties.GetWithRole(ctx, in.TransporterID, parties.RoleTransporter)
		if err != nil {
			return Trip{}, fmt.Errorf("trips: transporter: %w", err)
		}
		commissionRate = transporter.CommissionRate
		oraiCharge = transporter.OraiCharge
	}

	updated := current
	updated.Date = in.Date
	updated.VehicleNo = in.VehicleNo
	updated.DriverID = in.DriverID
	updated.ClientID = in.ClientID
	updated.TransporterID = in.TransporterID
	updated.Origin = in.Origin
	updated.Destination = in.Destination
	updated.Rate = in.Rate
	updated.Weight = in.Weight
	updated.CommissionRate = commissionRate
	updated.OraiCharge = oraiCharge
	updated.Halting = in.Halting
	if in.Advance != nil {
		updated.Advance = shared.Round2(*in.Advance)
	}
	if in.Status != "" {
		updated.Status = in.Status
	}
	updated.recompute()

	if err := s.repo.Update(ctx, updated); err != nil {
		return Trip{}, err
	}
	return updated, nil
}

// SetStatus overwrites the trip status directly; there is no transition
// guard.
func (s *Service) SetStatus(ctx context.Context, tripID string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown trip status %q", shared.ErrValidation, status)
	}
	return s.repo.SetStatus(ctx, tripID, status)
}

// Complete marks a trip COMPLETED.
func (s *Service) Complete(ctx context.Context, tripID string) error {
	return s.SetStatus(ctx, tripID, StatusCompleted)
}

// Revert puts a completed trip back to IN_TRANSIT.
func (s *Service) Revert(ctx context.Context, tripID string) error {
	return s.SetStatus(ctx, tripID, StatusInTransit)
}

// recompute derives total freight and the commission/orai amounts from the
// trip's own frozen rate snapshot.
func (t *Trip) recompute() {
	t.TotalFreight = shared.Round2(t.Rate * t.Weight)
	t.CommissionAmount = shared.Round2(t.TotalFreight * t.CommissionRate / 100)
	t.OraiAmount = shared.Round2(t.OraiCharge)
}
