package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/masterdata/categories"
	"github.com/routeledger/routeledger/internal/masterdata/parties"
	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
	"github.com/routeledger/routeledger/internal/shared"
	"github.com/routeledger/routeledger/internal/trips"
)

type TripsPort interface {
	Get(ctx context.Context, tripID string) (trips.Trip, error)
}

type CategoriesPort interface {
	Get(ctx context.Context, id int64) (categories.Category, error)
}

type VehiclesPort interface {
	Get(ctx context.Context, vehicleNo string) (vehicles.Vehicle, error)
}

type PartiesPort interface {
	GetWithRole(ctx context.Context, id int64, role parties.Role) (parties.Party, error)
}

// LedgerPort is the validated posting path used for the pay-later flow,
// where the ledger entry is the primary record.
type LedgerPort interface {
	Post(ctx context.Context, in ledger.PostingInput) (ledger.Entry, error)
}

type Service struct {
	repo       Repository
	trips      TripsPort
	categories CategoriesPort
	vehicles   VehiclesPort
	parties    PartiesPort
	ledger     LedgerPort
}

func NewService(repo Repository, tripsPort TripsPort, categoriesPort CategoriesPort, vehiclesPort VehiclesPort, partiesPort PartiesPort, ledgerPort LedgerPort) *Service {
	return &Service{repo: repo, trips: tripsPort, categories: categoriesPort, vehicles: vehiclesPort, parties: partiesPort, ledger: ledgerPort}
}

// TripExpenseInput carries a new trip expense.
type TripExpenseInput struct {
	TripID           string
	Date             time.Time
	CategoryID       int64
	Amount           float64
	PaidViaAccountID *int64
	Description      string
	BillNo           string
}

// RecordTripExpense persists the expense and, when a funding account is
// given, posts exactly one withdrawal entry in the same transaction, linked
// back to the expense.
func (s *Service) RecordTripExpense(ctx context.Context, in TripExpenseInput) (TripExpense, error) {
	if in.Amount <= 0 {
		return TripExpense{}, fmt.Errorf("%w: expense amount must be positive", shared.ErrValidation)
	}
	if in.Date.IsZero() {
		return TripExpense{}, fmt.Errorf("%w: expense date required", shared.ErrValidation)
	}
	trip, err := s.trips.Get(ctx, in.TripID)
	if err != nil {
		return TripExpense{}, fmt.Errorf("expenses: trip %s: %w", in.TripID, err)
	}
	category, err := s.categories.Get(ctx, in.CategoryID)
	if err != nil {
		return TripExpense{}, fmt.Errorf("expenses: category: %w", err)
	}

	var posting *ledger.PostingInput
	if in.PaidViaAccountID != nil {
		posting = &ledger.PostingInput{
			Kind:          ledger.KindPayment,
			Date:          in.Date,
			Description:   fmt.Sprintf("EXP: %s for %s", category.Name, trip.TripID),
			FromAccountID: in.PaidViaAccountID,
			Withdrawal:    in.Amount,
			RelatedTripID: &trip.TripID,
		}
		// Auto-posted entries validate with the same rule as manual ones.
		if err := posting.Validate(); err != nil {
			return TripExpense{}, err
		}
	}

	var created TripExpense
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		created, err = tx.InsertTripExpense(ctx, TripExpense{
			TripID:           trip.TripID,
			Date:             in.Date,
			CategoryID:       in.CategoryID,
			PaidViaAccountID: in.PaidViaAccountID,
			Description:      in.Description,
			Amount:           shared.Round2(in.Amount),
			BillNo:           in.BillNo,
		})
		if err != nil {
			return err
		}
		if posting != nil {
			posting.RelatedTripExpenseID = &created.ID
			if _, err := tx.InsertLedgerEntry(ctx, *posting); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return TripExpense{}, err
	}
	return created, nil
}

func (s *Service) ListTripExpenses(ctx context.Context, tripID string) ([]TripExpense, error) {
	return s.repo.ListTripExpenses(ctx, tripID)
}

// MaintenanceInput carries a new maintenance expense.
type MaintenanceInput struct {
	Date             time.Time
	VehicleNo        string
	WorkshopID       int64
	CategoryID       int64
	Description      string
	Shop             string
	Amount           float64
	IsPaid           bool
	PaymentDate      *time.Time
	PaidViaAccountID *int64
}

// RecordMaintenance persists the expense. Created already paid with a
// funding account, it posts exactly one withdrawal referencing the expense
// in the same transaction.
func (s *Service) RecordMaintenance(ctx context.Context, in MaintenanceInput) (MaintenanceExpense, error) {
	if in.Amount <= 0 {
		return MaintenanceExpense{}, fmt.Errorf("%w: expense amount must be positive", shared.ErrValidation)
	}
	if in.Date.IsZero() {
		return MaintenanceExpense{}, fmt.Errorf("%w: expense date required", shared.ErrValidation)
	}
	if _, err := s.vehicles.Get(ctx, in.VehicleNo); err != nil {
		return MaintenanceExpense{}, fmt.Errorf("expenses: vehicle %s: %w", in.VehicleNo, err)
	}
	if _, err := s.parties.GetWithRole(ctx, in.WorkshopID, parties.RoleWorkshop); err != nil {
		return MaintenanceExpense{}, fmt.Errorf("expenses: workshop: %w", err)
	}
	category, err := s.categories.Get(ctx, in.CategoryID)
	if err != nil {
		return MaintenanceExpense{}, fmt.Errorf("expenses: category: %w", err)
	}

	expense := MaintenanceExpense{
		Date:             in.Date,
		VehicleNo:        in.VehicleNo,
		WorkshopID:       in.WorkshopID,
		CategoryID:       in.CategoryID,
		Description:      in.Description,
		Shop:             in.Shop,
		Amount:           shared.Round2(in.Amount),
		IsPaid:           in.IsPaid,
		PaymentDate:      in.PaymentDate,
		PaidViaAccountID: in.PaidViaAccountID,
	}
	if expense.IsPaid && expense.PaymentDate == nil {
		expense.PaymentDate = &in.Date
	}

	var created MaintenanceExpense
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		created, err = tx.InsertMaintenance(ctx, expense)
		if err != nil {
			return err
		}
		if created.IsPaid && created.PaidViaAccountID != nil {
			posting := ledger.PostingInput{
				Kind:                 ledger.KindPayment,
				Date:                 *created.PaymentDate,
				Description:          fmt.Sprintf("Maintenance: %s for %s - %s", category.Name, created.VehicleNo, created.Shop),
				FromAccountID:        created.PaidViaAccountID,
				Withdrawal:           created.Amount,
				RelatedMaintenanceID: &created.ID,
			}
			if err := posting.Validate(); err != nil {
				return err
			}
			if _, err := tx.InsertLedgerEntry(ctx, posting); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return MaintenanceExpense{}, err
	}
	return created, nil
}

func (s *Service) ListMaintenance(ctx context.Context, vehicleNo string, unpaidOnly bool) ([]MaintenanceExpense, error) {
	return s.repo.ListMaintenance(ctx, vehicleNo, unpaidOnly)
}

func (s *Service) GetMaintenance(ctx context.Context, id int64) (MaintenanceExpense, error) {
	if id <= 0 {
		return MaintenanceExpense{}, fmt.Errorf("%w: maintenance expense id required", shared.ErrValidation)
	}
	return s.repo.GetMaintenance(ctx, id)
}

// PayMaintenance settles an unpaid maintenance bill through the ledger: it
// posts a withdrawal referencing the expense, and the ledger's link sync
// flips the expense to paid in the same transaction. Paying an already-paid
// expense posts the entry but leaves the paid state untouched.
func (s *Service) PayMaintenance(ctx context.Context, expenseID int64, accountID int64, date time.Time, description string) (ledger.Entry, error) {
	expense, err := s.GetMaintenance(ctx, expenseID)
	if err != nil {
		return ledger.Entry{}, err
	}
	if description == "" {
		description = fmt.Sprintf("Maintenance payment for %s", expense.VehicleNo)
	}
	return s.ledger.Post(ctx, ledger.PostingInput{
		Kind:                 ledger.KindPayment,
		Date:                 date,
		Description:          description,
		FromAccountID:        &accountID,
		Withdrawal:           expense.Amount,
		RelatedMaintenanceID: &expense.ID,
	})
}
