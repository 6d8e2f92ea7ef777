package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/masterdata/categories"
	"github.com/routeledger/routeledger/internal/masterdata/parties"
	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
	"github.com/routeledger/routeledger/internal/shared"
	"github.com/routeledger/routeledger/internal/trips"
)

type mockRepository struct {
	tripExpenses  map[int64]TripExpense
	maintenance   map[int64]MaintenanceExpense
	postedEntries []ledger.PostingInput
	nextID        int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		tripExpenses: make(map[int64]TripExpense),
		maintenance:  make(map[int64]MaintenanceExpense),
		nextID:       1,
	}
}

func (m *mockRepository) ListTripExpenses(ctx context.Context, tripID string) ([]TripExpense, error) {
	var result []TripExpense
	for _, e := range m.tripExpenses {
		if e.TripID == tripID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockRepository) ListMaintenance(ctx context.Context, vehicleNo string, unpaidOnly bool) ([]MaintenanceExpense, error) {
	var result []MaintenanceExpense
	for _, e := range m.maintenance {
		if vehicleNo != "" && e.VehicleNo != vehicleNo {
			continue
		}
		if unpaidOnly && e.IsPaid {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockRepository) GetMaintenance(ctx context.Context, id int64) (MaintenanceExpense, error) {
	e, ok := m.maintenance[id]
	if !ok {
		return MaintenanceExpense{}, shared.ErrNotFound
	}
	return e, nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	entrySnapshot := len(m.postedEntries)
	if err := fn(ctx, &mockTxRepository{mock: m}); err != nil {
		m.postedEntries = m.postedEntries[:entrySnapshot]
		return err
	}
	return nil
}

type mockTxRepository struct {
	mock *mockRepository
}

func (m *mockTxRepository) InsertTripExpense(ctx context.Context, expense TripExpense) (TripExpense, error) {
	expense.ID = m.mock.nextID
	expense.CreatedAt = time.Now()
	m.mock.nextID++
	m.mock.tripExpenses[expense.ID] = expense
	return expense, nil
}

func (m *mockTxRepository) InsertMaintenance(ctx context.Context, expense MaintenanceExpense) (MaintenanceExpense, error) {
	expense.ID = m.mock.nextID
	expense.CreatedAt = time.Now()
	m.mock.nextID++
	m.mock.maintenance[expense.ID] = expense
	return expense, nil
}

func (m *mockTxRepository) InsertLedgerEntry(ctx context.Context, in ledger.PostingInput) (ledger.Entry, error) {
	m.mock.postedEntries = append(m.mock.postedEntries, in)
	return ledger.Entry{
		ID: int64(len(m.mock.postedEntries)), Kind: in.Kind, Date: in.Date,
		Description: in.Description, FromAccountID: in.FromAccountID, ToAccountID: in.ToAccountID,
		Withdrawal: in.Withdrawal, Deposit: in.Deposit,
	}, nil
}

type mockTrips struct{ trips map[string]trips.Trip }

func (m *mockTrips) Get(ctx context.Context, tripID string) (trips.Trip, error) {
	t, ok := m.trips[tripID]
	if !ok {
		return trips.Trip{}, shared.ErrNotFound
	}
	return t, nil
}

type mockCategories struct{ categories map[int64]categories.Category }

func (m *mockCategories) Get(ctx context.Context, id int64) (categories.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return categories.Category{}, shared.ErrNotFound
	}
	return c, nil
}

type mockVehicles struct{ vehicles map[string]vehicles.Vehicle }

func (m *mockVehicles) Get(ctx context.Context, vehicleNo string) (vehicles.Vehicle, error) {
	v, ok := m.vehicles[vehicleNo]
	if !ok {
		return vehicles.Vehicle{}, shared.ErrNotFound
	}
	return v, nil
}

type mockParties struct{ parties map[int64]parties.Party }

func (m *mockParties) GetWithRole(ctx context.Context, id int64, role parties.Role) (parties.Party, error) {
	p, ok := m.parties[id]
	if !ok {
		return parties.Party{}, shared.ErrNotFound
	}
	if err := parties.RequireRole(p, role); err != nil {
		return parties.Party{}, err
	}
	return p, nil
}

type mockLedger struct{ posted []ledger.PostingInput }

func (m *mockLedger) Post(ctx context.Context, in ledger.PostingInput) (ledger.Entry, error) {
	if err := in.Validate(); err != nil {
		return ledger.Entry{}, err
	}
	m.posted = append(m.posted, in)
	return ledger.Entry{ID: int64(len(m.posted)), Kind: in.Kind, Date: in.Date, Withdrawal: in.Withdrawal}, nil
}

func newTestService() (*Service, *mockRepository, *mockLedger) {
	repo := newMockRepository()
	ledgerPort := &mockLedger{}
	svc := NewService(repo,
		&mockTrips{trips: map[string]trips.Trip{"TRP-0001": {TripID: "TRP-0001", TotalFreight: 2000}}},
		&mockCategories{categories: map[int64]categories.Category{
			1: {ID: 1, Name: "Diesel", IsTripExpense: true},
			2: {ID: 2, Name: "Tyres", IsTripExpense: false},
		}},
		&mockVehicles{vehicles: map[string]vehicles.Vehicle{"MH12AB1234": {VehicleNo: "MH12AB1234"}}},
		&mockParties{parties: map[int64]parties.Party{
			5: {ID: 5, Role: parties.RoleWorkshop, Name: "City Motors"},
			6: {ID: 6, Role: parties.RoleClient, Name: "Acme Mills"},
		}},
		ledgerPort,
	)
	return svc, repo, ledgerPort
}

func day(d int) time.Time {
	return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestRecordTripExpensePostsOneWithdrawal(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.RecordTripExpense(context.Background(), TripExpenseInput{
		TripID: "TRP-0001", Date: day(2), CategoryID: 1, Amount: 500,
		PaidViaAccountID: ptr(int64(3)), Description: "fuel top-up",
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, created.Amount)

	require.Len(t, repo.postedEntries, 1)
	entry := repo.postedEntries[0]
	assert.Equal(t, ledger.KindPayment, entry.Kind)
	assert.Equal(t, 500.0, entry.Withdrawal)
	assert.Equal(t, 0.0, entry.Deposit)
	require.NotNil(t, entry.FromAccountID)
	assert.Equal(t, int64(3), *entry.FromAccountID)
	assert.Equal(t, "EXP: Diesel for TRP-0001", entry.Description)
	require.NotNil(t, entry.RelatedTripID)
	assert.Equal(t, "TRP-0001", *entry.RelatedTripID)
	require.NotNil(t, entry.RelatedTripExpenseID)
	assert.Equal(t, created.ID, *entry.RelatedTripExpenseID)
}

func TestRecordTripExpenseWithoutAccountPostsNothing(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.RecordTripExpense(context.Background(), TripExpenseInput{
		TripID: "TRP-0001", Date: day(2), CategoryID: 1, Amount: 500,
	})
	require.NoError(t, err)
	assert.Empty(t, repo.postedEntries)
}

func TestRecordTripExpenseValidation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RecordTripExpense(ctx, TripExpenseInput{TripID: "TRP-0001", Date: day(2), CategoryID: 1, Amount: 0})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.RecordTripExpense(ctx, TripExpenseInput{TripID: "TRP-9999", Date: day(2), CategoryID: 1, Amount: 100})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.RecordTripExpense(ctx, TripExpenseInput{TripID: "TRP-0001", Date: day(2), CategoryID: 42, Amount: 100})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.Empty(t, repo.tripExpenses)
	assert.Empty(t, repo.postedEntries)
}

func TestRecordMaintenancePaidAtCreationPostsEntry(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.RecordMaintenance(context.Background(), MaintenanceInput{
		Date: day(3), VehicleNo: "MH12AB1234", WorkshopID: 5, CategoryID: 2,
		Description: "brake pads", Shop: "City Motors", Amount: 2000,
		IsPaid: true, PaidViaAccountID: ptr(int64(3)),
	})
	require.NoError(t, err)
	assert.True(t, created.IsPaid)
	require.NotNil(t, created.PaymentDate, "payment date defaults to the expense date")
	assert.Equal(t, day(3), *created.PaymentDate)

	require.Len(t, repo.postedEntries, 1)
	entry := repo.postedEntries[0]
	assert.Equal(t, ledger.KindPayment, entry.Kind)
	assert.Equal(t, 2000.0, entry.Withdrawal)
	require.NotNil(t, entry.RelatedMaintenanceID)
	assert.Equal(t, created.ID, *entry.RelatedMaintenanceID)
}

func TestRecordMaintenanceUnpaidPostsNothing(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.RecordMaintenance(context.Background(), MaintenanceInput{
		Date: day(3), VehicleNo: "MH12AB1234", WorkshopID: 5, CategoryID: 2,
		Description: "clutch overhaul", Amount: 6000,
	})
	require.NoError(t, err)
	assert.False(t, created.IsPaid)
	assert.Empty(t, repo.postedEntries)
}

func TestRecordMaintenanceRejectsNonWorkshopParty(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RecordMaintenance(context.Background(), MaintenanceInput{
		Date: day(3), VehicleNo: "MH12AB1234", WorkshopID: 6, CategoryID: 2, Amount: 100,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidRole)
}

func TestPayMaintenanceRoutesThroughLedger(t *testing.T) {
	svc, repo, ledgerPort := newTestService()

	repo.maintenance[11] = MaintenanceExpense{ID: 11, VehicleNo: "MH12AB1234", Amount: 1500}

	entry, err := svc.PayMaintenance(context.Background(), 11, 3, day(8), "")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, entry.Withdrawal)

	require.Len(t, ledgerPort.posted, 1)
	posted := ledgerPort.posted[0]
	assert.Equal(t, ledger.KindPayment, posted.Kind)
	require.NotNil(t, posted.RelatedMaintenanceID)
	assert.Equal(t, int64(11), *posted.RelatedMaintenanceID)
	assert.Equal(t, "Maintenance payment for MH12AB1234", posted.Description)
}
