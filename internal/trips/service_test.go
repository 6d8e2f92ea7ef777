package trips

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeledger/routeledger/internal/masterdata/drivers"
	"github.com/routeledger/routeledger/internal/masterdata/parties"
	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
	"github.com/routeledger/routeledger/internal/shared"
)

type mockRepository struct {
	trips map[string]Trip
}

func newMockRepository() *mockRepository {
	return &mockRepository{trips: make(map[string]Trip)}
}

func (m *mockRepository) List(ctx context.Context, filters shared.ListFilters) ([]Trip, int, error) {
	result := make([]Trip, 0, len(m.trips))
	for _, t := range m.trips {
		result = append(result, t)
	}
	return result, len(result), nil
}

func (m *mockRepository) Get(ctx context.Context, tripID string) (Trip, error) {
	t, ok := m.trips[tripID]
	if !ok {
		return Trip{}, shared.ErrNotFound
	}
	return t, nil
}

func (m *mockRepository) Update(ctx context.Context, trip Trip) error {
	if _, ok := m.trips[trip.TripID]; !ok {
		return shared.ErrNotFound
	}
	m.trips[trip.TripID] = trip
	return nil
}

func (m *mockRepository) SetStatus(ctx context.Context, tripID string, status Status) error {
	t, ok := m.trips[tripID]
	if !ok {
		return shared.ErrNotFound
	}
	t.Status = status
	m.trips[tripID] = t
	return nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &mockTxRepository{mock: m})
}

type mockTxRepository struct {
	mock *mockRepository
}

func (m *mockTxRepository) MaxTripID(ctx context.Context) (string, error) {
	max := ""
	for id := range m.mock.trips {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (m *mockTxRepository) Insert(ctx context.Context, trip Trip) (Trip, error) {
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt
	m.mock.trips[trip.TripID] = trip
	return trip, nil
}

type mockVehicles struct{ vehicles map[string]vehicles.Vehicle }

func (m *mockVehicles) Get(ctx context.Context, vehicleNo string) (vehicles.Vehicle, error) {
	v, ok := m.vehicles[vehicleNo]
	if !ok {
		return vehicles.Vehicle{}, shared.ErrNotFound
	}
	return v, nil
}

type mockDrivers struct{ drivers map[string]drivers.Driver }

func (m *mockDrivers) Get(ctx context.Context, driverID string) (drivers.Driver, error) {
	d, ok := m.drivers[driverID]
	if !ok {
		return drivers.Driver{}, shared.ErrNotFound
	}
	return d, nil
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

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	svc := NewService(repo,
		&mockVehicles{vehicles: map[string]vehicles.Vehicle{"MH12AB1234": {VehicleNo: "MH12AB1234"}}},
		&mockDrivers{drivers: map[string]drivers.Driver{"DRV-1": {DriverID: "DRV-1"}}},
		&mockParties{parties: map[int64]parties.Party{
			1: {ID: 1, Role: parties.RoleClient, Name: "Acme Mills"},
			2: {ID: 2, Role: parties.RoleTransporter, Name: "Sharma Carriers", CommissionRate: 5, OraiCharge: 100},
			3: {ID: 3, Role: parties.RoleTransporter, Name: "Verma Logistics", CommissionRate: 8, OraiCharge: 250},
		}},
	)
	return svc, repo
}

func validCreateInput() CreateInput {
	return CreateInput{
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ClientID:      1,
		VehicleNo:     "MH12AB1234",
		DriverID:      "DRV-1",
		TransporterID: 2,
		Origin:        "Pune",
		Destination:   "Nagpur",
		Rate:          1000,
		Weight:        2,
	}
}

func TestCreateDerivesMoneyFields(t *testing.T) {
	svc, _ := newTestService()

	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "TRP-0001", trip.TripID)
	assert.Equal(t, 2000.0, trip.TotalFreight)
	assert.Equal(t, 5.0, trip.CommissionRate)
	assert.Equal(t, 100.0, trip.CommissionAmount)
	assert.Equal(t, 100.0, trip.OraiAmount)
	assert.Equal(t, StatusPending, trip.Status)
}

func TestCreateDefaultsAdvanceToEightyPercent(t *testing.T) {
	svc, _ := newTestService()

	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, 1600.0, trip.Advance)
}

func TestCreateKeepsExplicitZeroAdvance(t *testing.T) {
	svc, _ := newTestService()

	in := validCreateInput()
	zero := 0.0
	in.Advance = &zero
	trip, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, trip.Advance)
}

func TestCreateGeneratesSequentialIDs(t *testing.T) {
	svc, _ := newTestService()

	for i := 1; i <= 9; i++ {
		trip, err := svc.Create(context.Background(), validCreateInput())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("TRP-%04d", i), trip.TripID)
	}
	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "TRP-0010", trip.TripID)
}

func TestCreateRejectsWrongPartyRole(t *testing.T) {
	svc, _ := newTestService()

	in := validCreateInput()
	in.ClientID = 2 // a transporter
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidRole)
}

func TestCreateRejectsUnknownVehicle(t *testing.T) {
	svc, _ := newTestService()

	in := validCreateInput()
	in.VehicleNo = "KA01ZZ0000"
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newTestService()

	in := validCreateInput()
	in.Origin = ""
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrValidation)

	in = validCreateInput()
	in.Rate = -1
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateRecomputesFreight(t *testing.T) {
	svc, _ := newTestService()

	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), trip.TripID, UpdateInput{
		Date: trip.Date, ClientID: 1, VehicleNo: "MH12AB1234", DriverID: "DRV-1",
		TransporterID: 2, Origin: "Pune", Destination: "Nagpur",
		Rate: 1200, Weight: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3600.0, updated.TotalFreight)
	assert.Equal(t, 180.0, updated.CommissionAmount)
}

func TestUpdateKeepsFrozenRatesForSameTransporter(t *testing.T) {
	svc, repo := newTestService()

	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	// Changing the master rate after creation must not leak into the trip.
	stored := repo.trips[trip.TripID]
	require.Equal(t, 5.0, stored.CommissionRate)

	updated, err := svc.Update(context.Background(), trip.TripID, UpdateInput{
		Date: trip.Date, ClientID: 1, VehicleNo: "MH12AB1234", DriverID: "DRV-1",
		TransporterID: 2, Origin: "Pune", Destination: "Nagpur",
		Rate: 1000, Weight: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.CommissionRate)
	assert.Equal(t, 100.0, updated.OraiAmount)
}

func TestUpdateRefreezesRatesWhenTransporterChanges(t *testing.T) {
	svc, _ := newTestService()

	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), trip.TripID, UpdateInput{
		Date: trip.Date, ClientID: 1, VehicleNo: "MH12AB1234", DriverID: "DRV-1",
		TransporterID: 3, Origin: "Pune", Destination: "Nagpur",
		Rate: 1000, Weight: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, updated.CommissionRate)
	assert.Equal(t, 160.0, updated.CommissionAmount)
	assert.Equal(t, 250.0, updated.OraiAmount)
}

func TestUpdateNilAdvanceKeepsStoredValue(t *testing.T) {
	svc, _ := newTestService()

	in := validCreateInput()
	amount := 500.0
	in.Advance = &amount
	trip, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), trip.TripID, UpdateInput{
		Date: trip.Date, ClientID: 1, VehicleNo: "MH12AB1234", DriverID: "DRV-1",
		TransporterID: 2, Origin: "Pune", Destination: "Nagpur",
		Rate: 1000, Weight: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.Advance)
}

func TestStatusTransitions(t *testing.T) {
	svc, repo := newTestService()

	trip, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Complete(context.Background(), trip.TripID))
	assert.Equal(t, StatusCompleted, repo.trips[trip.TripID].Status)

	require.NoError(t, svc.Revert(context.Background(), trip.TripID))
	assert.Equal(t, StatusInTransit, repo.trips[trip.TripID].Status)

	err = svc.SetStatus(context.Background(), trip.TripID, Status("SHIPPED"))
	assert.ErrorIs(t, err, shared.ErrValidation)
}
