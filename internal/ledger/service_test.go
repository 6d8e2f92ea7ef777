package ledger

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeledger/routeledger/internal/masterdata/accounts"
	"github.com/routeledger/routeledger/internal/shared"
)

type maintenanceRow struct {
	paid        bool
	paymentDate *time.Time
	accountID   *int64
}

type mockRepository struct {
	entries     []Entry
	nextID      int64
	maintenance map[int64]*maintenanceRow
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, maintenance: make(map[int64]*maintenanceRow)}
}

func (m *mockRepository) ListByAccount(ctx context.Context, accountID int64, asOf *time.Time) ([]Entry, error) {
	var result []Entry
	for _, e := range m.entries {
		touches := (e.FromAccountID != nil && *e.FromAccountID == accountID) ||
			(e.ToAccountID != nil && *e.ToAccountID == accountID)
		if !touches {
			continue
		}
		if asOf != nil && e.Date.After(*asOf) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockRepository) ListByTrip(ctx context.Context, tripID string) ([]Entry, error) {
	var result []Entry
	for _, e := range m.entries {
		if e.RelatedTripID != nil && *e.RelatedTripID == tripID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	snapshot := make([]Entry, len(m.entries))
	copy(snapshot, m.entries)
	if err := fn(ctx, &mockTxRepository{mock: m}); err != nil {
		m.entries = snapshot
		return err
	}
	return nil
}

type mockTxRepository struct {
	mock *mockRepository
}

func (m *mockTxRepository) InsertEntry(ctx context.Context, in PostingInput) (Entry, error) {
	e := Entry{
		ID:                   m.mock.nextID,
		Kind:                 in.Kind,
		Date:                 in.Date,
		Description:          in.Description,
		FromAccountID:        in.FromAccountID,
		ToAccountID:          in.ToAccountID,
		Withdrawal:           shared.Round2(in.Withdrawal),
		Deposit:              shared.Round2(in.Deposit),
		RelatedTripID:        in.RelatedTripID,
		RelatedTripExpenseID: in.RelatedTripExpenseID,
		RelatedMaintenanceID: in.RelatedMaintenanceID,
		CreatedAt:            time.Now(),
	}
	m.mock.nextID++
	m.mock.entries = append(m.mock.entries, e)
	return e, nil
}

func (m *mockTxRepository) MaintenanceIsPaid(ctx context.Context, maintenanceID int64) (bool, error) {
	row, ok := m.mock.maintenance[maintenanceID]
	if !ok {
		return false, shared.ErrNotFound
	}
	return row.paid, nil
}

func (m *mockTxRepository) MarkMaintenancePaid(ctx context.Context, maintenanceID int64, paymentDate time.Time, accountID *int64) error {
	row, ok := m.mock.maintenance[maintenanceID]
	if !ok {
		return shared.ErrNotFound
	}
	row.paid = true
	row.paymentDate = &paymentDate
	row.accountID = accountID
	return nil
}

type mockAccounts struct{ accounts map[int64]accounts.Account }

func (m *mockAccounts) Get(ctx context.Context, id int64) (accounts.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return accounts.Account{}, shared.ErrNotFound
	}
	return a, nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	svc := NewService(repo, &mockAccounts{accounts: map[int64]accounts.Account{
		1: {ID: 1, Name: "HDFC Current", InitialBalance: 10000},
		2: {ID: 2, Name: "Cash Box", InitialBalance: 500},
	}})
	return svc, repo
}

func day(d int) time.Time {
	return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestPostRejectsMalformedEntries(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   PostingInput
	}{
		{"both sides set", PostingInput{Kind: KindPayment, Date: day(1), FromAccountID: ptr(int64(1)), Withdrawal: 100, Deposit: 100}},
		{"neither side set", PostingInput{Kind: KindPayment, Date: day(1), FromAccountID: ptr(int64(1))}},
		{"negative amount", PostingInput{Kind: KindPayment, Date: day(1), FromAccountID: ptr(int64(1)), Withdrawal: -5}},
		{"payment without account", PostingInput{Kind: KindPayment, Date: day(1), Withdrawal: 100}},
		{"payment with to-account", PostingInput{Kind: KindPayment, Date: day(1), FromAccountID: ptr(int64(1)), ToAccountID: ptr(int64(2)), Withdrawal: 100}},
		{"receipt without account", PostingInput{Kind: KindReceipt, Date: day(1), Deposit: 100}},
		{"receipt with from-account", PostingInput{Kind: KindReceipt, Date: day(1), FromAccountID: ptr(int64(1)), ToAccountID: ptr(int64(2)), Deposit: 100}},
		{"transfer to itself", PostingInput{Kind: KindTransfer, Date: day(1), FromAccountID: ptr(int64(1)), ToAccountID: ptr(int64(1)), Withdrawal: 100}},
		{"missing date", PostingInput{Kind: KindPayment, FromAccountID: ptr(int64(1)), Withdrawal: 100}},
		{"unknown kind", PostingInput{Kind: Kind("ADJUSTMENT"), Date: day(1), FromAccountID: ptr(int64(1)), Withdrawal: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Post(ctx, tt.in)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
	assert.Empty(t, repo.entries, "validation failures must not persist anything")
}

func TestBalanceFoldsHistory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Post(ctx, PostingInput{Kind: KindReceipt, Date: day(1), Description: "advance", ToAccountID: ptr(int64(1)), Deposit: 3000})
	require.NoError(t, err)
	_, err = svc.Post(ctx, PostingInput{Kind: KindPayment, Date: day(2), Description: "diesel", FromAccountID: ptr(int64(1)), Withdrawal: 1200})
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 11800.0, balance)

	// Repeated derivation has no side effects.
	again, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, balance, again)
}

func TestBalanceAsOfCutsOffLaterEntries(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Post(ctx, PostingInput{Kind: KindReceipt, Date: day(1), ToAccountID: ptr(int64(1)), Deposit: 3000})
	require.NoError(t, err)
	_, err = svc.Post(ctx, PostingInput{Kind: KindPayment, Date: day(10), FromAccountID: ptr(int64(1)), Withdrawal: 1200})
	require.NoError(t, err)

	asOf := day(5)
	balance, err := svc.BalanceAsOf(ctx, 1, &asOf)
	require.NoError(t, err)
	assert.Equal(t, 13000.0, balance)
}

func TestTransferConservesTotalBalance(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	before1, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	before2, err := svc.Balance(ctx, 2)
	require.NoError(t, err)

	entry, err := svc.Transfer(ctx, TransferInput{FromAccountID: 1, ToAccountID: 2, Amount: 300, Date: day(3)})
	require.NoError(t, err)
	assert.Equal(t, KindTransfer, entry.Kind)
	assert.Len(t, repo.entries, 1, "a transfer is a single stored record")

	after1, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	after2, err := svc.Balance(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, before1-300, after1)
	assert.Equal(t, before2+300, after2)
	assert.Equal(t, before1+before2, after1+after2)
}

func TestLedgerShowsTransferOnceOnEachSide(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Transfer(ctx, TransferInput{FromAccountID: 1, ToAccountID: 2, Amount: 300, Date: day(3), Description: "float top-up"})
	require.NoError(t, err)

	lines1, balance1, err := svc.Ledger(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines1, 1)
	assert.Equal(t, 300.0, lines1[0].Debit)
	assert.Equal(t, 0.0, lines1[0].Credit)
	assert.Equal(t, 9700.0, balance1)

	lines2, balance2, err := svc.Ledger(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lines2, 1)
	assert.Equal(t, 300.0, lines2[0].Credit)
	assert.Equal(t, 0.0, lines2[0].Debit)
	assert.Equal(t, 800.0, balance2)
}

func TestLedgerRunningBalance(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Post(ctx, PostingInput{Kind: KindReceipt, Date: day(1), ToAccountID: ptr(int64(2)), Deposit: 1000})
	require.NoError(t, err)
	_, err = svc.Post(ctx, PostingInput{Kind: KindPayment, Date: day(2), FromAccountID: ptr(int64(2)), Withdrawal: 250})
	require.NoError(t, err)
	_, err = svc.Post(ctx, PostingInput{Kind: KindPayment, Date: day(2), FromAccountID: ptr(int64(2)), Withdrawal: 100})
	require.NoError(t, err)

	lines, final, err := svc.Ledger(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, 1500.0, lines[0].RunningBalance)
	assert.Equal(t, 1250.0, lines[1].RunningBalance)
	assert.Equal(t, 1150.0, lines[2].RunningBalance)
	assert.Equal(t, 1150.0, final)
}

func TestPostFlipsUnpaidMaintenanceOnce(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.maintenance[7] = &maintenanceRow{}

	first, err := svc.Post(ctx, PostingInput{
		Kind: KindPayment, Date: day(4), Description: "workshop bill",
		FromAccountID: ptr(int64(1)), Withdrawal: 2000, RelatedMaintenanceID: ptr(int64(7)),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.maintenance[7].paymentDate)
	assert.True(t, repo.maintenance[7].paid)
	assert.Equal(t, first.Date, *repo.maintenance[7].paymentDate)
	require.NotNil(t, repo.maintenance[7].accountID)
	assert.Equal(t, int64(1), *repo.maintenance[7].accountID)

	// A later entry against the same expense posts but leaves the paid
	// state untouched.
	_, err = svc.Post(ctx, PostingInput{
		Kind: KindPayment, Date: day(9), Description: "follow-up",
		FromAccountID: ptr(int64(2)), Withdrawal: 50, RelatedMaintenanceID: ptr(int64(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, day(4), *repo.maintenance[7].paymentDate)
	assert.Equal(t, int64(1), *repo.maintenance[7].accountID)
	assert.Len(t, repo.entries, 2)
}

func TestPostUnknownMaintenanceRollsBack(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Post(ctx, PostingInput{
		Kind: KindPayment, Date: day(4), FromAccountID: ptr(int64(1)),
		Withdrawal: 2000, RelatedMaintenanceID: ptr(int64(99)),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, repo.entries, "the entry must not survive the failed transaction")
}
