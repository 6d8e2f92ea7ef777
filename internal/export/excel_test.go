package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/settlement"
)

type stubLedger struct {
	lines   []ledger.LedgerLine
	balance float64
}

func (s *stubLedger) Ledger(ctx context.Context, accountID int64) ([]ledger.LedgerLine, float64, error) {
	return s.lines, s.balance, nil
}

type stubSettlement struct{ pl settlement.ProfitLoss }

func (s *stubSettlement) ProfitLoss(ctx context.Context, tripID string) (settlement.ProfitLoss, error) {
	return s.pl, nil
}

func day(d int) time.Time {
	return time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountLedgerWorkbookShape(t *testing.T) {
	tripID := "TRP-0001"
	svc := NewService(&stubLedger{
		lines: []ledger.LedgerLine{
			{Date: day(1), Description: "advance", Credit: 1600, RunningBalance: 11600, RelatedTripID: &tripID},
			{Date: day(2), Description: "diesel", Debit: 500, RunningBalance: 11100},
		},
		balance: 11100,
	}, &stubSettlement{})

	f, err := svc.AccountLedger(context.Background(), 1)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Ledger"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	trip, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "TRP-0001", trip)

	credit, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "1,600.00", credit)

	debit, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "500.00", debit)

	closingLabel, err := f.GetCellValue(sheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Closing balance", closingLabel)

	closing, err := f.GetCellValue(sheet, "F4")
	require.NoError(t, err)
	assert.Equal(t, "11,100.00", closing)
}

func TestTripProfitLossWorkbookShape(t *testing.T) {
	svc := NewService(&stubLedger{}, &stubSettlement{pl: settlement.ProfitLoss{
		TripID:           "TRP-0001",
		TotalFreight:     2000,
		AddbackSum:       300,
		TotalRevenue:     2300,
		CommissionAmount: 100,
		OraiAmount:       100,
		DeductibleSum:    500,
		ProfitLoss:       1600,
		Lines: []settlement.PnLLine{
			{Date: day(1), Category: "Commission", Amount: 100, Synthetic: true},
			{Date: day(1), Category: "Halting Charges", Amount: 300, Addback: true},
		},
	}})

	f, err := svc.TripProfitLoss(context.Background(), "TRP-0001")
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Profit Loss"
	category, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Commission", category)

	effect, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "revenue", effect)

	// Summary block starts one blank row after the lines.
	label, err := f.GetCellValue(sheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "Total freight", label)

	bottom, err := f.GetCellValue(sheet, "B11")
	require.NoError(t, err)
	assert.Equal(t, "Profit / loss", bottom)

	value, err := f.GetCellValue(sheet, "D11")
	require.NoError(t, err)
	assert.Equal(t, "1,600.00", value)
}
