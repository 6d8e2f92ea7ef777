package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/expenses"
	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/masterdata/categories"
	"github.com/routeledger/routeledger/internal/shared"
	"github.com/routeledger/routeledger/internal/trips"
)

type TripsPort interface {
	Get(ctx context.Context, tripID string) (trips.Trip, error)
	Complete(ctx context.Context, tripID string) error
}

type LedgerPort interface {
	Post(ctx context.Context, in ledger.PostingInput) (ledger.Entry, error)
	EntriesForTrip(ctx context.Context, tripID string) ([]ledger.Entry, error)
}

type ExpensesPort interface {
	ListTripExpenses(ctx context.Context, tripID string) ([]expenses.TripExpense, error)
}

type CategoriesPort interface {
	List(ctx context.Context) ([]categories.Category, error)
}

// Service derives per-trip money figures from the ledger and expense
// records. It never stores a derived number; every call recomputes from the
// underlying rows.
type Service struct {
	trips      TripsPort
	ledger     LedgerPort
	expenses   ExpensesPort
	categories CategoriesPort

	// allowPartial leaves a trip completable even when the balance due is
	// not fully recovered, matching the books-first workflow where the
	// shortfall is written off verbally. When false, Settle refuses to
	// close a trip with money still outstanding.
	allowPartial bool
}

func NewService(tripsPort TripsPort, ledgerPort LedgerPort, expensesPort ExpensesPort, categoriesPort CategoriesPort, allowPartial bool) *Service {
	return &Service{
		trips:        tripsPort,
		ledger:       ledgerPort,
		expenses:     expensesPort,
		categories:   categoriesPort,
		allowPartial: allowPartial,
	}
}

// Financials is the advance-versus-freight position of one trip.
type Financials struct {
	TripID               string         `json:"trip_id"`
	TotalFreight         float64        `json:"total_freight"`
	AdvanceAgreed        float64        `json:"advance_agreed"`
	TotalAdvanceReceived float64        `json:"total_advance_received"`
	BalanceDue           float64        `json:"balance_due"`
	AdvanceAgreedPercent float64        `json:"advance_agreed_percent"`
	ReceivedPercent      float64        `json:"received_percent"`
	Receipts             []ledger.Entry `json:"receipts"`
}

// Financials reconciles the trip's freight against money actually received.
// Every trip-linked deposit counts, whether posted as an advance or at
// settlement.
func (s *Service) Financials(ctx context.Context, tripID string) (Financials, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return Financials{}, err
	}
	entries, err := s.ledger.EntriesForTrip(ctx, tripID)
	if err != nil {
		return Financials{}, err
	}

	f := Financials{
		TripID:        trip.TripID,
		TotalFreight:  trip.TotalFreight,
		AdvanceAgreed: trip.Advance,
	}
	for _, e := range entries {
		if e.Deposit > 0 {
			f.TotalAdvanceReceived += e.Deposit
			f.Receipts = append(f.Receipts, e)
		}
	}
	f.TotalAdvanceReceived = shared.Round2(f.TotalAdvanceReceived)
	f.BalanceDue = shared.Round2(f.TotalFreight - f.TotalAdvanceReceived)
	if f.TotalFreight > 0 {
		f.AdvanceAgreedPercent = shared.Round2(f.AdvanceAgreed / f.TotalFreight * 100)
		f.ReceivedPercent = shared.Round2(f.TotalAdvanceReceived / f.TotalFreight * 100)
	}
	return f, nil
}

// PnLLine is one display row of a trip's profit/loss statement. Commission
// and orai appear as synthetic lines so the statement foots to the bottom
// figure; they have no expense record behind them.
type PnLLine struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
	Addback     bool      `json:"addback"`
	Synthetic   bool      `json:"synthetic,omitempty"`
}

// ProfitLoss is the revenue and cost breakdown of one trip.
type ProfitLoss struct {
	TripID           string    `json:"trip_id"`
	TotalFreight     float64   `json:"total_freight"`
	AddbackSum       float64   `json:"addback_sum"`
	TotalRevenue     float64   `json:"total_revenue"`
	CommissionAmount float64   `json:"commission_amount"`
	OraiAmount       float64   `json:"orai_amount"`
	DeductibleSum    float64   `json:"deductible_sum"`
	ProfitLoss       float64   `json:"profit_loss"`
	Lines            []PnLLine `json:"lines"`
}

// ProfitLoss computes revenue = freight + addback-category expense sums and
// subtracts commission, orai and deductible trip expenses. Categories not
// flagged as trip expenses stay out of the math but still show as lines.
func (s *Service) ProfitLoss(ctx context.Context, tripID string) (ProfitLoss, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return ProfitLoss{}, err
	}
	tripExpenses, err := s.expenses.ListTripExpenses(ctx, tripID)
	if err != nil {
		return ProfitLoss{}, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return ProfitLoss{}, err
	}
	byID := make(map[int64]categories.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	pl := ProfitLoss{
		TripID:           trip.TripID,
		TotalFreight:     trip.TotalFreight,
		CommissionAmount: trip.CommissionAmount,
		OraiAmount:       trip.OraiAmount,
	}
	pl.Lines = append(pl.Lines,
		PnLLine{Date: trip.Date, Category: "Commission", Amount: trip.CommissionAmount, Synthetic: true},
		PnLLine{Date: trip.Date, Category: "Orai", Amount: trip.OraiAmount, Synthetic: true},
	)
	for _, e := range tripExpenses {
		cat := byID[e.CategoryID]
		line := PnLLine{
			Date:        e.Date,
			Category:    cat.Name,
			Description: e.Description,
			Amount:      e.Amount,
			Addback:     cat.RevenueAddback,
		}
		pl.Lines = append(pl.Lines, line)
		if !cat.IsTripExpense {
			continue
		}
		if cat.RevenueAddback {
			pl.AddbackSum += e.Amount
		} else {
			pl.DeductibleSum += e.Amount
		}
	}
	pl.AddbackSum = shared.Round2(pl.AddbackSum)
	pl.DeductibleSum = shared.Round2(pl.DeductibleSum)
	pl.TotalRevenue = shared.Round2(pl.TotalFreight + pl.AddbackSum)
	pl.ProfitLoss = shared.Round2(pl.TotalRevenue - pl.CommissionAmount - pl.OraiAmount - pl.DeductibleSum)
	return pl, nil
}

// RecordAdvance posts a receipt for money received against a trip before
// settlement.
func (s *Service) RecordAdvance(ctx context.Context, tripID string, accountID int64, amount float64, date time.Time, remarks string) (ledger.Entry, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return ledger.Entry{}, err
	}
	description := remarks
	if description == "" {
		description = fmt.Sprintf("Advance received for %s", trip.TripID)
	}
	return s.ledger.Post(ctx, ledger.PostingInput{
		Kind:          ledger.KindReceipt,
		Date:          date,
		Description:   description,
		ToAccountID:   &accountID,
		Deposit:       amount,
		RelatedTripID: &trip.TripID,
	})
}

// SettleInput carries the final reconciliation of a trip.
type SettleInput struct {
	ReceivedAmount float64
	ShortageDamage float64
	AccountID      int64
	Date           time.Time
	Remarks        string
}

// Result reports what a settlement did. Warning is advisory and never
// blocks the settlement.
type Result struct {
	Trip    trips.Trip    `json:"trip"`
	Receipt *ledger.Entry `json:"receipt,omitempty"`
	Warning string        `json:"warning,omitempty"`
}

// Settle reconciles the trip and closes it. An over-receipt (received more
// than balance due net of shortage) is reported as a warning, not an error.
// When partial settlement is disabled, a trip with money still outstanding
// after the receipt cannot be closed.
func (s *Service) Settle(ctx context.Context, tripID string, in SettleInput) (Result, error) {
	if in.ReceivedAmount < 0 {
		return Result{}, fmt.Errorf("%w: received amount cannot be negative", shared.ErrValidation)
	}
	if in.ShortageDamage < 0 {
		return Result{}, fmt.Errorf("%w: shortage/damage cannot be negative", shared.ErrValidation)
	}
	f, err := s.Financials(ctx, tripID)
	if err != nil {
		return Result{}, err
	}

	var result Result
	if in.ReceivedAmount > shared.Round2(f.BalanceDue-in.ShortageDamage) {
		result.Warning = fmt.Sprintf(
			"received amount %.2f exceeds balance due %.2f less shortage/damage %.2f",
			in.ReceivedAmount, f.BalanceDue, in.ShortageDamage,
		)
	}

	outstanding := shared.Round2(f.BalanceDue - in.ReceivedAmount - in.ShortageDamage)
	if !s.allowPartial && outstanding > 0 {
		return Result{}, fmt.Errorf("%w: %.2f still outstanding; partial settlement is disabled", shared.ErrValidation, outstanding)
	}

	if in.ReceivedAmount > 0 {
		description := in.Remarks
		if description == "" {
			description = fmt.Sprintf("Settlement received for %s", tripID)
		}
		entry, err := s.ledger.Post(ctx, ledger.PostingInput{
			Kind:          ledger.KindReceipt,
			Date:          in.Date,
			Description:   description,
			ToAccountID:   &in.AccountID,
			Deposit:       in.ReceivedAmount,
			RelatedTripID: &tripID,
		})
		if err != nil {
			return Result{}, err
		}
		result.Receipt = &entry
	}

	if err := s.trips.Complete(ctx, tripID); err != nil {
		return Result{}, err
	}
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return Result{}, err
	}
	result.Trip = trip
	return result, nil
}
