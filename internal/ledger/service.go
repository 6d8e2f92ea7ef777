package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/masterdata/accounts"
	"github.com/routeledger/routeledger/internal/shared"
)

// AccountsPort provides the account master lookups the ledger needs for
// opening balances.
type AccountsPort interface {
	Get(ctx context.Context, id int64) (accounts.Account, error)
}

// Service is the single source of truth for account balances. Entries are
// appended through Post; balances and statements are always derived fresh
// by replaying the log against the account's opening balance.
type Service struct {
	repo     Repository
	accounts AccountsPort
	now      func() time.Time
}

func NewService(repo Repository, accountsPort AccountsPort) *Service {
	return &Service{repo: repo, accounts: accountsPort, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Post validates and appends one entry. When the entry references a
// maintenance expense that is still unpaid, the expense is flipped to paid
// in the same transaction, exactly once: posting a second entry against an
// already-paid expense leaves it untouched.
func (s *Service) Post(ctx context.Context, in PostingInput) (Entry, error) {
	if err := in.Validate(); err != nil {
		return Entry{}, err
	}
	var entry Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		inserted, err := tx.InsertEntry(ctx, in)
		if err != nil {
			return err
		}
		if in.RelatedMaintenanceID != nil {
			paid, err := tx.MaintenanceIsPaid(ctx, *in.RelatedMaintenanceID)
			if err != nil {
				return err
			}
			if !paid {
				if err := tx.MarkMaintenancePaid(ctx, *in.RelatedMaintenanceID, in.Date, in.FromAccountID); err != nil {
					return err
				}
			}
		}
		entry = inserted
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Transfer posts a single TRANSFER entry both account statements derive
// their side from, so the combined balance of the two accounts is conserved
// by construction.
func (s *Service) Transfer(ctx context.Context, in TransferInput) (Entry, error) {
	if in.Amount <= 0 {
		return Entry{}, fmt.Errorf("%w: transfer amount must be positive", shared.ErrValidation)
	}
	description := in.Description
	if description == "" {
		description = "Fund transfer"
	}
	return s.Post(ctx, PostingInput{
		Kind:          KindTransfer,
		Date:          in.Date,
		Description:   description,
		FromAccountID: &in.FromAccountID,
		ToAccountID:   &in.ToAccountID,
		Withdrawal:    in.Amount,
	})
}

// Balance derives the account balance from its opening balance and the
// qualifying entries. Repeated calls have no side effects.
func (s *Service) Balance(ctx context.Context, accountID int64) (float64, error) {
	return s.BalanceAsOf(ctx, accountID, nil)
}

// BalanceAsOf derives the balance considering only entries dated on or
// before asOf. A nil asOf means the full history.
func (s *Service) BalanceAsOf(ctx context.Context, accountID int64, asOf *time.Time) (float64, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	entries, err := s.repo.ListByAccount(ctx, accountID, asOf)
	if err != nil {
		return 0, err
	}
	balance := account.InitialBalance
	for _, e := range entries {
		credit, debit := e.sides(accountID)
		balance = shared.Round2(balance + credit - debit)
	}
	return balance, nil
}

// Ledger produces the chronologically ordered running-balance statement for
// one account, recomputed fresh on each call.
func (s *Service) Ledger(ctx context.Context, accountID int64) ([]LedgerLine, float64, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.repo.ListByAccount(ctx, accountID, nil)
	if err != nil {
		return nil, 0, err
	}

	running := account.InitialBalance
	lines := make([]LedgerLine, 0, len(entries))
	for _, e := range entries {
		credit, debit := e.sides(accountID)
		running = shared.Round2(running + credit - debit)
		lines = append(lines, LedgerLine{
			Date:           e.Date,
			Description:    e.Description,
			Credit:         credit,
			Debit:          debit,
			RunningBalance: running,
			RelatedTripID:  e.RelatedTripID,
		})
	}
	return lines, running, nil
}

// EntriesForTrip lists every entry linked to a trip, oldest first.
func (s *Service) EntriesForTrip(ctx context.Context, tripID string) ([]Entry, error) {
	return s.repo.ListByTrip(ctx, tripID)
}

// sides classifies the entry's effect on one account. A transfer appears as
// a debit on the source and a credit of the same amount on the destination,
// derived from the single stored record.
func (e Entry) sides(accountID int64) (credit, debit float64) {
	switch e.Kind {
	case KindReceipt:
		if e.ToAccountID != nil && *e.ToAccountID == accountID {
			credit = e.Deposit
		}
	case KindPayment:
		if e.FromAccountID != nil && *e.FromAccountID == accountID {
			debit = e.Withdrawal
		}
	case KindTransfer:
		if e.FromAccountID != nil && *e.FromAccountID == accountID {
			debit = e.Withdrawal
		}
		if e.ToAccountID != nil && *e.ToAccountID == accountID {
			credit = e.Withdrawal
		}
	}
	return credit, debit
}
