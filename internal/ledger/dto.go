package ledger

import (
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/shared"
)

// PostingInput groups the fields required to post one ledger entry. The
// same validation applies whether the entry is posted manually or generated
// from an expense record; there is no bypass path.
type PostingInput struct {
	Kind          Kind
	Date          time.Time
	Description   string
	FromAccountID *int64
	ToAccountID   *int64
	Withdrawal    float64
	Deposit       float64

	RelatedTripID        *string
	RelatedTripExpenseID *int64
	RelatedMaintenanceID *int64
}

// Validate enforces the entry shape before any mutation.
func (in PostingInput) Validate() error {
	if !in.Kind.Valid() {
		return fmt.Errorf("%w: unknown entry kind %q", shared.ErrValidation, in.Kind)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: entry date required", shared.ErrValidation)
	}
	if in.Withdrawal < 0 || in.Deposit < 0 {
		return fmt.Errorf("%w: amounts cannot be negative", shared.ErrValidation)
	}
	if in.Withdrawal > 0 && in.Deposit > 0 {
		return fmt.Errorf("%w: a single entry cannot carry both a deposit and a withdrawal", shared.ErrValidation)
	}
	if in.Withdrawal == 0 && in.Deposit == 0 {
		return fmt.Errorf("%w: entry must carry a deposit or a withdrawal amount", shared.ErrValidation)
	}

	switch in.Kind {
	case KindPayment:
		if in.Withdrawal == 0 {
			return fmt.Errorf("%w: a payment carries its amount as a withdrawal", shared.ErrValidation)
		}
		if in.FromAccountID == nil {
			return fmt.Errorf("%w: a withdrawal requires a from-account", shared.ErrValidation)
		}
		if in.ToAccountID != nil {
			return fmt.Errorf("%w: a payment leaves the tracked accounts and has no to-account", shared.ErrValidation)
		}
	case KindReceipt:
		if in.Deposit == 0 {
			return fmt.Errorf("%w: a receipt carries its amount as a deposit", shared.ErrValidation)
		}
		if in.ToAccountID == nil {
			return fmt.Errorf("%w: a deposit requires a to-account", shared.ErrValidation)
		}
		if in.FromAccountID != nil {
			return fmt.Errorf("%w: a receipt enters from outside and has no from-account", shared.ErrValidation)
		}
	case KindTransfer:
		if in.Withdrawal == 0 {
			return fmt.Errorf("%w: a transfer carries its amount as a withdrawal", shared.ErrValidation)
		}
		if in.FromAccountID == nil || in.ToAccountID == nil {
			return fmt.Errorf("%w: a transfer requires both accounts", shared.ErrValidation)
		}
		if *in.FromAccountID == *in.ToAccountID {
			return fmt.Errorf("%w: a transfer cannot target its own source account", shared.ErrValidation)
		}
	}
	return nil
}

// TransferInput wraps the convenience parameters for an account-to-account
// transfer.
type TransferInput struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        float64
	Date          time.Time
	Description   string
}
