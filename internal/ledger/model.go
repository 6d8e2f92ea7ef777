package ledger

import "time"

// Kind classifies how an entry moves money relative to the tracked system
// boundary. External receipts and payments carry a single account reference;
// a transfer is one record both sides are derived from.
type Kind string

const (
	// KindPayment is money leaving a tracked account to the outside
	// (expenses, vendor bills).
	KindPayment Kind = "PAYMENT"
	// KindReceipt is money arriving into a tracked account from the outside
	// (advance receipts, settlements).
	KindReceipt Kind = "RECEIPT"
	// KindTransfer moves money between two tracked accounts.
	KindTransfer Kind = "TRANSFER"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPayment, KindReceipt, KindTransfer:
		return true
	}
	return false
}

// Entry is one recorded movement of money. Entries are append-only: nothing
// in the system updates or deletes them once posted.
//
// Exactly one of Withdrawal and Deposit is positive on every entry. A
// TRANSFER holds its amount in Withdrawal and carries both account
// references; the receiving side is derived, never stored as a second row.
type Entry struct {
	ID            int64     `json:"id"`
	Kind          Kind      `json:"kind"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	FromAccountID *int64    `json:"from_account_id,omitempty"`
	ToAccountID   *int64    `json:"to_account_id,omitempty"`
	Withdrawal    float64   `json:"withdrawal"`
	Deposit       float64   `json:"deposit"`

	RelatedTripID        *string `json:"related_trip_id,omitempty"`
	RelatedTripExpenseID *int64  `json:"related_trip_expense_id,omitempty"`
	RelatedMaintenanceID *int64  `json:"related_maintenance_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Amount returns the money moved by the entry regardless of kind.
func (e Entry) Amount() float64 {
	if e.Deposit > 0 {
		return e.Deposit
	}
	return e.Withdrawal
}

// LedgerLine is one row of an account's running-balance statement.
type LedgerLine struct {
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	Credit         float64   `json:"credit"`
	Debit          float64   `json:"debit"`
	RunningBalance float64   `json:"running_balance"`
	RelatedTripID  *string   `json:"related_trip_id,omitempty"`
}
