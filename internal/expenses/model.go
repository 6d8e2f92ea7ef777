package expenses

import "time"

// TripExpense belongs to exactly one trip and is cascade-deleted with it.
// When PaidViaAccountID is set the recorder posts one ledger withdrawal
// alongside it; a nil account means driver-pocket cash and posts nothing.
type TripExpense struct {
	ID               int64     `json:"id"`
	TripID           string    `json:"trip_id"`
	Date             time.Time `json:"date"`
	CategoryID       int64     `json:"category_id"`
	PaidViaAccountID *int64    `json:"paid_via_account_id,omitempty"`
	Description      string    `json:"description,omitempty"`
	Amount           float64   `json:"amount"`
	BillNo           string    `json:"bill_no,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// MaintenanceExpense tracks a vehicle workshop bill. It starts unpaid and
// is flipped to paid either directly at creation or later by a ledger entry
// that references it back.
type MaintenanceExpense struct {
	ID               int64      `json:"id"`
	Date             time.Time  `json:"date"`
	VehicleNo        string     `json:"vehicle_no"`
	WorkshopID       int64      `json:"workshop_id"`
	CategoryID       int64      `json:"category_id"`
	Description      string     `json:"description"`
	Shop             string     `json:"shop,omitempty"`
	Amount           float64    `json:"amount"`
	IsPaid           bool       `json:"is_paid"`
	PaymentDate      *time.Time `json:"payment_date,omitempty"`
	PaidViaAccountID *int64     `json:"paid_via_account_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
