package categories

import "time"

// Category classifies expenses. IsTripExpense marks whether amounts in the
// category count toward trip profit/loss. RevenueAddback marks categories
// (halting charges and the like) whose amounts are billed on top of freight:
// they add to trip revenue instead of being deducted as cost.
type Category struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	IsTripExpense  bool      `json:"is_trip_expense"`
	RevenueAddback bool      `json:"revenue_addback"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
