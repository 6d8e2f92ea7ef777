package accounts

import "time"

// Type tags the kind of money store an account represents.
type Type string

const (
	TypeBank       Type = "BANK"
	TypeCash       Type = "CASH"
	TypeFastag     Type = "FASTAG"
	TypeDieselCard Type = "DIESELCARD"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBank, TypeCash, TypeFastag, TypeDieselCard:
		return true
	}
	return false
}

// Account is a tracked cash/bank/wallet account. The current balance is
// never stored; it is always derived by replaying the transaction log
// against InitialBalance.
type Account struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           Type      `json:"account_type"`
	InitialBalance float64   `json:"initial_balance"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
