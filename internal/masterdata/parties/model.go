package parties

import (
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/shared"
)

// Role tags a party with the capacity it acts in. A single master list
// covers clients, hired carriers, workshops and miscellaneous vendors.
type Role string

const (
	RoleClient      Role = "CLIENT"
	RoleTransporter Role = "TRANSPORTER"
	RoleWorkshop    Role = "WORKSHOP"
	RoleOther       Role = "OTHER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleTransporter, RoleWorkshop, RoleOther:
		return true
	}
	return false
}

// Party is the unified master record for every external counterparty.
// CommissionRate and OraiCharge are meaningful only when Role is
// TRANSPORTER; other roles carry zeros.
type Party struct {
	ID             int64     `json:"id"`
	Role           Role      `json:"party_type"`
	Name           string    `json:"name"`
	NickName       string    `json:"nick_name,omitempty"`
	ContactPerson  string    `json:"contact_person,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	GSTNumber      string    `json:"gst_number,omitempty"`
	PANNumber      string    `json:"pan_number,omitempty"`
	BankAccountNo  string    `json:"bank_account_no,omitempty"`
	IFSCCode       string    `json:"ifsc_code,omitempty"`
	CommissionRate float64   `json:"commission_rate"`
	OraiCharge     float64   `json:"orai_charge"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RequireRole checks that the party can act in the given capacity. Slots
// that need a workshop also accept miscellaneous vendors, mirroring how
// maintenance bills are raised by either.
func RequireRole(p Party, role Role) error {
	if p.Role == role {
		return nil
	}
	if role == RoleWorkshop && p.Role == RoleOther {
		return nil
	}
	return fmt.Errorf("%w: party %q is %s, slot requires %s", shared.ErrInvalidRole, p.Name, p.Role, role)
}
