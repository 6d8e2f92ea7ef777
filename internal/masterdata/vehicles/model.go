package vehicles

import "time"

// Vehicle is a fleet vehicle keyed by its registration number.
type Vehicle struct {
	VehicleNo     string     `json:"vehicle_no"`
	VehicleType   string     `json:"vehicle_type"`
	Ownership     string     `json:"ownership"`
	OwnerName     string     `json:"owner_name,omitempty"`
	Hypothecation string     `json:"hypothecation,omitempty"`
	RegDate       *time.Time `json:"reg_date,omitempty"`
	FitnessExpiry *time.Time `json:"fitness_expiry,omitempty"`
	PermitExpiry  *time.Time `json:"permit_expiry,omitempty"`
	InsuranceExpiry *time.Time `json:"insurance_expiry,omitempty"`
	NationalPermit  string     `json:"national_permit,omitempty"`
	PUCExpiry       *time.Time `json:"puc_expiry,omitempty"`
	TaxExpiry       *time.Time `json:"tax_expiry,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ComplianceDocs returns the labelled regulatory expiry dates tracked for
// the vehicle, skipping unset ones.
func (v Vehicle) ComplianceDocs() map[string]*time.Time {
	return map[string]*time.Time{
		"fitness":   v.FitnessExpiry,
		"permit":    v.PermitExpiry,
		"insurance": v.InsuranceExpiry,
		"puc":       v.PUCExpiry,
		"tax":       v.TaxExpiry,
	}
}
