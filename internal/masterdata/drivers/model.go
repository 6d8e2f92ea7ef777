package drivers

import "time"

// Driver is keyed by a short human-assigned driver id.
type Driver struct {
	DriverID      string    `json:"driver_id"`
	Name          string    `json:"name"`
	Mobile        string    `json:"mobile"`
	LicenseNo     string    `json:"license_no"`
	LicenseExpiry time.Time `json:"license_expiry"`
	FixedSalary   float64   `json:"fixed_salary"`
	WageRate      float64   `json:"wage_rate"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
