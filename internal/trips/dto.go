package trips

import (
	"fmt"
	"time"

	"github.com/routeledger/routeledger/internal/shared"
)

// CreateInput carries the fields the caller controls on a new trip.
// Advance distinguishes "not provided" (nil, defaulted to 80% of total
// freight) from an explicit amount, including an explicit zero.
type CreateInput struct {
	Date          time.Time
	ClientID      int64
	VehicleNo     string
	DriverID      string
	TransporterID int64
	Origin        string
	Destination   string
	Rate          float64
	Weight        float64
	Halting       float64
	Advance       *float64
	Status        Status
}

func (in CreateInput) Validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: trip date required", shared.ErrValidation)
	}
	if in.VehicleNo == "" {
		return fmt.Errorf("%w: vehicle required", shared.ErrValidation)
	}
	if in.DriverID == "" {
		return fmt.Errorf("%w: driver required", shared.ErrValidation)
	}
	if in.ClientID <= 0 {
		return fmt.Errorf("%w: client required", shared.ErrValidation)
	}
	if in.TransporterID <= 0 {
		return fmt.Errorf("%w: transporter required", shared.ErrValidation)
	}
	if in.Origin == "" || in.Destination == "" {
		return fmt.Errorf("%w: origin and destination required", shared.ErrValidation)
	}
	if in.Rate < 0 || in.Weight < 0 {
		return fmt.Errorf("%w: rate and weight cannot be negative", shared.ErrValidation)
	}
	if in.Halting < 0 {
		return fmt.Errorf("%w: halting charge cannot be negative", shared.ErrValidation)
	}
	if in.Advance != nil && *in.Advance < 0 {
		return fmt.Errorf("%w: advance cannot be negative", shared.ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown trip status %q", shared.ErrValidation, in.Status)
	}
	return nil
}

// UpdateInput mirrors CreateInput for edits. A nil Advance keeps the stored
// value rather than re-triggering the 80% default.
type UpdateInput struct {
	Date          time.Time
	ClientID      int64
	VehicleNo     string
	DriverID      string
	TransporterID int64
	Origin        string
	Destination   string
	Rate          float64
	Weight        float64
	Halting       float64
	Advance       *float64
	Status        Status
}
