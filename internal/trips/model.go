package trips

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status enumerates trip lifecycle values. Transitions are direct
// overwrites; any status is reachable from any status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInTransit Status = "IN_TRANSIT"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Trip is the central transactional entity. Its identifier is generated
// once and never changes; trips are never hard-deleted.
//
// CommissionRate and OraiCharge are frozen from the transporter at creation
// time, so later edits to the transporter's master rates leave historical
// trip math untouched. The derived amounts are recomputed from the frozen
// snapshot on every save.
type Trip struct {
	TripID        string    `json:"trip_id"`
	Date          time.Time `json:"date"`
	VehicleNo     string    `json:"vehicle_no"`
	DriverID      string    `json:"driver_id"`
	ClientID      int64     `json:"client_id"`
	TransporterID int64     `json:"transporter_id"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`

	Rate   float64 `json:"rate"`
	Weight float64 `json:"weight"`

	TotalFreight     float64 `json:"total_freight"`
	CommissionRate   float64 `json:"commission_rate"`
	OraiCharge       float64 `json:"orai_charge"`
	CommissionAmount float64 `json:"commission_amount"`
	OraiAmount       float64 `json:"orai_amount"`

	Halting float64 `json:"halting"`
	Advance float64 `json:"advance"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const tripIDPrefix = "TRP-"

// NextTripID generates the sequential human-readable id following the
// highest existing one: TRP-0001, TRP-0002, ... Falls back to 1 when there
// is no previous trip or its id does not parse. Numbers are never reused
// after a gap.
func NextTripID(lastID string) string {
	number := 1
	if lastID != "" {
		if suffix, ok := strings.CutPrefix(lastID, tripIDPrefix); ok {
			if n, err := strconv.Atoi(suffix); err == nil {
				number = n + 1
			}
		}
	}
	return fmt.Sprintf("%s%04d", tripIDPrefix, number)
}
