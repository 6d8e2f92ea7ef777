package dockets

import "time"

// Docket tracks a physical transport document through send and receive
// confirmation. No derived logic; cascade-deleted with its trip.
type Docket struct {
	ID              int64      `json:"id"`
	TripID          string     `json:"trip_id"`
	DriverID        string     `json:"driver_id"`
	TransporterID   int64      `json:"transporter_id"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	DocketNo        string     `json:"docket_no"`
	SendDate        time.Time  `json:"send_date"`
	ChallanReceived bool       `json:"challan_received"`
	ReceivedDate    *time.Time `json:"received_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
