package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayDetail holds the per-day itinerary notes for one day of a trip.
// At most one row exists per (TripID, DayNumber); writes go through an upsert.
//
// Latitude/Longitude are best-effort: when a destination is saved without
// coordinates the service asks the geocoder, and a geocoding failure leaves
// them nil without blocking the save.
type DayDetail struct {
	ID             uuid.UUID        `json:"id"`
	TripID         uuid.UUID        `json:"trip_id"`
	DayNumber      int              `json:"day_number"`
	Destination    string           `json:"destination,omitempty"`
	Latitude       *float64         `json:"latitude,omitempty"`
	Longitude      *float64         `json:"longitude,omitempty"`
	LocalTransport string           `json:"local_transport,omitempty"`
	FoodBudget     *decimal.Decimal `json:"food_budget,omitempty"` // adjustment to the trip's daily food budget, this day only
	SameCity       bool             `json:"same_city"`             // suppresses intercity-travel prompts
	IntercityType  string           `json:"intercity_type,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Empty reports whether the detail carries no user content. An upsert with an
// empty payload deletes the row instead of storing a blank one — details are
// created lazily and removed when the user clears every field.
func (d DayDetail) Empty() bool {
	return d.Destination == "" &&
		d.LocalTransport == "" &&
		d.FoodBudget == nil &&
		!d.SameCity &&
		d.IntercityType == ""
}
