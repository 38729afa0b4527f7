package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an expense. The set is fixed; anything else is rejected
// at validation time.
type Category string

const (
	CategoryFlights       Category = "flights"
	CategoryIntercity     Category = "intercity"
	CategoryLocal         Category = "local"
	CategoryAccommodation Category = "accommodation"
	CategoryFood          Category = "food"
	CategoryActivities    Category = "activities"
	CategoryOther         Category = "other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryFlights,
	CategoryIntercity,
	CategoryLocal,
	CategoryAccommodation,
	CategoryFood,
	CategoryActivities,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense is a single cost entry on a trip.
//
// Description doubles as the booking key for accommodation rows: a
// multi-night lodging stay is a run of accommodation expenses sharing the
// same description, one row per night at the nightly rate.
//
// Date is nil on undated trips, where DayNumber is the only placement
// information. On a dated trip Date and DayNumber must agree:
// DayNumber = (Date − trip start) in days + 1, clamped to a minimum of 1.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	TripID      uuid.UUID       `json:"trip_id"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	URL         string          `json:"url,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	DayNumber   *int            `json:"day_number,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DayNumberUpdate is one entry in a batch day-number recalculation.
type DayNumberUpdate struct {
	ExpenseID uuid.UUID
	DayNumber int
}
