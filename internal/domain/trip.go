// Package domain contains the core data types for the trip ledger API.
// Apart from uuid and decimal it has no external dependencies and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate; expenses and day details belong to a trip.
//
// StartDate is nil for "undated" trips, where days are referenced purely by
// their 1-based day-number and carry no calendar meaning. When StartDate and
// Days are both set the trip spans exactly Days calendar days starting at
// StartDate (inclusive).
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Days      *int       `json:"days,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Dated reports whether the trip has a calendar anchor. Day-numbers on an
// undated trip are opaque indices; on a dated trip they are derived from
// expense dates.
func (t Trip) Dated() bool {
	return t.StartDate != nil
}
