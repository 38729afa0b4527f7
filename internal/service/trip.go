// Package service contains the business logic for the trip ledger API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/repo"
	"github.com/tripledger/api/internal/tripday"
)

// TripService implements business logic for Trip operations.
// It holds the expense repo as well because editing a trip's start date
// requires recalculating the day-number of every dated expense.
type TripService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, expenses repo.ExpenseRepo) *TripService {
	return &TripService{trips: trips, expenses: expenses}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips plus the total trip count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
//
// When the update leaves the trip with a start date that differs from the
// previous one (including setting a date on a previously undated trip), every
// expense carrying a concrete date gets its day-number recalculated from the
// new start. Expenses without a date are left untouched — for them the
// day-number is the only source of truth. The whole batch is applied in one
// transaction by the repo, so a failure leaves either all or none of the
// day-numbers updated.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}

	previous, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if startDateChanged(previous, result) {
		if err := s.recalculateDayNumbers(ctx, result); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
	}

	return result, nil
}

// Delete removes a trip by ID. Expenses and day details cascade at the
// schema level.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// recalculateDayNumbers walks all dated expenses on the trip and recomputes
// each day-number from the trip's new start date, clamping out-of-range
// results into [1, days] (lower bound only when days is unset).
func (s *TripService) recalculateDayNumbers(ctx context.Context, trip domain.Trip) error {
	expenses, err := s.expenses.ListByTripID(ctx, trip.ID)
	if err != nil {
		return fmt.Errorf("recalculate day numbers: %w", err)
	}

	var updates []domain.DayNumberUpdate
	for _, e := range expenses {
		if e.Date == nil {
			continue
		}
		n := tripday.DayNumber(*trip.StartDate, *e.Date)
		if trip.Days != nil && n > *trip.Days {
			n = *trip.Days
		}
		if e.DayNumber != nil && *e.DayNumber == n {
			continue
		}
		updates = append(updates, domain.DayNumberUpdate{ExpenseID: e.ID, DayNumber: n})
	}

	if err := s.expenses.UpdateDayNumbers(ctx, trip.ID, updates); err != nil {
		return fmt.Errorf("recalculate day numbers: %w", err)
	}
	return nil
}

// startDateChanged reports whether the update left the trip with a usable
// start date different from before. Clearing the start date does not trigger
// recalculation: without a calendar the stored day-numbers are already the
// only source of truth.
func startDateChanged(previous, current domain.Trip) bool {
	if current.StartDate == nil {
		return false
	}
	if previous.StartDate == nil {
		return true
	}
	return tripday.DaysBetween(*previous.StartDate, *current.StartDate) != 0
}

// normalizeTrip enforces business rules common to both Create and Update and
// fills in whichever of end-date/day-count can be derived from the other:
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Days, if set, must be >= 1.
//   - EndDate, if set alongside StartDate, must not be before StartDate.
//   - When StartDate, EndDate, and Days are all supplied they must agree;
//     a contradictory triple is rejected rather than silently trusting one side.
func normalizeTrip(trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.Name) == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.Days != nil && *trip.Days < 1 {
		return domain.Trip{}, fmt.Errorf("%w: days must be at least 1", domain.ErrValidation)
	}
	if trip.EndDate != nil && trip.StartDate == nil {
		return domain.Trip{}, fmt.Errorf("%w: end_date requires start_date", domain.ErrValidation)
	}

	if trip.StartDate != nil && trip.EndDate != nil {
		span := tripday.DaysBetween(*trip.StartDate, *trip.EndDate) + 1
		if span < 1 {
			return domain.Trip{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
		}
		if trip.Days == nil {
			trip.Days = &span
		} else if *trip.Days != span {
			return domain.Trip{}, fmt.Errorf("%w: days does not match start_date and end_date", domain.ErrValidation)
		}
	}

	if trip.StartDate != nil && trip.Days != nil && trip.EndDate == nil {
		end := tripday.Date(*trip.StartDate, *trip.Days)
		trip.EndDate = &end
	}

	return trip, nil
}
