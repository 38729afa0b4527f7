package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/repo"
	"github.com/tripledger/api/internal/tripday"
)

// LodgingService implements the multi-night accommodation logic. A booking is
// not its own entity — it is a run of accommodation expense rows sharing one
// description, one row per night at the nightly rate. This service detects
// those runs and rebuilds them from a single booking form.
type LodgingService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewLodgingService constructs a LodgingService backed by the provided repos.
func NewLodgingService(trips repo.TripRepo, expenses repo.ExpenseRepo) *LodgingService {
	return &LodgingService{trips: trips, expenses: expenses}
}

// Block returns the multi-night lodging block covering dayNumber, or nil when
// the day has no accommodation row or belongs to a single-night stay.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *LodgingService) Block(ctx context.Context, tripID uuid.UUID, dayNumber int) (*domain.LodgingBlock, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LodgingService.Block: %w", err)
	}
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LodgingService.Block: %w", err)
	}
	return ResolveLodgingBlock(expenses, dayNumber), nil
}

// ResolveLodgingBlock finds the maximal consecutive-day accommodation block
// containing dayNumber among the given expenses.
//
// The scan partitions the same-name accommodation rows (sorted by day-number)
// into maximal runs where each day-number is exactly one more than the
// previous. The run containing the target day wins; the final run qualifies
// without needing a trailing gap. Runs of a single night return nil — they
// are not editable as a block.
//
// This never fails: absence of a qualifying block is a nil result.
func ResolveLodgingBlock(expenses []domain.Expense, dayNumber int) *domain.LodgingBlock {
	target := findAccommodationRow(expenses, dayNumber)
	if target == nil {
		return nil
	}

	// All rows of the same booking, in day order. Rows without a day-number
	// cannot participate in a run.
	var rows []domain.Expense
	for _, e := range expenses {
		if e.Category == domain.CategoryAccommodation &&
			e.Description == target.Description &&
			e.DayNumber != nil {
			rows = append(rows, e)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return *rows[i].DayNumber < *rows[j].DayNumber })

	block := runContaining(rows, dayNumber)
	if len(block) < 2 {
		return nil
	}

	return buildBlock(block)
}

// findAccommodationRow returns the accommodation row on the given day, if any.
func findAccommodationRow(expenses []domain.Expense, dayNumber int) *domain.Expense {
	for i := range expenses {
		e := &expenses[i]
		if e.Category == domain.CategoryAccommodation && e.DayNumber != nil && *e.DayNumber == dayNumber {
			return e
		}
	}
	return nil
}

// runContaining scans sorted rows left to right, splitting at every day-number
// gap, and returns the run holding dayNumber. The run still open when the
// scan ends counts too.
func runContaining(rows []domain.Expense, dayNumber int) []domain.Expense {
	var run []domain.Expense
	for _, e := range rows {
		if len(run) > 0 && *e.DayNumber != *run[len(run)-1].DayNumber+1 {
			// Gap: the previous run is closed. Keep it if it holds the target.
			if runHolds(run, dayNumber) {
				return run
			}
			run = nil
		}
		run = append(run, e)
	}
	if runHolds(run, dayNumber) {
		return run
	}
	return nil
}

func runHolds(run []domain.Expense, dayNumber int) bool {
	return len(run) > 0 && *run[0].DayNumber <= dayNumber && dayNumber <= *run[len(run)-1].DayNumber
}

// buildBlock assembles the block summary from a qualifying run.
// Check-in is the first night's date; check-out the last night's date plus
// one day. Undated rows leave both nil.
func buildBlock(run []domain.Expense) *domain.LodgingBlock {
	first, last := run[0], run[len(run)-1]

	b := &domain.LodgingBlock{
		Name:        first.Description,
		Nights:      len(run),
		NightlyRate: first.Cost,
		TotalCost:   first.Cost.Mul(decimal.NewFromInt(int64(len(run)))),
	}
	for _, e := range run {
		b.DayNumbers = append(b.DayNumbers, *e.DayNumber)
		b.ExpenseIDs = append(b.ExpenseIDs, e.ID)
	}
	if first.Date != nil {
		ci := *first.Date
		b.CheckIn = &ci
	}
	if last.Date != nil {
		co := tripday.Date(*last.Date, 2) // last night + 1 day
		b.CheckOut = &co
	}
	return b
}

// Reconcile atomically replaces the per-night accommodation rows of one
// booking from a single higher-level input, for both initial creation and
// edits of an existing stay.
//
// Dated trips take check-in/check-out dates; undated trips take an explicit
// night count and starting day-number. Nights falling outside the trip's
// [1, days] range are silently dropped — the booking is clipped to the trip
// rather than rejected. The delete-then-insert runs in one transaction, and
// rates are always recomputed uniformly from the new total, never reused from
// the old rows.
func (s *LodgingService) Reconcile(ctx context.Context, tripID uuid.UUID, input domain.BulkLodgingInput) (domain.BulkLodgingResult, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.BulkLodgingResult{}, fmt.Errorf("service.LodgingService.Reconcile: %w", err)
	}

	if strings.TrimSpace(input.Name) == "" {
		return domain.BulkLodgingResult{}, fmt.Errorf("%w: lodging name is required", domain.ErrValidation)
	}
	if !input.TotalCost.IsPositive() {
		return domain.BulkLodgingResult{}, fmt.Errorf("%w: total cost is required", domain.ErrValidation)
	}

	nights, firstDay, checkIn, err := plannedNights(trip, input)
	if err != nil {
		return domain.BulkLodgingResult{}, err
	}

	nightlyRate := input.TotalCost.Div(decimal.NewFromInt(int64(nights))).Round(2)

	// Fan the booking out into one row per night, clipping nights that fall
	// off the trip. The raw day offset is used here (not the clamped
	// DayNumber) so a night before the trip start is dropped instead of
	// piling onto day 1.
	var create []domain.Expense
	newDays := make(map[int]bool, nights)
	for i := 0; i < nights; i++ {
		day := firstDay + i
		if day < 1 {
			continue
		}
		if trip.Days != nil && day > *trip.Days {
			continue
		}

		e := domain.Expense{
			TripID:      tripID,
			Category:    domain.CategoryAccommodation,
			Description: input.Name,
			Cost:        nightlyRate,
			URL:         input.URL,
			DayNumber:   &day,
		}
		if checkIn != nil {
			d := tripday.Date(*checkIn, i+1) // check-in + i days
			e.Date = &d
		}
		create = append(create, e)
		newDays[day] = true
	}

	deleteIDs, err := s.rowsToDelete(ctx, tripID, input, newDays)
	if err != nil {
		return domain.BulkLodgingResult{}, err
	}

	created, err := s.expenses.ReplaceLodging(ctx, tripID, deleteIDs, create)
	if err != nil {
		return domain.BulkLodgingResult{}, fmt.Errorf("service.LodgingService.Reconcile: %w", err)
	}
	if created == nil {
		created = []domain.Expense{}
	}

	return domain.BulkLodgingResult{
		Created:     created,
		Nights:      nights,
		NightlyRate: nightlyRate,
	}, nil
}

// plannedNights resolves the active input mode and returns the night count,
// the (raw, unclamped) day-number of the first night, and the check-in date
// when the trip is dated.
func plannedNights(trip domain.Trip, input domain.BulkLodgingInput) (nights, firstDay int, checkIn *time.Time, err error) {
	if trip.Dated() {
		if input.CheckIn == nil || input.CheckOut == nil {
			return 0, 0, nil, fmt.Errorf("%w: check-in and check-out dates are required", domain.ErrValidation)
		}
		nights, err = tripday.Nights(*input.CheckIn, *input.CheckOut)
		if err != nil {
			return 0, 0, nil, err
		}
		firstDay = tripday.DaysBetween(*trip.StartDate, *input.CheckIn) + 1
		return nights, firstDay, input.CheckIn, nil
	}

	if input.Nights == nil || *input.Nights < 1 {
		return 0, 0, nil, fmt.Errorf("%w: night count is required", domain.ErrValidation)
	}
	if input.StartDay == nil || *input.StartDay < 1 {
		return 0, 0, nil, fmt.Errorf("%w: starting day is required", domain.ErrValidation)
	}
	return *input.Nights, *input.StartDay, nil, nil
}

// rowsToDelete selects the existing same-name accommodation rows to remove.
// An explicit day-number list (from a previously resolved block) wins;
// otherwise any same-name row overlapping the newly computed night range goes,
// which prevents duplicate nights when a booking is re-submitted with a
// different range.
func (s *LodgingService) rowsToDelete(ctx context.Context, tripID uuid.UUID, input domain.BulkLodgingInput, newDays map[int]bool) ([]uuid.UUID, error) {
	existing, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LodgingService.Reconcile: list existing: %w", err)
	}

	explicit := make(map[int]bool, len(input.DeleteDayNumbers))
	for _, d := range input.DeleteDayNumbers {
		explicit[d] = true
	}

	var ids []uuid.UUID
	for _, e := range existing {
		if e.Category != domain.CategoryAccommodation || e.Description != input.Name || e.DayNumber == nil {
			continue
		}
		if len(explicit) > 0 {
			if explicit[*e.DayNumber] {
				ids = append(ids, e.ID)
			}
			continue
		}
		if newDays[*e.DayNumber] {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}
