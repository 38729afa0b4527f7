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

// ExpenseService implements business logic for Expense operations.
// It holds the trip repo because creating an expense requires verifying the
// parent trip exists, and because the date/day-number agreement invariant
// depends on the trip's start date.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates the expense, verifies the parent trip exists, then persists.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	trip, err := s.trips.GetByID(ctx, expense.TripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	expense, err = conformExpense(trip, expense)
	if err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single expense by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if no expense with that ID exists under that trip.
func (s *ExpenseService) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	result, err := s.expenses.GetByID(ctx, tripID, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all expenses for a trip ordered by day-number ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTripID: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Update validates and persists changes to an existing expense.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// expense does not exist under the given trip.
func (s *ExpenseService) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	trip, err := s.trips.GetByID(ctx, expense.TripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	expense, err = conformExpense(trip, expense)
	if err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Update(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if the expense does not exist under the given trip.
func (s *ExpenseService) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// conformExpense enforces the business rules common to Create and Update and
// keeps the date/day-number invariant:
//   - Category must be one of the fixed set.
//   - Description must be non-empty (it doubles as the lodging booking key).
//   - Cost must not be negative.
//   - DayNumber, if set, must be >= 1.
//   - On a dated trip, an expense with a date gets its day-number derived
//     from that date — the two can never disagree.
func conformExpense(trip domain.Trip, expense domain.Expense) (domain.Expense, error) {
	if !expense.Category.Valid() {
		return domain.Expense{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, expense.Category)
	}
	if strings.TrimSpace(expense.Description) == "" {
		return domain.Expense{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if expense.Cost.IsNegative() {
		return domain.Expense{}, fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if expense.DayNumber != nil && *expense.DayNumber < 1 {
		return domain.Expense{}, fmt.Errorf("%w: day_number must be at least 1", domain.ErrValidation)
	}

	if trip.Dated() && expense.Date != nil {
		n := tripday.DayNumber(*trip.StartDate, *expense.Date)
		expense.DayNumber = &n
	}

	return expense, nil
}
