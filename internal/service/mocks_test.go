package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/geocode"
	"github.com/tripledger/api/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Set only the method fields your test needs; unset methods return zero values.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	if m.list != nil {
		return m.list(ctx, p)
	}
	return nil, 0, nil
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}

func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockExpenseRepo struct {
	create           func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID          func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	listByTripID     func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update           func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	delete           func(ctx context.Context, tripID, expenseID uuid.UUID) error
	replaceLodging   func(ctx context.Context, tripID uuid.UUID, deleteIDs []uuid.UUID, create []domain.Expense) ([]domain.Expense, error)
	updateDayNumbers func(ctx context.Context, tripID uuid.UUID, updates []domain.DayNumberUpdate) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}

func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, expenseID)
}

func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}

func (m *mockExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.update(ctx, expense)
}

func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

func (m *mockExpenseRepo) ReplaceLodging(ctx context.Context, tripID uuid.UUID, deleteIDs []uuid.UUID, create []domain.Expense) ([]domain.Expense, error) {
	return m.replaceLodging(ctx, tripID, deleteIDs, create)
}

func (m *mockExpenseRepo) UpdateDayNumbers(ctx context.Context, tripID uuid.UUID, updates []domain.DayNumberUpdate) error {
	if m.updateDayNumbers != nil {
		return m.updateDayNumbers(ctx, tripID, updates)
	}
	return nil
}

// compile-time check: mockExpenseRepo must satisfy repo.ExpenseRepo.
var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockDayDetailRepo struct {
	upsert             func(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error)
	getByTripAndDay    func(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error)
	listByTripID       func(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error)
	deleteByTripAndDay func(ctx context.Context, tripID uuid.UUID, dayNumber int) error
}

func (m *mockDayDetailRepo) Upsert(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error) {
	return m.upsert(ctx, detail)
}

func (m *mockDayDetailRepo) GetByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error) {
	return m.getByTripAndDay(ctx, tripID, dayNumber)
}

func (m *mockDayDetailRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error) {
	return m.listByTripID(ctx, tripID)
}

func (m *mockDayDetailRepo) DeleteByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) error {
	return m.deleteByTripAndDay(ctx, tripID, dayNumber)
}

// compile-time check: mockDayDetailRepo must satisfy repo.DayDetailRepo.
var _ repo.DayDetailRepo = (*mockDayDetailRepo)(nil)

type mockGeocoder struct {
	geocode func(ctx context.Context, destination string) (*geocode.Result, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, destination string) (*geocode.Result, error) {
	return m.geocode(ctx, destination)
}

// compile-time check: mockGeocoder must satisfy geocode.Geocoder.
var _ geocode.Geocoder = (*mockGeocoder)(nil)
