package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/service"
)

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_OK(t *testing.T) {
	stored := domain.Trip{ID: uuid.New(), Name: "Portugal"}
	svc := service.NewTripService(
		&mockTripRepo{
			create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
				return stored, nil
			},
		},
		&mockExpenseRepo{},
	)

	got, err := svc.Create(context.Background(), domain.Trip{Name: "Portugal"})

	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestTripService_Create_NameRequired(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, &mockExpenseRepo{})

	_, err := svc.Create(context.Background(), domain.Trip{Name: "   "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_DerivesDaysFromDates(t *testing.T) {
	var created domain.Trip
	svc := service.NewTripService(
		&mockTripRepo{
			create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
				created = tr
				return tr, nil
			},
		},
		&mockExpenseRepo{},
	)

	_, err := svc.Create(context.Background(), domain.Trip{
		Name:      "Portugal",
		StartDate: datePtr(2024, time.June, 1),
		EndDate:   datePtr(2024, time.June, 10),
	})

	require.NoError(t, err)
	require.NotNil(t, created.Days)
	assert.Equal(t, 10, *created.Days, "days should span start through end inclusive")
}

func TestTripService_Create_DerivesEndDateFromDays(t *testing.T) {
	var created domain.Trip
	svc := service.NewTripService(
		&mockTripRepo{
			create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
				created = tr
				return tr, nil
			},
		},
		&mockExpenseRepo{},
	)

	_, err := svc.Create(context.Background(), domain.Trip{
		Name:      "Portugal",
		StartDate: datePtr(2024, time.June, 1),
		Days:      intPtr(10),
	})

	require.NoError(t, err)
	require.NotNil(t, created.EndDate)
	assert.True(t, created.EndDate.Equal(*datePtr(2024, time.June, 10)))
}

func TestTripService_Create_ContradictoryDays(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, &mockExpenseRepo{})

	_, err := svc.Create(context.Background(), domain.Trip{
		Name:      "Portugal",
		StartDate: datePtr(2024, time.June, 1),
		EndDate:   datePtr(2024, time.June, 10),
		Days:      intPtr(4), // disagrees with the 10-day date span
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, &mockExpenseRepo{})

	_, err := svc.Create(context.Background(), domain.Trip{
		Name:      "Portugal",
		StartDate: datePtr(2024, time.June, 10),
		EndDate:   datePtr(2024, time.June, 1),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Update + day-number recalculation -------------------------------------

// updateHarness wires a TripService whose expense repo records the day-number
// batch it receives.
type updateHarness struct {
	svc     *service.TripService
	updates *[]domain.DayNumberUpdate
	batches *int
}

func newUpdateHarness(t *testing.T, previous domain.Trip, expenses []domain.Expense) updateHarness {
	t.Helper()

	var gotUpdates []domain.DayNumberUpdate
	batches := 0

	trips := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return previous, nil
		},
		update: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
			return tr, nil
		},
	}
	expenseRepo := &mockExpenseRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Expense, error) {
			return expenses, nil
		},
		updateDayNumbers: func(_ context.Context, _ uuid.UUID, updates []domain.DayNumberUpdate) error {
			gotUpdates = updates
			batches++
			return nil
		},
	}

	return updateHarness{
		svc:     service.NewTripService(trips, expenseRepo),
		updates: &gotUpdates,
		batches: &batches,
	}
}

func TestTripService_Update_RecalculatesDayNumbersOnStartChange(t *testing.T) {
	tripID := uuid.New()
	previous := domain.Trip{ID: tripID, Name: "Portugal", StartDate: datePtr(2024, time.June, 1), Days: intPtr(10)}

	dated := domain.Expense{
		ID:        uuid.New(),
		TripID:    tripID,
		Category:  domain.CategoryFood,
		Date:      datePtr(2024, time.June, 5),
		DayNumber: intPtr(5),
	}
	undated := domain.Expense{
		ID:        uuid.New(),
		TripID:    tripID,
		Category:  domain.CategoryOther,
		DayNumber: intPtr(2),
	}

	h := newUpdateHarness(t, previous, []domain.Expense{dated, undated})

	updated := previous
	updated.StartDate = datePtr(2024, time.June, 3)
	updated.EndDate = nil // re-derived from days
	_, err := h.svc.Update(context.Background(), updated)

	require.NoError(t, err)
	require.Len(t, *h.updates, 1, "only the dated expense should be recalculated")
	assert.Equal(t, dated.ID, (*h.updates)[0].ExpenseID)
	assert.Equal(t, 3, (*h.updates)[0].DayNumber, "June 5 on a trip starting June 3 is day 3")
}

func TestTripService_Update_ClampsRecalculatedDayNumbers(t *testing.T) {
	tripID := uuid.New()
	previous := domain.Trip{ID: tripID, Name: "Portugal", StartDate: datePtr(2024, time.June, 1), Days: intPtr(3)}

	beforeStart := domain.Expense{
		ID: uuid.New(), TripID: tripID, Category: domain.CategoryFlights,
		Date: datePtr(2024, time.June, 2), DayNumber: intPtr(2),
	}
	afterEnd := domain.Expense{
		ID: uuid.New(), TripID: tripID, Category: domain.CategoryFood,
		Date: datePtr(2024, time.June, 30), DayNumber: intPtr(30),
	}

	h := newUpdateHarness(t, previous, []domain.Expense{beforeStart, afterEnd})

	updated := previous
	updated.StartDate = datePtr(2024, time.June, 10)
	updated.EndDate = nil
	_, err := h.svc.Update(context.Background(), updated)

	require.NoError(t, err)
	require.Len(t, *h.updates, 2)
	byID := map[uuid.UUID]int{}
	for _, u := range *h.updates {
		byID[u.ExpenseID] = u.DayNumber
	}
	assert.Equal(t, 1, byID[beforeStart.ID], "dates before the new start clamp to day 1")
	assert.Equal(t, 3, byID[afterEnd.ID], "dates past the trip end clamp to the last day")
}

func TestTripService_Update_NoRecalcWhenStartUnchanged(t *testing.T) {
	tripID := uuid.New()
	previous := domain.Trip{ID: tripID, Name: "Portugal", StartDate: datePtr(2024, time.June, 1), Days: intPtr(10)}

	h := newUpdateHarness(t, previous, nil)

	updated := previous
	updated.Name = "Portugal 2024"
	updated.EndDate = nil
	_, err := h.svc.Update(context.Background(), updated)

	require.NoError(t, err)
	assert.Zero(t, *h.batches, "no day-number batch should run when the start date is unchanged")
}

func TestTripService_Update_NoRecalcWhenStartCleared(t *testing.T) {
	tripID := uuid.New()
	previous := domain.Trip{ID: tripID, Name: "Portugal", StartDate: datePtr(2024, time.June, 1), Days: intPtr(10)}

	h := newUpdateHarness(t, previous, nil)

	updated := domain.Trip{ID: tripID, Name: "Portugal", Days: intPtr(10)}
	_, err := h.svc.Update(context.Background(), updated)

	require.NoError(t, err)
	assert.Zero(t, *h.batches, "clearing the start date leaves day-numbers untouched")
}

func TestTripService_Update_RecalcWhenStartFirstSet(t *testing.T) {
	tripID := uuid.New()
	previous := domain.Trip{ID: tripID, Name: "Someday Trip", Days: intPtr(10)}

	dated := domain.Expense{
		ID: uuid.New(), TripID: tripID, Category: domain.CategoryFood,
		Date: datePtr(2024, time.June, 5), DayNumber: intPtr(1),
	}
	h := newUpdateHarness(t, previous, []domain.Expense{dated})

	updated := domain.Trip{ID: tripID, Name: "Someday Trip", StartDate: datePtr(2024, time.June, 1), Days: intPtr(10)}
	_, err := h.svc.Update(context.Background(), updated)

	require.NoError(t, err)
	require.Len(t, *h.updates, 1)
	assert.Equal(t, 5, (*h.updates)[0].DayNumber)
}

// ---- GetByID / Delete ------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	svc := service.NewTripService(
		&mockTripRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrNotFound
			},
		},
		&mockExpenseRepo{},
	)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	svc := service.NewTripService(
		&mockTripRepo{
			delete: func(_ context.Context, _ uuid.UUID) error {
				return domain.ErrNotFound
			},
		},
		&mockExpenseRepo{},
	)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
