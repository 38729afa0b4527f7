package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/handler"
)

// Test doubles for the handler servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockExpenseServicer struct {
	create       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID      func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseServicer) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, expenseID)
}
func (m *mockExpenseServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseServicer) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

type mockLodgingServicer struct {
	block     func(ctx context.Context, tripID uuid.UUID, dayNumber int) (*domain.LodgingBlock, error)
	reconcile func(ctx context.Context, tripID uuid.UUID, input domain.BulkLodgingInput) (domain.BulkLodgingResult, error)
}

func (m *mockLodgingServicer) Block(ctx context.Context, tripID uuid.UUID, dayNumber int) (*domain.LodgingBlock, error) {
	return m.block(ctx, tripID, dayNumber)
}
func (m *mockLodgingServicer) Reconcile(ctx context.Context, tripID uuid.UUID, input domain.BulkLodgingInput) (domain.BulkLodgingResult, error) {
	return m.reconcile(ctx, tripID, input)
}

type mockDayDetailServicer struct {
	upsert          func(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error)
	getByTripAndDay func(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error)
	listByTripID    func(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error)
}

func (m *mockDayDetailServicer) Upsert(ctx context.Context, d domain.DayDetail) (domain.DayDetail, error) {
	return m.upsert(ctx, d)
}
func (m *mockDayDetailServicer) GetByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error) {
	return m.getByTripAndDay(ctx, tripID, dayNumber)
}
func (m *mockDayDetailServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error) {
	return m.listByTripID(ctx, tripID)
}

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks
var (
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.ExpenseServicer   = (*mockExpenseServicer)(nil)
	_ handler.LodgingServicer   = (*mockLodgingServicer)(nil)
	_ handler.DayDetailServicer = (*mockDayDetailServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serverDeps bundles the mocks for newHTTPHandler; nil fields are fine as
// long as the test never routes to them.
type serverDeps struct {
	trips    handler.TripServicer
	expenses handler.ExpenseServicer
	lodging  handler.LodgingServicer
	days     handler.DayDetailServicer
	export   handler.ExportServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi route tree,
// mirroring how main.go wires it in production.
func newHTTPHandler(deps serverDeps) http.Handler {
	srv := handler.NewServer(deps.trips, deps.expenses, deps.lodging, deps.days, deps.export)
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}
