// Package handler implements the HTTP handlers for the trip ledger API.
// All handlers are methods on Server; they are split into domain-specific
// files (trip.go, expense.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseServicer defines the business operations the expense handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

// LodgingServicer defines the multi-night accommodation operations.
type LodgingServicer interface {
	Block(ctx context.Context, tripID uuid.UUID, dayNumber int) (*domain.LodgingBlock, error)
	Reconcile(ctx context.Context, tripID uuid.UUID, input domain.BulkLodgingInput) (domain.BulkLodgingResult, error)
}

// DayDetailServicer defines the per-day itinerary operations.
type DayDetailServicer interface {
	Upsert(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error)
	GetByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error)
}

// ExportServicer defines the full-data export operation.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server implements all API endpoints. Wire it in main.go via Routes().
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	expenses ExpenseServicer
	lodging  LodgingServicer
	days     DayDetailServicer
	export   ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, expenses ExpenseServicer, lodging LodgingServicer, days DayDetailServicer, export ExportServicer) *Server {
	return &Server{trips: trips, expenses: expenses, lodging: lodging, days: days, export: export}
}

// Routes returns the API route tree. Middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(spec.OpenAPI) //nolint:errcheck // best effort on a static body
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", s.CreateExpense)
				r.Get("/", s.ListExpenses)
				r.Get("/{expenseID}", s.GetExpense)
				r.Put("/{expenseID}", s.UpdateExpense)
				r.Delete("/{expenseID}", s.DeleteExpense)
			})

			r.Post("/lodging/bulk", s.ReconcileLodging)

			r.Route("/days", func(r chi.Router) {
				r.Get("/", s.ListDayDetails)
				r.Get("/{dayNumber}", s.GetDayDetail)
				r.Put("/{dayNumber}", s.UpsertDayDetail)
				r.Get("/{dayNumber}/lodging", s.GetLodgingBlock)
			})
		})
	})

	r.Get("/export", s.Export)

	return r
}
