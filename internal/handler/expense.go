package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/tripledger/api/internal/domain"
)

// expenseRequest is the JSON body for creating or updating an expense.
// Cost accepts both JSON numbers and numeric strings (decimal handles both).
type expenseRequest struct {
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Cost        decimal.Decimal     `json:"cost"`
	URL         *string             `json:"url,omitempty"`
	Date        *openapi_types.Date `json:"date,omitempty"`
	DayNumber   *int                `json:"day_number,omitempty"`
}

// expenseResponse is the JSON representation of an expense.
type expenseResponse struct {
	ID          string              `json:"id"`
	TripID      string              `json:"trip_id"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Cost        decimal.Decimal     `json:"cost"`
	URL         *string             `json:"url,omitempty"`
	Date        *openapi_types.Date `json:"date,omitempty"`
	DayNumber   *int                `json:"day_number,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var body expenseRequest
	if err := decodeJSON(r, &body); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	expense := requestToExpense(body)
	expense.TripID = tripID

	created, err := s.expenses.Create(r.Context(), expense)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// ListExpenses handles GET /trips/{tripID}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	expenses, err := s.expenses.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string][]expenseResponse{"data": data})
}

// GetExpense handles GET /trips/{tripID}/expenses/{expenseID}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	expenseID, err := uuidParam(r, "expenseID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	expense, err := s.expenses.GetByID(r.Context(), tripID, expenseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expenseToResponse(expense))
}

// UpdateExpense handles PUT /trips/{tripID}/expenses/{expenseID}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	expenseID, err := uuidParam(r, "expenseID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var body expenseRequest
	if err := decodeJSON(r, &body); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	expense := requestToExpense(body)
	expense.ID = expenseID
	expense.TripID = tripID

	updated, err := s.expenses.Update(r.Context(), expense)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	expenseID, err := uuidParam(r, "expenseID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.expenses.Delete(r.Context(), tripID, expenseID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToExpense(body expenseRequest) domain.Expense {
	e := domain.Expense{
		Category:    domain.Category(body.Category),
		Description: body.Description,
		Cost:        body.Cost,
		DayNumber:   body.DayNumber,
	}
	if body.URL != nil {
		e.URL = *body.URL
	}
	if body.Date != nil {
		d := body.Date.Time
		e.Date = &d
	}
	return e
}

func expenseToResponse(e domain.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID.String(),
		TripID:      e.TripID.String(),
		Category:    string(e.Category),
		Description: e.Description,
		Cost:        e.Cost,
		DayNumber:   e.DayNumber,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.URL != "" {
		resp.URL = &e.URL
	}
	if e.Date != nil {
		resp.Date = &openapi_types.Date{Time: *e.Date}
	}
	return resp
}
