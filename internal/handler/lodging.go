package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/tripledger/api/internal/domain"
)

// bulkLodgingRequest is the JSON body for POST /trips/{tripID}/lodging/bulk.
// Dated trips send check_in/check_out; undated trips send nights/start_day.
type bulkLodgingRequest struct {
	Name             string              `json:"name"`
	TotalCost        decimal.Decimal     `json:"total_cost"`
	CheckIn          *openapi_types.Date `json:"check_in,omitempty"`
	CheckOut         *openapi_types.Date `json:"check_out,omitempty"`
	Nights           *int                `json:"nights,omitempty"`
	StartDay         *int                `json:"start_day,omitempty"`
	URL              *string             `json:"url,omitempty"`
	DeleteDayNumbers []int               `json:"delete_day_numbers,omitempty"`
}

// bulkLodgingResponse reports what the reconciler created.
type bulkLodgingResponse struct {
	Created     []expenseResponse `json:"created"`
	Nights      int               `json:"nights"`
	NightlyRate decimal.Decimal   `json:"nightly_rate"`
}

// lodgingBlockResponse is the JSON representation of a resolved lodging block.
type lodgingBlockResponse struct {
	Name        string              `json:"name"`
	CheckIn     *openapi_types.Date `json:"check_in,omitempty"`
	CheckOut    *openapi_types.Date `json:"check_out,omitempty"`
	Nights      int                 `json:"nights"`
	NightlyRate decimal.Decimal     `json:"nightly_rate"`
	TotalCost   decimal.Decimal     `json:"total_cost"`
	DayNumbers  []int               `json:"day_numbers"`
	ExpenseIDs  []string            `json:"expense_ids"`
}

// ReconcileLodging handles POST /trips/{tripID}/lodging/bulk.
// It replaces a booking's per-night accommodation rows from a single form.
func (s *Server) ReconcileLodging(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var body bulkLodgingRequest
	if err := decodeJSON(r, &body); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	input := domain.BulkLodgingInput{
		Name:             body.Name,
		TotalCost:        body.TotalCost,
		Nights:           body.Nights,
		StartDay:         body.StartDay,
		DeleteDayNumbers: body.DeleteDayNumbers,
	}
	if body.URL != nil {
		input.URL = *body.URL
	}
	if body.CheckIn != nil {
		ci := body.CheckIn.Time
		input.CheckIn = &ci
	}
	if body.CheckOut != nil {
		co := body.CheckOut.Time
		input.CheckOut = &co
	}

	result, err := s.lodging.Reconcile(r.Context(), tripID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	created := make([]expenseResponse, len(result.Created))
	for i, e := range result.Created {
		created[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, bulkLodgingResponse{
		Created:     created,
		Nights:      result.Nights,
		NightlyRate: result.NightlyRate,
	})
}

// GetLodgingBlock handles GET /trips/{tripID}/days/{dayNumber}/lodging.
// Returns 204 when the day has no multi-night block — the absence of a block
// is a normal answer, not an error.
func (s *Server) GetLodgingBlock(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	dayNumber, err := intParam(r, "dayNumber")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	block, err := s.lodging.Block(r.Context(), tripID, dayNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	if block == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, blockToResponse(block))
}

func blockToResponse(b *domain.LodgingBlock) lodgingBlockResponse {
	resp := lodgingBlockResponse{
		Name:        b.Name,
		Nights:      b.Nights,
		NightlyRate: b.NightlyRate,
		TotalCost:   b.TotalCost,
		DayNumbers:  b.DayNumbers,
		ExpenseIDs:  make([]string, len(b.ExpenseIDs)),
	}
	for i, id := range b.ExpenseIDs {
		resp.ExpenseIDs[i] = id.String()
	}
	if b.CheckIn != nil {
		resp.CheckIn = &openapi_types.Date{Time: *b.CheckIn}
	}
	if b.CheckOut != nil {
		resp.CheckOut = &openapi_types.Date{Time: *b.CheckOut}
	}
	return resp
}
