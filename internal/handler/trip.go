package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripledger/api/internal/domain"
)

// tripRequest is the JSON body for creating or updating a trip.
// Dates are date-only values ("2006-01-02").
type tripRequest struct {
	Name      string              `json:"name"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	Days      *int                `json:"days,omitempty"`
}

// tripResponse is the JSON representation of a trip.
type tripResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	Days      *int                `json:"days,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// paginatedTrips is the JSON body for trip listings.
type paginatedTrips struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(body))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, paginatedTrips{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	trip := requestToTrip(body)
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(body tripRequest) domain.Trip {
	t := domain.Trip{
		Name: body.Name,
		Days: body.Days,
	}
	if body.StartDate != nil {
		sd := body.StartDate.Time
		t.StartDate = &sd
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		t.EndDate = &ed
	}
	return t
}

func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Days:      t.Days,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *t.StartDate}
	}
	if t.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *t.EndDate}
	}
	return resp
}
