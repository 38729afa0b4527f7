package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripledger/api/internal/domain"
)

// dayDetailRequest is the JSON body for PUT /trips/{tripID}/days/{dayNumber}.
// Submitting an all-empty payload deletes the stored detail.
type dayDetailRequest struct {
	Destination    string           `json:"destination,omitempty"`
	Latitude       *float64         `json:"latitude,omitempty"`
	Longitude      *float64         `json:"longitude,omitempty"`
	LocalTransport string           `json:"local_transport,omitempty"`
	FoodBudget     *decimal.Decimal `json:"food_budget,omitempty"`
	SameCity       bool             `json:"same_city,omitempty"`
	IntercityType  string           `json:"intercity_type,omitempty"`
}

// dayDetailResponse is the JSON representation of a day's itinerary detail.
type dayDetailResponse struct {
	ID             string           `json:"id"`
	TripID         string           `json:"trip_id"`
	DayNumber      int              `json:"day_number"`
	Destination    string           `json:"destination,omitempty"`
	Latitude       *float64         `json:"latitude,omitempty"`
	Longitude      *float64         `json:"longitude,omitempty"`
	LocalTransport string           `json:"local_transport,omitempty"`
	FoodBudget     *decimal.Decimal `json:"food_budget,omitempty"`
	SameCity       bool             `json:"same_city"`
	IntercityType  string           `json:"intercity_type,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ListDayDetails handles GET /trips/{tripID}/days.
func (s *Server) ListDayDetails(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	details, err := s.days.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]dayDetailResponse, len(details))
	for i, d := range details {
		data[i] = dayDetailToResponse(d)
	}
	writeJSON(w, http.StatusOK, map[string][]dayDetailResponse{"data": data})
}

// GetDayDetail handles GET /trips/{tripID}/days/{dayNumber}.
func (s *Server) GetDayDetail(w http.ResponseWriter, r *http.Request) {
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

	detail, err := s.days.GetByTripAndDay(r.Context(), tripID, dayNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dayDetailToResponse(detail))
}

// UpsertDayDetail handles PUT /trips/{tripID}/days/{dayNumber}.
// An all-empty payload deletes the row and returns 204.
func (s *Server) UpsertDayDetail(w http.ResponseWriter, r *http.Request) {
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

	var body dayDetailRequest
	if err := decodeJSON(r, &body); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	detail := domain.DayDetail{
		TripID:         tripID,
		DayNumber:      dayNumber,
		Destination:    body.Destination,
		Latitude:       body.Latitude,
		Longitude:      body.Longitude,
		LocalTransport: body.LocalTransport,
		FoodBudget:     body.FoodBudget,
		SameCity:       body.SameCity,
		IntercityType:  body.IntercityType,
	}

	saved, err := s.days.Upsert(r.Context(), detail)
	if err != nil {
		writeError(w, err)
		return
	}
	if detail.Empty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, dayDetailToResponse(saved))
}

func dayDetailToResponse(d domain.DayDetail) dayDetailResponse {
	return dayDetailResponse{
		ID:             d.ID.String(),
		TripID:         d.TripID.String(),
		DayNumber:      d.DayNumber,
		Destination:    d.Destination,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		LocalTransport: d.LocalTransport,
		FoodBudget:     d.FoodBudget,
		SameCity:       d.SameCity,
		IntercityType:  d.IntercityType,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
