package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/geocode"
	"github.com/tripledger/api/internal/repo"
)

// DayDetailService implements business logic for per-day itinerary details.
// Details are created lazily: the row for a day exists only once the user has
// filled something in, and clearing every field removes it again.
type DayDetailService struct {
	trips    repo.TripRepo
	details  repo.DayDetailRepo
	geocoder geocode.Geocoder
	log      *slog.Logger
}

// NewDayDetailService constructs a DayDetailService backed by the provided
// repos and geocoder. Pass a nil geocoder to disable destination lookups.
func NewDayDetailService(trips repo.TripRepo, details repo.DayDetailRepo, geocoder geocode.Geocoder, log *slog.Logger) *DayDetailService {
	if log == nil {
		log = slog.Default()
	}
	return &DayDetailService{trips: trips, details: details, geocoder: geocoder, log: log}
}

// Upsert validates and stores the detail for one day of a trip, keyed on
// (tripID, dayNumber).
//
// When a destination is supplied without coordinates the geocoder fills them
// in on a best-effort basis — a lookup failure or miss is logged and the save
// proceeds with the name alone. An empty payload deletes the stored row
// instead (lazy lifecycle).
//
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrValidation if the day-number is out of the trip's range.
func (s *DayDetailService) Upsert(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error) {
	trip, err := s.trips.GetByID(ctx, detail.TripID)
	if err != nil {
		return domain.DayDetail{}, fmt.Errorf("service.DayDetailService.Upsert: %w", err)
	}
	if detail.DayNumber < 1 {
		return domain.DayDetail{}, fmt.Errorf("%w: day_number must be at least 1", domain.ErrValidation)
	}
	if trip.Days != nil && detail.DayNumber > *trip.Days {
		return domain.DayDetail{}, fmt.Errorf("%w: day_number exceeds trip length", domain.ErrValidation)
	}

	if detail.Empty() {
		err := s.details.DeleteByTripAndDay(ctx, detail.TripID, detail.DayNumber)
		if err != nil && !isNotFound(err) {
			return domain.DayDetail{}, fmt.Errorf("service.DayDetailService.Upsert: clear: %w", err)
		}
		return domain.DayDetail{TripID: detail.TripID, DayNumber: detail.DayNumber}, nil
	}

	if detail.Destination != "" && (detail.Latitude == nil || detail.Longitude == nil) && s.geocoder != nil {
		if loc, err := s.geocoder.Geocode(ctx, detail.Destination); err != nil {
			s.log.WarnContext(ctx, "geocoding failed, saving destination without coordinates",
				"destination", detail.Destination, "error", err)
		} else if loc != nil {
			detail.Latitude = &loc.Lat
			detail.Longitude = &loc.Lon
		}
	}

	result, err := s.details.Upsert(ctx, detail)
	if err != nil {
		return domain.DayDetail{}, fmt.Errorf("service.DayDetailService.Upsert: %w", err)
	}
	return result, nil
}

// GetByTripAndDay returns the detail for one day of a trip.
// Returns domain.ErrNotFound if the trip or the detail does not exist.
func (s *DayDetailService) GetByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error) {
	result, err := s.details.GetByTripAndDay(ctx, tripID, dayNumber)
	if err != nil {
		return domain.DayDetail{}, fmt.Errorf("service.DayDetailService.GetByTripAndDay: %w", err)
	}
	return result, nil
}

// ListByTripID returns all details for a trip ordered by day-number.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DayDetailService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error) {
	details, err := s.details.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayDetailService.ListByTripID: %w", err)
	}
	if details == nil {
		return []domain.DayDetail{}, nil
	}
	return details, nil
}

// isNotFound reports whether err wraps domain.ErrNotFound. Clearing a day
// that was never stored is not an error.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
