package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tripledger/api/internal/domain"
)

// DayDetailRepo defines the persistence operations for DayDetails.
// Writes are keyed on (trip_id, day_number) — the natural key the UI edits by.
type DayDetailRepo interface {
	// Upsert inserts the detail or, when a row for (TripID, DayNumber)
	// already exists, overwrites its content. Returns the persisted record.
	Upsert(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error)

	// GetByTripAndDay retrieves the detail for one day of a trip.
	// Returns domain.ErrNotFound if no detail exists for that day.
	GetByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error)

	// ListByTripID returns all details for a trip ordered by day_number ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error)

	// DeleteByTripAndDay removes the detail for one day of a trip.
	// Returns domain.ErrNotFound if no detail exists for that day.
	DeleteByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) error
}

// pgDayDetailRepo is the Postgres implementation of DayDetailRepo.
type pgDayDetailRepo struct {
	db db
}

// NewDayDetailRepo constructs a DayDetailRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDayDetailRepo(db db) DayDetailRepo {
	return &pgDayDetailRepo{db: db}
}

const dayDetailColumns = `id, trip_id, day_number, destination, latitude, longitude,
	local_transport, food_budget::text, same_city, intercity_type, created_at, updated_at`

// Upsert relies on the (trip_id, day_number) unique constraint: the first
// write for a day inserts, every later write overwrites the whole row.
func (r *pgDayDetailRepo) Upsert(ctx context.Context, detail domain.DayDetail) (domain.DayDetail, error) {
	q := `
		INSERT INTO day_details
			(trip_id, day_number, destination, latitude, longitude,
			 local_transport, food_budget, same_city, intercity_type)
		VALUES
			(@trip_id, @day_number, @destination, @latitude, @longitude,
			 @local_transport, @food_budget::numeric, @same_city, @intercity_type)
		ON CONFLICT (trip_id, day_number) DO UPDATE
		SET destination     = EXCLUDED.destination,
		    latitude        = EXCLUDED.latitude,
		    longitude       = EXCLUDED.longitude,
		    local_transport = EXCLUDED.local_transport,
		    food_budget     = EXCLUDED.food_budget,
		    same_city       = EXCLUDED.same_city,
		    intercity_type  = EXCLUDED.intercity_type,
		    updated_at      = now()
		RETURNING ` + dayDetailColumns

	var foodBudget *string
	if detail.FoodBudget != nil {
		s := detail.FoodBudget.StringFixed(2)
		foodBudget = &s
	}

	args := pgx.NamedArgs{
		"trip_id":         detail.TripID,
		"day_number":      detail.DayNumber,
		"destination":     nullableString(detail.Destination),
		"latitude":        detail.Latitude,
		"longitude":       detail.Longitude,
		"local_transport": nullableString(detail.LocalTransport),
		"food_budget":     foodBudget,
		"same_city":       detail.SameCity,
		"intercity_type":  nullableString(detail.IntercityType),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDayDetail(row)
	if err != nil {
		return domain.DayDetail{}, fmt.Errorf("repo.DayDetailRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgDayDetailRepo) GetByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) (domain.DayDetail, error) {
	q := `
		SELECT ` + dayDetailColumns + `
		FROM day_details
		WHERE trip_id = @trip_id AND day_number = @day_number`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day_number": dayNumber})
	result, err := scanDayDetail(row)
	if err != nil {
		return domain.DayDetail{}, fmt.Errorf("repo.DayDetailRepo.GetByTripAndDay: %w", err)
	}
	return result, nil
}

func (r *pgDayDetailRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayDetail, error) {
	q := `
		SELECT ` + dayDetailColumns + `
		FROM day_details
		WHERE trip_id = @trip_id
		ORDER BY day_number ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayDetailRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var details []domain.DayDetail
	for rows.Next() {
		d, err := scanDayDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayDetailRepo.ListByTripID: scan: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayDetailRepo.ListByTripID: rows: %w", err)
	}

	return details, nil
}

func (r *pgDayDetailRepo) DeleteByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) error {
	const q = `DELETE FROM day_details WHERE trip_id = @trip_id AND day_number = @day_number`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day_number": dayNumber})
	if err != nil {
		return fmt.Errorf("repo.DayDetailRepo.DeleteByTripAndDay: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayDetailRepo.DeleteByTripAndDay: %w", domain.ErrNotFound)
	}
	return nil
}

// scanDayDetail maps a single database row into a domain.DayDetail.
func scanDayDetail(s scanner) (domain.DayDetail, error) {
	var (
		d              domain.DayDetail
		id             pgtype.UUID
		tripID         pgtype.UUID
		destination    pgtype.Text
		latitude       pgtype.Float8
		longitude      pgtype.Float8
		localTransport pgtype.Text
		foodBudget     pgtype.Text
		intercityType  pgtype.Text
	)

	err := s.Scan(&id, &tripID, &d.DayNumber, &destination, &latitude, &longitude,
		&localTransport, &foodBudget, &d.SameCity, &intercityType, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DayDetail{}, domain.ErrNotFound
		}
		return domain.DayDetail{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	if destination.Valid {
		d.Destination = destination.String
	}
	if latitude.Valid {
		lat := latitude.Float64
		d.Latitude = &lat
	}
	if longitude.Valid {
		lon := longitude.Float64
		d.Longitude = &lon
	}
	if localTransport.Valid {
		d.LocalTransport = localTransport.String
	}
	if foodBudget.Valid {
		fb, err := decimal.NewFromString(foodBudget.String)
		if err != nil {
			return domain.DayDetail{}, fmt.Errorf("parse food_budget %q: %w", foodBudget.String, err)
		}
		d.FoodBudget = &fb
	}
	if intercityType.Valid {
		d.IntercityType = intercityType.String
	}

	return d, nil
}
