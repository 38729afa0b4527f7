package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tripledger/api/internal/domain"
	"github.com/tripledger/api/internal/repo"
)

// ExportService assembles a full flat export of all trips and their expenses.
type ExportService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExportService {
	return &ExportService{trips: trips, expenses: expenses}
}

// exportPageSize is the batch size used when walking all trips.
const exportPageSize = 100

// Export returns one ExportRow per expense across all trips.
// Trips with no expenses contribute one row with empty expense fields.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}

	for page := 1; ; page++ {
		trips, total, err := s.trips.List(ctx, domain.PaginationParams{Page: page, Limit: exportPageSize})
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: list trips: %w", err)
		}

		for _, t := range trips {
			tripRows, err := s.exportTrip(ctx, t)
			if err != nil {
				return nil, err
			}
			rows = append(rows, tripRows...)
		}

		if int64(page*exportPageSize) >= total || len(trips) == 0 {
			break
		}
	}

	return rows, nil
}

func (s *ExportService) exportTrip(ctx context.Context, t domain.Trip) ([]domain.ExportRow, error) {
	expenses, err := s.expenses.ListByTripID(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: list expenses for %s: %w", t.ID, err)
	}

	base := domain.ExportRow{
		TripID:        t.ID.String(),
		TripName:      t.Name,
		TripStartDate: formatDate(t.StartDate),
	}

	if len(expenses) == 0 {
		return []domain.ExportRow{base}, nil
	}

	rows := make([]domain.ExportRow, 0, len(expenses))
	for _, e := range expenses {
		row := base
		row.Category = string(e.Category)
		row.Description = e.Description
		row.Cost = e.Cost.StringFixed(2)
		row.Date = formatDate(e.Date)
		if e.DayNumber != nil {
			row.DayNumber = strconv.Itoa(*e.DayNumber)
		}
		row.URL = e.URL
		rows = append(rows, row)
	}
	return rows, nil
}

// formatDate renders an optional date as "2006-01-02", empty when nil.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
