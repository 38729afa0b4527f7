package handler_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripledger/api/internal/domain"
)

func TestExport_200_CSV(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context) ([]domain.ExportRow, error) {
			return []domain.ExportRow{
				{
					TripID: "t1", TripName: "Japan Spring", TripStartDate: "2026-06-01",
					Category: "food", Description: "Ramen", Cost: "12.50",
					Date: "2026-06-03", DayNumber: "3",
				},
				{TripID: "t2", TripName: "No Expenses Yet"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{export: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "trips.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, "Ramen", records[1][4])
	assert.Equal(t, "12.50", records[1][5])
	// Trip-only rows keep the expense columns empty.
	assert.Equal(t, "No Expenses Yet", records[2][1])
	assert.Equal(t, "", records[2][4])
}

func TestExport_500(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context) ([]domain.ExportRow, error) {
			return nil, errors.New("boom")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{export: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
