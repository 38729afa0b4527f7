package handler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
)

var exportHeader = []string{
	"trip_id", "trip_name", "trip_start_date",
	"category", "description", "cost", "date", "day_number", "url",
}

// Export handles GET /export. It streams every trip and expense as CSV,
// one row per expense with trip fields repeated.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		slog.Error("write export header", "error", err)
		return
	}
	for _, row := range rows {
		record := []string{
			row.TripID, row.TripName, row.TripStartDate,
			row.Category, row.Description, row.Cost, row.Date, row.DayNumber, row.URL,
		}
		if err := cw.Write(record); err != nil {
			slog.Error("write export row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("flush export", "error", err)
	}
}
