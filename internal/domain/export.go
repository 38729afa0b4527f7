package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per expense, with trip fields
// repeated for every expense on that trip. Trips with no expenses yield one
// row with zero values for all expense fields.
type ExportRow struct {
	// Trip fields — repeated for every expense on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02" formatted date, empty when the trip is undated

	// Expense fields — zero values when the trip has no expenses.
	Category    string
	Description string
	Cost        string // decimal rendered with two places, empty on trip-only rows
	Date        string // "2006-01-02", empty when the expense is undated
	DayNumber   string // rendered integer, empty when unset
	URL         string
}
