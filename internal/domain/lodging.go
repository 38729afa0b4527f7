package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LodgingBlock describes a maximal run of consecutive-night accommodation
// rows sharing one booking name. Blocks of fewer than two nights are never
// reported — a single night is not editable as a block.
//
// CheckIn is the date of the first night and CheckOut the morning after the
// last night (last night's date + 1 day). Both are nil on undated trips.
type LodgingBlock struct {
	Name        string          `json:"name"`
	CheckIn     *time.Time      `json:"check_in,omitempty"`
	CheckOut    *time.Time      `json:"check_out,omitempty"`
	Nights      int             `json:"nights"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	DayNumbers  []int           `json:"day_numbers"`
	ExpenseIDs  []uuid.UUID     `json:"expense_ids"`
}

// BulkLodgingInput is the single higher-level booking form that the
// reconciler fans out into per-night accommodation expenses.
//
// Dated trips use CheckIn/CheckOut; undated trips use Nights/StartDay.
// DeleteDayNumbers, when present, pins exactly which existing rows of the
// same booking name are removed (supplied from a previously resolved block
// when editing); when absent the reconciler removes same-name rows that
// overlap the newly computed night range.
type BulkLodgingInput struct {
	CheckIn          *time.Time
	CheckOut         *time.Time
	Nights           *int
	StartDay         *int
	Name             string
	TotalCost        decimal.Decimal
	URL              string
	DeleteDayNumbers []int
}

// BulkLodgingResult reports what the reconciler created, for UI confirmation.
type BulkLodgingResult struct {
	Created     []Expense       `json:"created"`
	Nights      int             `json:"nights"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}
