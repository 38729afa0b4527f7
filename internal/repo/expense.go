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

// ExpenseRepo defines the persistence operations for Expenses.
// All write and single-read operations are scoped by tripID to enforce ownership.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense by its UUID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no expense with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)

	// ListByTripID returns all expenses for a trip ordered by day_number
	// ascending (NULLs last), then created_at.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Update overwrites the mutable fields of an expense, scoped to the given
	// tripID. Returns domain.ErrNotFound if no expense with that ID exists
	// under that trip.
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// Delete removes an expense by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no expense with that ID exists under that trip.
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error

	// ReplaceLodging deletes the identified expenses and inserts the given
	// replacement rows in a single transaction, returning the inserted
	// records. Either everything is applied or nothing is — a half-replaced
	// booking can never be observed.
	ReplaceLodging(ctx context.Context, tripID uuid.UUID, deleteIDs []uuid.UUID, create []domain.Expense) ([]domain.Expense, error)

	// UpdateDayNumbers applies a batch of day-number changes in a single
	// transaction. Rows not listed are untouched.
	UpdateDayNumbers(ctx context.Context, tripID uuid.UUID, updates []domain.DayNumberUpdate) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, category, description, cost::text, url, expense_date, day_number, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	row := r.db.QueryRow(ctx, insertExpenseSQL, insertExpenseArgs(expense))
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	q := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	q := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY day_number ASC NULLS LAST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: rows: %w", err)
	}

	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	q := `
		UPDATE expenses
		SET category     = @category,
		    description  = @description,
		    cost         = @cost::numeric,
		    url          = @url,
		    expense_date = @expense_date,
		    day_number   = @day_number,
		    updated_at   = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"id":           expense.ID,
		"trip_id":      expense.TripID,
		"category":     string(expense.Category),
		"description":  expense.Description,
		"cost":         expense.Cost.StringFixed(2),
		"url":          nullableString(expense.URL),
		"expense_date": expense.Date,
		"day_number":   expense.DayNumber,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ReplaceLodging runs the delete-then-insert of a lodging reconciliation
// inside one transaction. Deleting zero rows is not an error — a first-time
// booking has nothing to remove.
func (r *pgExpenseRepo) ReplaceLodging(ctx context.Context, tripID uuid.UUID, deleteIDs []uuid.UUID, create []domain.Expense) ([]domain.Expense, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ReplaceLodging: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if len(deleteIDs) > 0 {
		const q = `DELETE FROM expenses WHERE trip_id = @trip_id AND id = ANY(@ids)`
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "ids": deleteIDs}); err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ReplaceLodging: delete: %w", err)
		}
	}

	created := make([]domain.Expense, 0, len(create))
	for _, e := range create {
		row := tx.QueryRow(ctx, insertExpenseSQL, insertExpenseArgs(e))
		inserted, err := scanExpense(row)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ReplaceLodging: insert: %w", err)
		}
		created = append(created, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ReplaceLodging: commit: %w", err)
	}
	return created, nil
}

// UpdateDayNumbers applies all updates or none of them.
func (r *pgExpenseRepo) UpdateDayNumbers(ctx context.Context, tripID uuid.UUID, updates []domain.DayNumberUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.UpdateDayNumbers: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	const q = `
		UPDATE expenses
		SET day_number = @day_number, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	for _, u := range updates {
		args := pgx.NamedArgs{"id": u.ExpenseID, "trip_id": tripID, "day_number": u.DayNumber}
		if _, err := tx.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.ExpenseRepo.UpdateDayNumbers: update %s: %w", u.ExpenseID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.ExpenseRepo.UpdateDayNumbers: commit: %w", err)
	}
	return nil
}

const insertExpenseSQL = `
	INSERT INTO expenses (trip_id, category, description, cost, url, expense_date, day_number)
	VALUES (@trip_id, @category, @description, @cost::numeric, @url, @expense_date, @day_number)
	RETURNING ` + expenseColumns

func insertExpenseArgs(e domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":      e.TripID,
		"category":     string(e.Category),
		"description":  e.Description,
		"cost":         e.Cost.StringFixed(2),
		"url":          nullableString(e.URL),
		"expense_date": e.Date, // nil becomes NULL (undated-mode placeholder)
		"day_number":   e.DayNumber,
	}
}

// nullableString maps "" to NULL so empty optional fields do not store
// empty strings.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// scanExpense maps a single database row into a domain.Expense.
// Cost is selected as text and parsed into a decimal to avoid float rounding.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e         domain.Expense
		id        pgtype.UUID
		tripID    pgtype.UUID
		category  string
		cost      string
		url       pgtype.Text
		date      pgtype.Date
		dayNumber pgtype.Int4
	)

	err := s.Scan(&id, &tripID, &category, &e.Description, &cost, &url, &date, &dayNumber, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Category = domain.Category(category)
	e.Cost, err = decimal.NewFromString(cost)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse cost %q: %w", cost, err)
	}
	if url.Valid {
		e.URL = url.String
	}
	if date.Valid {
		d := date.Time
		e.Date = &d
	}
	if dayNumber.Valid {
		n := int(dayNumber.Int32)
		e.DayNumber = &n
	}

	return e, nil
}
