package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paisavault/paisavault/internal/domain"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense record.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expense_records (id, user_id, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		decimalToNumeric(expense.Amount),
		string(expense.Category),
		expense.Description,
		timeToPgTimestamptz(expense.Date),
		timeToPgTimestamptz(expense.CreatedAt),
	)

	return err
}

// GetByID retrieves an expense record by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, date, created_at
		FROM expense_records
		WHERE id = $1
	`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	return expense, nil
}

// Update rewrites the mutable fields of an expense record.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expense_records
		SET amount = $2, category = $3, description = $4, date = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		expense.ID,
		decimalToNumeric(expense.Amount),
		string(expense.Category),
		expense.Description,
		timeToPgTimestamptz(expense.Date),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// Delete removes an expense record.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expense_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByUser retrieves a user's expense records, most recent first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, date, created_at
		FROM expense_records
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListAllByUser retrieves every expense record of a user.
func (r *ExpenseRepository) ListAllByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, date, created_at
		FROM expense_records
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense   domain.Expense
		amount    pgtype.Numeric
		category  string
		date      pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&amount,
		&category,
		&expense.Description,
		&date,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount = numericToDecimal(amount)
	expense.Category = domain.Category(category)
	expense.Date = date.Time
	expense.CreatedAt = createdAt.Time

	return &expense, nil
}

func collectExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	records := []*domain.Expense{}

	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, expense)
	}

	return records, rows.Err()
}
