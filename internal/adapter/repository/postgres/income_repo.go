package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paisavault/paisavault/internal/domain"
)

// IncomeRepository implements usecase.IncomeRepository.
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

// Create inserts a new income record.
func (r *IncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	query := `
		INSERT INTO income_records (id, user_id, amount, description, source, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		income.ID,
		income.UserID,
		decimalToNumeric(income.Amount),
		income.Description,
		income.Source,
		timeToPgTimestamptz(income.Date),
		timeToPgTimestamptz(income.CreatedAt),
	)

	return err
}

// GetByID retrieves an income record by ID.
func (r *IncomeRepository) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	query := `
		SELECT id, user_id, amount, description, source, date, created_at
		FROM income_records
		WHERE id = $1
	`

	income, err := scanIncome(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeNotFound
		}

		return nil, err
	}

	return income, nil
}

// Update rewrites the mutable fields of an income record.
func (r *IncomeRepository) Update(ctx context.Context, income *domain.Income) error {
	query := `
		UPDATE income_records
		SET amount = $2, description = $3, source = $4, date = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		income.ID,
		decimalToNumeric(income.Amount),
		income.Description,
		income.Source,
		timeToPgTimestamptz(income.Date),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncomeNotFound
	}

	return nil
}

// Delete removes an income record.
func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM income_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncomeNotFound
	}

	return nil
}

// ListByUser retrieves a user's income records, most recent first.
func (r *IncomeRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Income, error) {
	query := `
		SELECT id, user_id, amount, description, source, date, created_at
		FROM income_records
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIncome(rows)
}

// ListAllByUser retrieves every income record of a user. The aggregation
// layer recomputes totals from full snapshots and needs the whole set.
func (r *IncomeRepository) ListAllByUser(ctx context.Context, userID string) ([]*domain.Income, error) {
	query := `
		SELECT id, user_id, amount, description, source, date, created_at
		FROM income_records
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIncome(rows)
}

func scanIncome(row pgx.Row) (*domain.Income, error) {
	var (
		income    domain.Income
		amount    pgtype.Numeric
		date      pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&income.ID,
		&income.UserID,
		&amount,
		&income.Description,
		&income.Source,
		&date,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	income.Amount = numericToDecimal(amount)
	income.Date = date.Time
	income.CreatedAt = createdAt.Time

	return &income, nil
}

func collectIncome(rows pgx.Rows) ([]*domain.Income, error) {
	records := []*domain.Income{}

	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, income)
	}

	return records, rows.Err()
}
