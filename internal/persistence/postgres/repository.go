// Package postgres provides the remote-store repository over the user_shift
// and users tables. The service only depends on filter-by-user, order-by-date
// and point CRUD by id; the schema itself is owned by the backend platform.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/shifttrack/internal/domain"
)

// Repository provides Postgres-backed persistence for shifts and balances.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const shiftColumns = `id, user_id, shift_date, start_time, end_time, wage, hours, pay, day_of_week, created_at, updated_at`

// ListByUser returns all shifts for the user ordered by date descending at
// the source, newest id first for equal dates.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Shift, error) {
	const query = `SELECT ` + shiftColumns + ` FROM user_shift
        WHERE user_id=$1 ORDER BY shift_date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0)
	for rows.Next() {
		var s domain.Shift
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Wage, &s.Hours, &s.Pay, &s.DayOfWeek, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Create inserts a new shift tagged with its owning user.
func (r *Repository) Create(ctx context.Context, shift domain.Shift) error {
	const stmt = `INSERT INTO user_shift (` + shiftColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, stmt,
		shift.ID,
		shift.UserID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.Wage,
		shift.Hours,
		shift.Pay,
		shift.DayOfWeek,
		shift.CreatedAt,
		shift.UpdatedAt,
	)
	return err
}

// Update replaces the full record scoped to (id, user_id) and returns the
// stored record, carrying the original creation time back to the caller. An
// ownership mismatch matches zero rows, reported as a nil shift.
func (r *Repository) Update(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	const stmt = `UPDATE user_shift
        SET shift_date=$3, start_time=$4, end_time=$5, wage=$6, hours=$7, pay=$8, day_of_week=$9, updated_at=$10
        WHERE id=$1 AND user_id=$2
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, stmt,
		shift.ID,
		shift.UserID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.Wage,
		shift.Hours,
		shift.Pay,
		shift.DayOfWeek,
		shift.UpdatedAt,
	).Scan(&shift.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

// Delete removes the shift scoped to (id, user_id). Zero rows is not an
// error; deletion is idempotent.
func (r *Repository) Delete(ctx context.Context, userID, shiftID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_shift WHERE id=$1 AND user_id=$2`, shiftID, userID)
	return err
}

// Balance reads the companion account balance from the users table. A
// missing user surfaces as an error; the caller decides whether its cached
// value can stand in.
func (r *Repository) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.pool.QueryRow(ctx, `SELECT balance FROM users WHERE id=$1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user %s not found", userID)
		}
		return 0, err
	}
	return balance, nil
}

// UpdateBalance writes the balance and reports the rows affected so the
// caller can detect a policy-blocked zero-row update.
func (r *Repository) UpdateBalance(ctx context.Context, userID string, balance int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET balance=$2 WHERE id=$1`, userID, balance)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
