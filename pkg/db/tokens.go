package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetToken resolves an opaque weekly-selection token to its scheduling
// context. Unknown tokens return ErrNotFound; expiry is the caller's check
// so an expired token can be reported distinctly.
func (db *DB) GetToken(ctx context.Context, token string) (TokenData, error) {
	var data TokenData
	err := db.pool.QueryRow(ctx, `
		SELECT t.id, t.token, t.employee_id, t.business_id,
			t.week_start_date::text, t.week_end_date::text, t.expires_at,
			e.id, e.business_id, e.first_name, e.last_name, e.phone
		FROM shift_selection_tokens t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.token = $1
	`, token).Scan(
		&data.ID,
		&data.Token,
		&data.EmployeeID,
		&data.BusinessID,
		&data.WeekStart,
		&data.WeekEnd,
		&data.ExpiresAt,
		&data.Employee.ID,
		&data.Employee.BusinessID,
		&data.Employee.FirstName,
		&data.Employee.LastName,
		&data.Employee.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenData{}, ErrNotFound
		}
		return TokenData{}, fmt.Errorf("failed to resolve token: %w", err)
	}

	return data, nil
}
