package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ReplaceShiftPicks atomically replaces the employee's shift picks for a
// week with the given set. Pick IDs are assigned here.
func (db *DB) ReplaceShiftPicks(ctx context.Context, employeeID, weekStart string, picks []ShiftPick) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM shift_picks
		WHERE employee_id = $1 AND week_start_date = $2
	`, employeeID, weekStart)
	if err != nil {
		return fmt.Errorf("failed to clear previous picks: %w", err)
	}

	for _, pick := range picks {
		_, err = tx.Exec(ctx, `
			INSERT INTO shift_picks
				(id, shift_id, employee_id, week_start_date, shift_date,
				start_time, end_time, branch_id, role_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.NewString(), pick.ShiftID, employeeID, weekStart, pick.Date,
			pick.StartTime, pick.EndTime, pick.BranchID, pick.RoleName)
		if err != nil {
			return fmt.Errorf("failed to insert shift pick: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shift picks: %w", err)
	}

	return nil
}

// SaveAvailabilitySubmission appends a new availability submission row.
// Older submissions are never deleted; the engine reads most-recent-first.
func (db *DB) SaveAvailabilitySubmission(ctx context.Context, sub AvailabilitySubmission) (string, error) {
	id := uuid.NewString()
	_, err := db.pool.Exec(ctx, `
		INSERT INTO availability_submissions
			(id, employee_id, week_start_date, payload, optional_morning_days, submitted_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, id, sub.EmployeeID, sub.WeekStart, sub.Payload, sub.OptionalMorningDays)
	if err != nil {
		return "", fmt.Errorf("failed to insert availability submission: %w", err)
	}
	return id, nil
}
