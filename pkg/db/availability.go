package db

import (
	"context"
	"fmt"
)

// GetAvailabilitySubmissions returns the employee's availability submissions
// for a week, most recent first. Only the head submission is consulted by
// the engine ("most recent wins"); older rows are kept as history.
func (db *DB) GetAvailabilitySubmissions(ctx context.Context, employeeID, weekStart string) ([]AvailabilitySubmission, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, week_start_date::text, payload, optional_morning_days, submitted_at
		FROM availability_submissions
		WHERE employee_id = $1 AND week_start_date = $2
		ORDER BY submitted_at DESC
	`, employeeID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability submissions: %w", err)
	}
	defer rows.Close()

	var submissions []AvailabilitySubmission
	for rows.Next() {
		var s AvailabilitySubmission
		if err := rows.Scan(
			&s.ID,
			&s.EmployeeID,
			&s.WeekStart,
			&s.Payload,
			&s.OptionalMorningDays,
			&s.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan availability submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read availability submissions: %w", err)
	}

	return submissions, nil
}
