package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/shift-select/pkg/core/model"
)

// GetShiftSlots returns all published shift slots for a business and week.
// Raw shift-type labels are normalized onto the closed enum at this
// boundary.
func (db *DB) GetShiftSlots(ctx context.Context, businessID, weekStart, weekEnd string) ([]model.ShiftSlot, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, business_id, branch_id, week_start_date::text, week_end_date::text,
			day_of_week, start_time, end_time, shift_type, required_employees
		FROM shift_slots
		WHERE business_id = $1 AND week_start_date = $2 AND week_end_date = $3
		ORDER BY day_of_week, start_time
	`, businessID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift slots: %w", err)
	}
	defer rows.Close()

	var slots []model.ShiftSlot
	for rows.Next() {
		var slot model.ShiftSlot
		var rawType string
		if err := rows.Scan(
			&slot.ID,
			&slot.BusinessID,
			&slot.BranchID,
			&slot.WeekStartDate,
			&slot.WeekEndDate,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&rawType,
			&slot.RequiredEmployees,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift slot: %w", err)
		}
		slot.ShiftType = model.ParseShiftType(rawType)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shift slots: %w", err)
	}

	return slots, nil
}
