package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/shift-select/pkg/core/model"
)

// GetEmployeeAssignments returns the employee's active branch assignments.
// Inactive (soft-deleted) rows are filtered out here; eligibility never
// sees them.
func (db *DB) GetEmployeeAssignments(ctx context.Context, employeeID string) ([]model.EmployeeBranchAssignment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, branch_id, role_name, shift_types, available_days, is_active
		FROM employee_branch_assignments
		WHERE employee_id = $1 AND is_active = true
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.EmployeeBranchAssignment
	for rows.Next() {
		var a model.EmployeeBranchAssignment
		var rawTypes []string
		if err := rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.BranchID,
			&a.RoleName,
			&rawTypes,
			&a.AvailableDays,
			&a.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee assignment: %w", err)
		}
		a.ShiftTypes = make([]model.ShiftType, 0, len(rawTypes))
		for _, raw := range rawTypes {
			a.ShiftTypes = append(a.ShiftTypes, model.ParseShiftType(raw))
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee assignments: %w", err)
	}

	return assignments, nil
}
