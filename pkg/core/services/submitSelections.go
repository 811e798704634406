package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/core/matching"
	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/db"
)

// RejectedPick is a pick that failed validation. Reported inline in the
// result, not as a request failure.
type RejectedPick struct {
	ShiftID string `json:"shiftId"`
	Reason  string `json:"reason"`
}

// SubmitResult reports what was persisted and what was rejected.
type SubmitResult struct {
	Success  bool           `json:"success"`
	Saved    []db.ShiftPick `json:"saved"`
	Rejected []RejectedPick `json:"rejected,omitempty"`
}

// SubmitStore defines the database operations needed to persist an
// employee's final shift picks.
type SubmitStore interface {
	GetShiftSlots(ctx context.Context, businessID, weekStart, weekEnd string) ([]model.ShiftSlot, error)
	GetEmployeeAssignments(ctx context.Context, employeeID string) ([]model.EmployeeBranchAssignment, error)
	ReplaceShiftPicks(ctx context.Context, employeeID, weekStart string, picks []db.ShiftPick) error
}

// SubmitSelections validates the employee's chosen shift IDs against the
// eligibility filter and replaces their picks for the week. A pick that
// references an unknown slot or one the employee was never eligible for is
// rejected inline; the remaining valid picks are still saved. Submitting an
// empty list clears the week's picks.
func SubmitSelections(
	ctx context.Context,
	tokens db.TokenResolver,
	store SubmitStore,
	logger *zap.Logger,
	token string,
	shiftIDs []string,
) (*SubmitResult, error) {
	logger.Debug("Starting shift pick submission", zap.Int("picks", len(shiftIDs)))

	// Step 1: Resolve the token, same terminal conditions as the read path.
	tokenData, err := tokens.GetToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	if tokenData.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}

	// Step 2: Rebuild the eligibility context server-side. The client's
	// view is advisory; picks are validated against the same filter here.
	assignments, err := store.GetEmployeeAssignments(ctx, tokenData.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee assignments: %w", err)
	}
	slots, err := store.GetShiftSlots(ctx, tokenData.BusinessID, tokenData.WeekStart, tokenData.WeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift slots: %w", err)
	}

	eligibility := matching.BuildEligibility(assignments)
	slotsByID := make(map[string]model.ShiftSlot, len(slots))
	for _, slot := range slots {
		slotsByID[slot.ID] = slot
	}
	roleByBranch := make(map[string]string)
	for _, a := range assignments {
		if a.IsActive {
			if _, ok := roleByBranch[a.BranchID]; !ok {
				roleByBranch[a.BranchID] = a.RoleName
			}
		}
	}

	weekStart, err := time.Parse("2006-01-02", tokenData.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start date: %w", err)
	}

	// Step 3: Validate each pick and compute its calendar date.
	result := &SubmitResult{Success: true, Saved: []db.ShiftPick{}}
	seen := make(map[string]bool, len(shiftIDs))
	for _, shiftID := range shiftIDs {
		if seen[shiftID] {
			continue
		}
		seen[shiftID] = true

		slot, ok := slotsByID[shiftID]
		if !ok {
			result.Rejected = append(result.Rejected, RejectedPick{
				ShiftID: shiftID,
				Reason:  "shift not published for this week",
			})
			continue
		}
		if !eligibility.Allows(slot) {
			result.Rejected = append(result.Rejected, RejectedPick{
				ShiftID: shiftID,
				Reason:  "shift not compatible with branch assignments",
			})
			continue
		}

		shiftDate := weekStart.AddDate(0, 0, slot.DayOfWeek)
		result.Saved = append(result.Saved, db.ShiftPick{
			ShiftID:    slot.ID,
			EmployeeID: tokenData.EmployeeID,
			Date:       shiftDate.Format("2006-01-02"),
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			BranchID:   slot.BranchID,
			RoleName:   roleByBranch[slot.BranchID],
		})
	}

	// Step 4: Persist, replacing any previous picks for the week.
	if err := store.ReplaceShiftPicks(ctx, tokenData.EmployeeID, tokenData.WeekStart, result.Saved); err != nil {
		return nil, fmt.Errorf("failed to save shift picks: %w", err)
	}

	logger.Info("Shift picks saved",
		zap.String("employee_id", tokenData.EmployeeID),
		zap.String("week_start", tokenData.WeekStart),
		zap.Int("saved", len(result.Saved)),
		zap.Int("rejected", len(result.Rejected)))

	return result, nil
}
