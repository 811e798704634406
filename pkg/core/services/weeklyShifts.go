package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/core/matching"
	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/db"
)

// WeeklyShiftsResult is the full response for one employee's week: every
// published slot per day, the eligible subset, and the auto-selected picks.
type WeeklyShiftsResult struct {
	Success                     bool                                `json:"success"`
	TokenData                   db.TokenData                        `json:"tokenData"`
	ShiftsByDay                 map[string]matching.DaySchedule     `json:"shiftsByDay"`
	TotalCompatibleShifts       int                                 `json:"totalCompatibleShifts"`
	TotalSpecialShifts          int                                 `json:"totalSpecialShifts"`
	EmployeeAssignments         []model.EmployeeBranchAssignment    `json:"employeeAssignments"`
	SubmittedAvailability       []model.SubmittedAvailabilityWindow `json:"submittedAvailability"`
	OptionalMorningAvailability []int                               `json:"optionalMorningAvailability"`
}

// WeeklyShiftsStore defines the database operations needed to compute an
// employee's weekly shift view.
type WeeklyShiftsStore interface {
	GetShiftSlots(ctx context.Context, businessID, weekStart, weekEnd string) ([]model.ShiftSlot, error)
	GetEmployeeAssignments(ctx context.Context, employeeID string) ([]model.EmployeeBranchAssignment, error)
	GetAvailabilitySubmissions(ctx context.Context, employeeID, weekStart string) ([]db.AvailabilitySubmission, error)
}

// GetWeeklyShifts resolves a selection token and computes the employee's
// week: eligibility filtering, then availability reconciliation. The caller
// always gets either a fully-formed (possibly all-empty) week or an error —
// never a partial structure.
func GetWeeklyShifts(
	ctx context.Context,
	tokens db.TokenResolver,
	store WeeklyShiftsStore,
	logger *zap.Logger,
	token string,
) (*WeeklyShiftsResult, error) {
	logger.Debug("Starting weekly shifts computation")

	// Step 1: Resolve the token. Expired and unknown tokens are both
	// terminal before any matching logic runs.
	tokenData, err := tokens.GetToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	if tokenData.Expired(time.Now()) {
		logger.Info("Rejected expired selection token",
			zap.String("token_id", tokenData.ID),
			zap.Time("expires_at", tokenData.ExpiresAt))
		return nil, ErrTokenExpired
	}

	logger.Debug("Token resolved",
		zap.String("employee_id", tokenData.EmployeeID),
		zap.String("week_start", tokenData.WeekStart),
		zap.String("week_end", tokenData.WeekEnd))

	// Step 2: Fetch the employee's active branch assignments. Zero
	// assignments is not an error — the week fails closed to empty
	// compatible sets, and the log line distinguishes this from a fetch
	// failure.
	assignments, err := store.GetEmployeeAssignments(ctx, tokenData.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee assignments: %w", err)
	}
	if len(assignments) == 0 {
		logger.Info("Employee has no active branch assignments, week will be empty",
			zap.String("employee_id", tokenData.EmployeeID))
	}

	// Step 3: Fetch the week's published slots.
	slots, err := store.GetShiftSlots(ctx, tokenData.BusinessID, tokenData.WeekStart, tokenData.WeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift slots: %w", err)
	}
	logger.Debug("Fetched published slots", zap.Int("count", len(slots)))

	// Step 4: Fetch availability submissions; only the most recent one is
	// consulted. A malformed payload degrades to no availability.
	submissions, err := store.GetAvailabilitySubmissions(ctx, tokenData.EmployeeID, tokenData.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability submissions: %w", err)
	}

	var windows []model.SubmittedAvailabilityWindow
	var morningDays []int
	if len(submissions) > 0 {
		head := submissions[0]
		windows = parseAvailabilityPayload(head.Payload, logger)
		morningDays = head.OptionalMorningDays
		logger.Debug("Using most recent availability submission",
			zap.String("submission_id", head.ID),
			zap.Time("submitted_at", head.SubmittedAt),
			zap.Int("windows", len(windows)),
			zap.Int("discarded_older", len(submissions)-1))
	}

	// Step 5: Run the engine.
	week := matching.BuildWeek(assignments, slots)
	matching.Reconcile(&week, matching.ReconcileInput{
		Windows:             windows,
		OptionalMorningDays: morningDays,
	}, logger)

	// Step 6: Assemble the response.
	result := &WeeklyShiftsResult{
		Success:                     true,
		TokenData:                   tokenData,
		ShiftsByDay:                 make(map[string]matching.DaySchedule, len(week)),
		EmployeeAssignments:         assignments,
		SubmittedAvailability:       windows,
		OptionalMorningAvailability: morningDays,
	}
	for _, day := range week {
		result.ShiftsByDay[day.DayName] = day
		result.TotalCompatibleShifts += len(day.CompatibleShifts)
		result.TotalSpecialShifts += len(day.SpecialShifts)
	}

	logger.Debug("Weekly shifts computed",
		zap.Int("total_compatible", result.TotalCompatibleShifts),
		zap.Int("total_special", result.TotalSpecialShifts))

	return result, nil
}

// availabilityPayloadEntry is the stored JSON shape of one availability
// window as submitted by the employee-facing form.
type availabilityPayloadEntry struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// parseAvailabilityPayload decodes a stored availability payload. The
// payload is free-form employee input persisted as-is, so every failure
// mode degrades: unparseable JSON means no availability, an entry with a
// bad date is skipped. Never returns an error.
func parseAvailabilityPayload(payload []byte, logger *zap.Logger) []model.SubmittedAvailabilityWindow {
	if len(payload) == 0 {
		return nil
	}

	var entries []availabilityPayloadEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		logger.Warn("Malformed availability payload, treating as no availability",
			zap.Error(err))
		return nil
	}

	windows := make([]model.SubmittedAvailabilityWindow, 0, len(entries))
	for _, entry := range entries {
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			logger.Warn("Skipping availability window with invalid date",
				zap.String("date", entry.Date))
			continue
		}
		windows = append(windows, model.SubmittedAvailabilityWindow{
			Date:      entry.Date,
			DayOfWeek: int(date.Weekday()),
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
	}

	return windows
}
