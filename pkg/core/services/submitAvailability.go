package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/core/timeutil"
	"github.com/jakechorley/shift-select/pkg/db"
)

// AvailabilityWindowInput is one availability window as submitted by the
// employee-facing form. Date is "2006-01-02", both times "HH:MM".
type AvailabilityWindowInput struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RejectedWindow is a window that failed validation, reported inline.
type RejectedWindow struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// AvailabilityResult reports what was stored.
type AvailabilityResult struct {
	Success      bool             `json:"success"`
	SubmissionID string           `json:"submissionId"`
	Windows      int              `json:"windows"`
	Rejected     []RejectedWindow `json:"rejected,omitempty"`
}

// AvailabilityStore defines the database operation needed to record an
// availability submission.
type AvailabilityStore interface {
	SaveAvailabilitySubmission(ctx context.Context, sub db.AvailabilitySubmission) (string, error)
}

// SubmitAvailability records an employee's availability statement for the
// week the token covers. Windows with an unparseable date, a date outside
// the token's week, or malformed times are rejected inline; the remaining
// windows are stored as a new submission row. The engine always consults
// the most recent submission, so submitting again supersedes earlier ones
// without destroying them.
func SubmitAvailability(
	ctx context.Context,
	tokens db.TokenResolver,
	store AvailabilityStore,
	logger *zap.Logger,
	token string,
	windows []AvailabilityWindowInput,
	optionalMorningDays []int,
) (*AvailabilityResult, error) {
	logger.Debug("Starting availability submission", zap.Int("windows", len(windows)))

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

	weekStart, err := time.Parse("2006-01-02", tokenData.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start date: %w", err)
	}
	weekEnd, err := time.Parse("2006-01-02", tokenData.WeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week end date: %w", err)
	}

	// Step 2: Validate each window against the token's week.
	result := &AvailabilityResult{Success: true}
	accepted := make([]AvailabilityWindowInput, 0, len(windows))
	for _, w := range windows {
		date, err := time.Parse("2006-01-02", w.Date)
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedWindow{
				Date:   w.Date,
				Reason: "invalid date",
			})
			continue
		}
		if date.Before(weekStart) || date.After(weekEnd) {
			result.Rejected = append(result.Rejected, RejectedWindow{
				Date:   w.Date,
				Reason: "date outside the selection week",
			})
			continue
		}
		if _, ok := timeutil.NewSpan(w.StartTime, w.EndTime); !ok {
			result.Rejected = append(result.Rejected, RejectedWindow{
				Date:   w.Date,
				Reason: "invalid time window",
			})
			continue
		}
		accepted = append(accepted, w)
	}

	morningDays := make([]int, 0, len(optionalMorningDays))
	for _, d := range optionalMorningDays {
		if d >= 0 && d <= 6 {
			morningDays = append(morningDays, d)
		}
	}

	// Step 3: Store the accepted windows as a new submission row. The
	// payload shape is exactly what the weekly computation parses back.
	payload, err := json.Marshal(accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode availability payload: %w", err)
	}

	id, err := store.SaveAvailabilitySubmission(ctx, db.AvailabilitySubmission{
		EmployeeID:          tokenData.EmployeeID,
		WeekStart:           tokenData.WeekStart,
		Payload:             payload,
		OptionalMorningDays: morningDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save availability submission: %w", err)
	}

	result.SubmissionID = id
	result.Windows = len(accepted)

	logger.Info("Availability submission saved",
		zap.String("employee_id", tokenData.EmployeeID),
		zap.String("week_start", tokenData.WeekStart),
		zap.String("submission_id", id),
		zap.Int("windows", len(accepted)),
		zap.Int("rejected", len(result.Rejected)))

	return result, nil
}
