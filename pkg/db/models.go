package db

import (
	"time"

	"github.com/jakechorley/shift-select/pkg/core/model"
)

// TokenData is a resolved weekly-selection access token: one employee plus
// one week's scheduling context.
type TokenData struct {
	ID         string         `json:"id"`
	Token      string         `json:"token"`
	EmployeeID string         `json:"employeeId"`
	BusinessID string         `json:"businessId"`
	WeekStart  string         `json:"weekStart"` // "2006-01-02"
	WeekEnd    string         `json:"weekEnd"`   // "2006-01-02"
	ExpiresAt  time.Time      `json:"expiresAt"`
	Employee   model.Employee `json:"employee"`
}

// Expired reports whether the token has passed its expiry at the given
// instant.
func (t TokenData) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// AvailabilitySubmission is one historical availability submission row.
// Payload is the stored JSON exactly as submitted; parsing it is the
// service's job because malformed payloads must degrade gracefully, not
// fail the fetch.
type AvailabilitySubmission struct {
	ID                  string
	EmployeeID          string
	WeekStart           string
	Payload             []byte
	OptionalMorningDays []int
	SubmittedAt         time.Time
}

// ShiftPick is one row of an employee's final shift choice for a week.
type ShiftPick struct {
	ID         string
	ShiftID    string
	EmployeeID string
	Date       string // computed calendar date, "2006-01-02"
	StartTime  string
	EndTime    string
	BranchID   string
	RoleName   string
}
