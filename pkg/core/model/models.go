package model

// ShiftType classifies a published shift slot. Business logic compares
// ShiftType values only; raw display labels are normalized at the boundary
// via ParseShiftType and rendered back through Label.
type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeEvening   ShiftType = "evening"
	ShiftTypeNight     ShiftType = "night"
	ShiftTypeFull      ShiftType = "full"
	ShiftTypeSpecial   ShiftType = "special"
	ShiftTypeEmergency ShiftType = "emergency"
	ShiftTypeUnknown   ShiftType = "unknown"
)

func (t ShiftType) IsValid() bool {
	switch t {
	case ShiftTypeMorning, ShiftTypeEvening, ShiftTypeNight, ShiftTypeFull,
		ShiftTypeSpecial, ShiftTypeEmergency:
		return true
	}
	return false
}

// IsSpecial reports whether the type requires explicit manual selection.
// Special and emergency shifts are surfaced separately and are never
// auto-selected.
func (t ShiftType) IsSpecial() bool {
	return t == ShiftTypeSpecial || t == ShiftTypeEmergency
}

// shiftTypeAliases maps raw stored labels (including the Hebrew labels used
// by the scheduling UI) onto the closed enum.
var shiftTypeAliases = map[string]ShiftType{
	"morning":   ShiftTypeMorning,
	"בוקר":      ShiftTypeMorning,
	"evening":   ShiftTypeEvening,
	"ערב":       ShiftTypeEvening,
	"night":     ShiftTypeNight,
	"לילה":      ShiftTypeNight,
	"full":      ShiftTypeFull,
	"מלאה":      ShiftTypeFull,
	"special":   ShiftTypeSpecial,
	"מיוחדת":    ShiftTypeSpecial,
	"emergency": ShiftTypeEmergency,
	"חירום":     ShiftTypeEmergency,
}

// ParseShiftType normalizes a raw shift-type label. Unrecognized labels map
// to ShiftTypeUnknown rather than failing, so a new label introduced by the
// scheduling UI degrades to "not eligible" instead of an error.
func ParseShiftType(raw string) ShiftType {
	if t, ok := shiftTypeAliases[raw]; ok {
		return t
	}
	return ShiftTypeUnknown
}

// shiftTypeLabels is the presentation table, keyed by enum then locale.
var shiftTypeLabels = map[ShiftType]map[string]string{
	ShiftTypeMorning:   {"en": "Morning", "he": "בוקר"},
	ShiftTypeEvening:   {"en": "Evening", "he": "ערב"},
	ShiftTypeNight:     {"en": "Night", "he": "לילה"},
	ShiftTypeFull:      {"en": "Full day", "he": "מלאה"},
	ShiftTypeSpecial:   {"en": "Special", "he": "מיוחדת"},
	ShiftTypeEmergency: {"en": "Emergency", "he": "חירום"},
}

// Label returns the display label for the given locale ("en" or "he").
// Falls back to the raw enum value for unknown types or locales.
func (t ShiftType) Label(locale string) string {
	if locales, ok := shiftTypeLabels[t]; ok {
		if label, ok := locales[locale]; ok {
			return label
		}
	}
	return string(t)
}

// DayNames are the weekday display names, index 0 = Sunday (the first day of
// the week in this domain).
var DayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// ShiftSlot is a published, schedulable unit of work for one day of one week.
// Slots are created by the schedule-authoring UI and are read-only to the
// matching engine.
type ShiftSlot struct {
	ID                string    `json:"id"`
	BusinessID        string    `json:"businessId"`
	BranchID          string    `json:"branchId"`
	WeekStartDate     string    `json:"weekStartDate"` // inclusive, "2006-01-02"
	WeekEndDate       string    `json:"weekEndDate"`   // inclusive, "2006-01-02"
	DayOfWeek         int       `json:"dayOfWeek"`     // 0-6, 0 = Sunday
	StartTime         string    `json:"startTime"`     // "HH:MM"
	EndTime           string    `json:"endTime"`       // "HH:MM", may be earlier than StartTime for cross-midnight slots
	ShiftType         ShiftType `json:"shiftType"`
	RequiredEmployees int       `json:"requiredEmployees"`
}

// Bounds returns the slot's wall-clock bounds, satisfying timeutil.Timed.
func (s ShiftSlot) Bounds() (string, string) {
	return s.StartTime, s.EndTime
}

// EmployeeBranchAssignment is an employee's structural eligibility record.
// An employee may hold several assignments across branches; eligibility is
// the union across all active assignments.
type EmployeeBranchAssignment struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employeeId"`
	BranchID      string      `json:"branchId"`
	RoleName      string      `json:"roleName"`
	ShiftTypes    []ShiftType `json:"shiftTypes"`
	AvailableDays []int       `json:"availableDays"` // weekday indices 0-6
	IsActive      bool        `json:"isActive"`
}

// SubmittedAvailabilityWindow is one free-form "I am free from X to Y" entry
// from the employee's most recent availability submission.
type SubmittedAvailabilityWindow struct {
	Date      string `json:"date"` // "2006-01-02", weekday derived from it
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
}

// Bounds returns the window's wall-clock bounds, satisfying timeutil.Timed.
func (w SubmittedAvailabilityWindow) Bounds() (string, string) {
	return w.StartTime, w.EndTime
}

// CompatibleShift is a ShiftSlot that passed the eligibility filter for a
// specific employee, annotated with the auto-selection outcome. Derived, not
// persisted.
type CompatibleShift struct {
	ShiftSlot
	AutoSelected bool   `json:"autoSelected"`
	Reason       string `json:"reason,omitempty"` // set only when auto-selected or suggested
}

// Employee is the minimal identity record echoed back in token data.
type Employee struct {
	ID         string `json:"id"`
	BusinessID string `json:"businessId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
}
