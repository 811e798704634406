// Package matching implements the shift compatibility filter and the
// availability reconciliation (auto-selection) engine. Both are pure:
// they take already-fetched records and return derived structures, raising
// no errors — absent data yields empty results.
package matching

import (
	"sort"

	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/core/timeutil"
)

// DaySchedule is the per-weekday view handed to the employee: everything
// published that day, the subset they are structurally allowed to pick
// (split regular vs. special), and the shifts the reconciliation engine
// pre-selected for them.
type DaySchedule struct {
	DayIndex         int                     `json:"dayIndex"`
	DayName          string                  `json:"dayName"`
	Shifts           []model.ShiftSlot       `json:"shifts"`
	CompatibleShifts []model.ShiftSlot       `json:"compatibleShifts"`
	SpecialShifts    []model.ShiftSlot       `json:"specialShifts"`
	AutoSelected     []model.CompatibleShift `json:"autoSelectedShifts"`
}

// Eligibility is the union of an employee's active branch assignments.
type Eligibility struct {
	BranchIDs     map[string]bool
	ShiftTypes    map[model.ShiftType]bool
	AvailableDays map[int]bool
}

// BuildEligibility unions all active assignments into flat lookup sets.
// Inactive assignments are ignored. An employee with no active assignments
// yields empty sets, which match nothing (fail-closed).
func BuildEligibility(assignments []model.EmployeeBranchAssignment) Eligibility {
	e := Eligibility{
		BranchIDs:     make(map[string]bool),
		ShiftTypes:    make(map[model.ShiftType]bool),
		AvailableDays: make(map[int]bool),
	}

	for _, a := range assignments {
		if !a.IsActive {
			continue
		}
		e.BranchIDs[a.BranchID] = true
		for _, t := range a.ShiftTypes {
			e.ShiftTypes[t] = true
		}
		for _, d := range a.AvailableDays {
			e.AvailableDays[d] = true
		}
	}

	return e
}

// Allows reports whether a slot passes the eligibility filter. All three
// conditions are conjunctive: branch, shift type, and weekday must all match.
// Slots whose type did not parse never match.
func (e Eligibility) Allows(slot model.ShiftSlot) bool {
	return slot.ShiftType != model.ShiftTypeUnknown &&
		e.BranchIDs[slot.BranchID] &&
		e.ShiftTypes[slot.ShiftType] &&
		e.AvailableDays[slot.DayOfWeek]
}

// BuildWeek partitions the week's published slots into per-day schedules for
// one employee. Compatible slots are split into regular and special; the
// regular partition is sorted ascending by start time (the order the
// reconciliation engine expects). AutoSelected starts empty — Reconcile
// fills it in.
func BuildWeek(assignments []model.EmployeeBranchAssignment, slots []model.ShiftSlot) [7]DaySchedule {
	eligibility := BuildEligibility(assignments)

	var week [7]DaySchedule
	for day := 0; day < 7; day++ {
		week[day] = DaySchedule{
			DayIndex:         day,
			DayName:          model.DayNames[day],
			Shifts:           []model.ShiftSlot{},
			CompatibleShifts: []model.ShiftSlot{},
			SpecialShifts:    []model.ShiftSlot{},
			AutoSelected:     []model.CompatibleShift{},
		}
	}

	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			continue
		}
		day := &week[slot.DayOfWeek]
		day.Shifts = append(day.Shifts, slot)

		if !eligibility.Allows(slot) {
			continue
		}
		if slot.ShiftType.IsSpecial() {
			day.SpecialShifts = append(day.SpecialShifts, slot)
		} else {
			day.CompatibleShifts = append(day.CompatibleShifts, slot)
		}
	}

	for day := range week {
		sortByStartTime(week[day].CompatibleShifts)
		sortByStartTime(week[day].SpecialShifts)
	}

	return week
}

func sortByStartTime(slots []model.ShiftSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return timeutil.ToMinutes(slots[i].StartTime) < timeutil.ToMinutes(slots[j].StartTime)
	})
}
