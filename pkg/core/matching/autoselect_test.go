package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/core/timeutil"
)

func mondayWindow(start, end string) model.SubmittedAvailabilityWindow {
	return model.SubmittedAvailabilityWindow{
		Date:      "2025-01-06",
		DayOfWeek: 1,
		StartTime: start,
		EndTime:   end,
	}
}

func reconciledWeek(t *testing.T, slots []model.ShiftSlot, input ReconcileInput) [7]DaySchedule {
	t.Helper()
	assignments := []model.EmployeeBranchAssignment{
		assignment("B1", []model.ShiftType{
			model.ShiftTypeMorning, model.ShiftTypeEvening, model.ShiftTypeNight, model.ShiftTypeFull,
		}, []int{0, 1, 2, 3, 4, 5, 6}),
	}
	week := BuildWeek(assignments, slots)
	Reconcile(&week, input, zap.NewNop())
	return week
}

func autoSelectedIDs(day DaySchedule) []string {
	ids := make([]string, 0, len(day.AutoSelected))
	for _, s := range day.AutoSelected {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestReconcile_ShorterShiftsTakePriority(t *testing.T) {
	// Two one-hour shifts inside a two-hour window: the shorter-in-range
	// strategy selects both; containment and overlap must not fire.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "09:00", "10:00"),
		slot("s2", "B1", 1, model.ShiftTypeMorning, "10:00", "11:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{mondayWindow("09:00", "11:00")},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 2)
	assert.ElementsMatch(t, []string{"s1", "s2"}, autoSelectedIDs(monday))
	for _, selected := range monday.AutoSelected {
		assert.True(t, selected.AutoSelected)
		assert.Contains(t, selected.Reason, "shorter")
		assert.Contains(t, selected.Reason, "09:00-11:00")
	}
}

func TestReconcile_SplitShiftsAcrossStatedWindow(t *testing.T) {
	// "Available 09:00-15:00" covering two published sub-shifts.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s4", "B1", 1, model.ShiftTypeMorning, "09:00", "12:00"),
		slot("s5", "B1", 1, model.ShiftTypeMorning, "12:00", "15:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{mondayWindow("09:00", "15:00")},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 2)
	assert.ElementsMatch(t, []string{"s4", "s5"}, autoSelectedIDs(monday))
	for _, selected := range monday.AutoSelected {
		assert.Contains(t, selected.Reason, "09:00-15:00")
	}
}

func TestReconcile_ContainmentWhenNoShorterMatch(t *testing.T) {
	// Shift spans the window exactly: not strictly shorter, so the
	// containment strategy picks it up.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "09:00", "17:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{mondayWindow("09:00", "17:00")},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 1)
	assert.Contains(t, monday.AutoSelected[0].Reason, "contained in availability 09:00-17:00")
}

func TestReconcile_OverlapFallback(t *testing.T) {
	// Shift sticks out of the window on both checks: only overlap matches.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "08:00", "13:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{mondayWindow("09:00", "12:00")},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 1)
	assert.Contains(t, monday.AutoSelected[0].Reason, "overlaps availability 09:00-12:00")
}

func TestReconcile_TouchingShiftNotSelected(t *testing.T) {
	// Window ends exactly where the shift starts: no overlap, no selection.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "12:00", "16:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{mondayWindow("09:00", "12:00")},
	})

	assert.Empty(t, week[1].AutoSelected)
}

func TestReconcile_NoDoubleSelectionAcrossWindows(t *testing.T) {
	// Two overlapping windows both covering the same shift: it is selected
	// once, by the first window processed.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "09:00", "10:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{
			mondayWindow("08:00", "12:00"),
			mondayWindow("09:00", "11:00"),
		},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 1)
	assert.Equal(t, "s1", monday.AutoSelected[0].ID)
}

func TestReconcile_NoDoubleSelectionWithMorningPass(t *testing.T) {
	// Shift already selected by a window is not re-selected by the
	// optional-morning pass.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "09:00", "10:00"),
	}, ReconcileInput{
		Windows:             []model.SubmittedAvailabilityWindow{mondayWindow("08:00", "12:00")},
		OptionalMorningDays: []int{1},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 1)
	assert.Contains(t, monday.AutoSelected[0].Reason, "shorter")
}

func TestReconcile_WindowsProcessedIndependently(t *testing.T) {
	// A second window on the same day still fires its own strategy after
	// the first consumed its match.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "09:00", "10:00"),
		slot("s2", "B1", 1, model.ShiftTypeEvening, "16:00", "22:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{
			mondayWindow("09:00", "11:00"),
			mondayWindow("17:00", "21:00"),
		},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 2)
	assert.Contains(t, monday.AutoSelected[0].Reason, "shorter")
	assert.Contains(t, monday.AutoSelected[1].Reason, "overlaps")
}

func TestReconcile_SpecialShiftsNeverAutoSelected(t *testing.T) {
	assignments := []model.EmployeeBranchAssignment{
		assignment("B1", []model.ShiftType{model.ShiftTypeSpecial, model.ShiftTypeEmergency}, []int{1}),
	}
	week := BuildWeek(assignments, []model.ShiftSlot{
		slot("sp1", "B1", 1, model.ShiftTypeSpecial, "09:00", "10:00"),
		slot("em1", "B1", 1, model.ShiftTypeEmergency, "10:00", "11:00"),
	})

	Reconcile(&week, ReconcileInput{
		Windows:             []model.SubmittedAvailabilityWindow{mondayWindow("08:00", "12:00")},
		OptionalMorningDays: []int{1},
	}, zap.NewNop())

	assert.Empty(t, week[1].AutoSelected)
	assert.Len(t, week[1].SpecialShifts, 2, "still surfaced for manual selection")
}

func TestReconcile_OptionalMorningPass(t *testing.T) {
	// No windows at all, morning opt-in for Monday.
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "07:00", "11:00"),
		slot("s2", "B1", 1, model.ShiftTypeEvening, "16:00", "22:00"),
		slot("s3", "B1", 2, model.ShiftTypeMorning, "07:00", "11:00"),
	}, ReconcileInput{
		OptionalMorningDays: []int{1},
	})

	monday := week[1]
	require.Len(t, monday.AutoSelected, 1)
	assert.Equal(t, "s1", monday.AutoSelected[0].ID)
	assert.Contains(t, monday.AutoSelected[0].Reason, "morning (optional)")

	assert.Empty(t, week[2].AutoSelected, "Tuesday not opted in")
}

func TestReconcile_MorningHourBounds(t *testing.T) {
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("early", "B1", 1, model.ShiftTypeNight, "05:59", "08:00"),
		slot("six", "B1", 1, model.ShiftTypeMorning, "06:00", "10:00"),
		slot("noonish", "B1", 1, model.ShiftTypeMorning, "12:59", "16:00"),
		slot("afternoon", "B1", 1, model.ShiftTypeEvening, "13:00", "18:00"),
	}, ReconcileInput{
		OptionalMorningDays: []int{1},
	})

	assert.ElementsMatch(t, []string{"six", "noonish"}, autoSelectedIDs(week[1]))
}

func TestReconcile_MalformedWindowSkipped(t *testing.T) {
	week := reconciledWeek(t, []model.ShiftSlot{
		slot("s1", "B1", 1, model.ShiftTypeMorning, "09:00", "10:00"),
	}, ReconcileInput{
		Windows: []model.SubmittedAvailabilityWindow{
			mondayWindow("not-a-time", "12:00"),
		},
	})

	assert.Empty(t, week[1].AutoSelected)
}

func TestFindShorterWithinRange_ExcludesEqualSpan(t *testing.T) {
	r, ok := timeutil.NewSpan("09:00", "12:00")
	require.True(t, ok)

	candidates := []model.ShiftSlot{
		slot("exact", "B1", 1, model.ShiftTypeMorning, "09:00", "12:00"),
		slot("shorter", "B1", 1, model.ShiftTypeMorning, "09:00", "11:00"),
		slot("outside", "B1", 1, model.ShiftTypeMorning, "08:00", "10:00"),
	}

	matches := FindShorterWithinRange(candidates, r, map[string]bool{})

	require.Len(t, matches, 1)
	assert.Equal(t, "shorter", matches[0].ID)
}

func TestFindShorterWithinRange_SkipsProcessed(t *testing.T) {
	r, ok := timeutil.NewSpan("09:00", "12:00")
	require.True(t, ok)

	candidates := []model.ShiftSlot{
		slot("a", "B1", 1, model.ShiftTypeMorning, "09:00", "10:00"),
		slot("b", "B1", 1, model.ShiftTypeMorning, "10:00", "11:00"),
	}

	matches := FindShorterWithinRange(candidates, r, map[string]bool{"a": true})

	require.Len(t, matches, 1)
	assert.Equal(t, "b", matches[0].ID)
}
