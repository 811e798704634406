package matching

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/core/timeutil"
)

// Morning pass bounds: a shift counts as a morning shift when its start hour
// falls in [6,12] inclusive.
const (
	morningStartHourMin = 6
	morningStartHourMax = 12
)

// ReconcileInput carries one employee's availability statement for the week.
type ReconcileInput struct {
	// Windows are the free-form availability windows from the most recent
	// submission, any day of the week.
	Windows []model.SubmittedAvailabilityWindow

	// OptionalMorningDays lists weekdays on which the employee also accepts
	// any morning shift, without an explicit window.
	OptionalMorningDays []int
}

// Reconcile runs the auto-selection engine over an already-built week,
// filling each day's AutoSelected slice in place.
//
// For every availability window on a day, strategies are tried in strict
// priority order and the first one producing matches wins for that window:
//
//  1. shorter-shift-in-range: shifts fully contained in the window and
//     strictly shorter than it
//  2. full containment: shifts fully contained in the window
//  3. overlap fallback: shifts merely overlapping the window
//
// Each window is processed independently, so two windows on the same day can
// each fire their own strategy. A per-day processed set guarantees no shift
// is auto-selected twice, across both the window strategies and the
// optional-morning pass. Special shifts never enter the candidate pool —
// BuildWeek keeps them out of CompatibleShifts.
func Reconcile(week *[7]DaySchedule, input ReconcileInput, logger *zap.Logger) {
	windowsByDay := make(map[int][]model.SubmittedAvailabilityWindow)
	for _, w := range input.Windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			logger.Warn("Skipping availability window with invalid weekday",
				zap.Int("day_of_week", w.DayOfWeek),
				zap.String("date", w.Date))
			continue
		}
		windowsByDay[w.DayOfWeek] = append(windowsByDay[w.DayOfWeek], w)
	}

	morningDays := make(map[int]bool)
	for _, d := range input.OptionalMorningDays {
		morningDays[d] = true
	}

	for day := range week {
		schedule := &week[day]
		processed := make(map[string]bool)

		for _, window := range windowsByDay[day] {
			span, ok := timeutil.NewSpan(window.StartTime, window.EndTime)
			if !ok {
				logger.Warn("Skipping malformed availability window",
					zap.Int("day", day),
					zap.String("start", window.StartTime),
					zap.String("end", window.EndTime))
				continue
			}
			selectForWindow(schedule, span, window, processed)
		}

		if morningDays[day] {
			selectMorningShifts(schedule, processed)
		}

		if len(schedule.AutoSelected) > 0 {
			logger.Debug("Auto-selected shifts",
				zap.Int("day", day),
				zap.String("day_name", schedule.DayName),
				zap.Int("count", len(schedule.AutoSelected)))
		}
	}
}

// selectForWindow applies the three-strategy ladder for a single window.
func selectForWindow(schedule *DaySchedule, span timeutil.Span, window model.SubmittedAvailabilityWindow, processed map[string]bool) {
	windowLabel := fmt.Sprintf("%s-%s", window.StartTime, window.EndTime)

	// Strategy 1: shifts strictly shorter than the stated window. An
	// employee who wrote "available 09:00-17:00" most likely means any
	// sub-shift inside it, so granular matches take priority.
	shorter := FindShorterWithinRange(schedule.CompatibleShifts, span, processed)
	if len(shorter) > 0 {
		selectAll(schedule, shorter, fmt.Sprintf("shorter shift within availability %s", windowLabel), processed)
		return
	}

	// Strategy 2: strict containment, covering the exact-span case the
	// shorter-than guard excludes.
	var contained []model.ShiftSlot
	for _, slot := range schedule.CompatibleShifts {
		if processed[slot.ID] {
			continue
		}
		if span.Contains(timeutil.SpanOf(slot)) {
			contained = append(contained, slot)
		}
	}
	if len(contained) > 0 {
		selectAll(schedule, contained, fmt.Sprintf("contained in availability %s", windowLabel), processed)
		return
	}

	// Strategy 3: loose overlap. Least certain signal, last resort.
	var overlapping []model.ShiftSlot
	for _, slot := range schedule.CompatibleShifts {
		if processed[slot.ID] {
			continue
		}
		if span.Overlaps(timeutil.SpanOf(slot)) {
			overlapping = append(overlapping, slot)
		}
	}
	if len(overlapping) > 0 {
		selectAll(schedule, overlapping, fmt.Sprintf("overlaps availability %s", windowLabel), processed)
	}
}

// FindShorterWithinRange filters candidates to those fully contained in the
// range and strictly shorter in duration than the range itself. The
// strictly-shorter guard keeps a candidate identical in span to the range
// for the containment strategy instead. Already-processed candidates are
// skipped.
func FindShorterWithinRange(candidates []model.ShiftSlot, r timeutil.Span, processed map[string]bool) []model.ShiftSlot {
	var matches []model.ShiftSlot
	for _, slot := range candidates {
		if processed[slot.ID] {
			continue
		}
		span := timeutil.SpanOf(slot)
		if r.Contains(span) && span.Duration() < r.Duration() {
			matches = append(matches, slot)
		}
	}
	return matches
}

// selectMorningShifts handles the optional-morning pass: any not-yet-
// processed compatible shift starting between 06:00 and 12:59.
func selectMorningShifts(schedule *DaySchedule, processed map[string]bool) {
	var mornings []model.ShiftSlot
	for _, slot := range schedule.CompatibleShifts {
		if processed[slot.ID] {
			continue
		}
		hour := timeutil.SpanOf(slot).StartHour()
		if hour >= morningStartHourMin && hour <= morningStartHourMax {
			mornings = append(mornings, slot)
		}
	}
	selectAll(schedule, mornings, "available for morning (optional)", processed)
}

func selectAll(schedule *DaySchedule, slots []model.ShiftSlot, reason string, processed map[string]bool) {
	for _, slot := range slots {
		processed[slot.ID] = true
		schedule.AutoSelected = append(schedule.AutoSelected, model.CompatibleShift{
			ShiftSlot:    slot,
			AutoSelected: true,
			Reason:       reason,
		})
	}
}
