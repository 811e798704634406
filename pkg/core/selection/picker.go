// Package selection mirrors a reduced form of the eligibility and
// reconciliation logic for interactive use: as the employee toggles shifts,
// it recomputes which remaining shifts are suggested (contained in a pick)
// or blocked (overlapping a pick without containment).
package selection

import (
	"github.com/jakechorley/shift-select/pkg/core/matching"
	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/core/timeutil"
)

// Phase is the submission flow state. Transitions are linear
// (view → select → submitting → submitted); the only backward edge is the
// user-initiated cancel from select back to view, which discards selections.
type Phase string

const (
	PhaseView       Phase = "view"
	PhaseSelect     Phase = "select"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// ShiftState is one selectable shift plus its live flags.
type ShiftState struct {
	Slot       model.ShiftSlot
	Selected   bool
	Suggested  bool   // contained in an already-selected shift: endorsed
	Conflicted bool   // overlaps an already-selected shift without containment: blocked
	Reason     string // why it was auto-selected or is suggested
}

// Picker holds the interactive selection state for one employee's week.
// Not safe for concurrent use; each session owns its own Picker.
type Picker struct {
	phase  Phase
	shifts []*ShiftState
	index  map[string]*ShiftState
	auto   map[string]string // shift ID -> auto-selection reason, for Cancel reset
}

// NewPicker builds a Picker from a computed week. Regular and special
// compatible shifts become selectable; auto-selected shifts start out
// selected with their reconciliation reason attached.
func NewPicker(week [7]matching.DaySchedule) *Picker {
	p := &Picker{
		phase: PhaseView,
		index: make(map[string]*ShiftState),
		auto:  make(map[string]string),
	}

	for _, day := range week {
		for _, selected := range day.AutoSelected {
			p.auto[selected.ID] = selected.Reason
		}
		for _, slot := range day.CompatibleShifts {
			p.add(slot)
		}
		for _, slot := range day.SpecialShifts {
			p.add(slot)
		}
	}

	p.recompute()
	return p
}

func (p *Picker) add(slot model.ShiftSlot) {
	if _, exists := p.index[slot.ID]; exists {
		return
	}
	state := &ShiftState{Slot: slot}
	if reason, ok := p.auto[slot.ID]; ok {
		state.Selected = true
		state.Reason = reason
	}
	p.shifts = append(p.shifts, state)
	p.index[slot.ID] = state
}

// Phase returns the current submission phase.
func (p *Picker) Phase() Phase {
	return p.phase
}

// Begin moves from view to select. No-op in any other phase.
func (p *Picker) Begin() {
	if p.phase == PhaseView {
		p.phase = PhaseSelect
	}
}

// Cancel discards the session's selections and returns to view, restoring
// the auto-selected baseline. Only valid from select.
func (p *Picker) Cancel() {
	if p.phase != PhaseSelect {
		return
	}
	for _, state := range p.shifts {
		_, wasAuto := p.auto[state.Slot.ID]
		state.Selected = wasAuto
		state.Reason = p.auto[state.Slot.ID]
	}
	p.recompute()
	p.phase = PhaseView
}

// Submit moves from select to submitting. No-op in any other phase.
func (p *Picker) Submit() {
	if p.phase == PhaseSelect {
		p.phase = PhaseSubmitting
	}
}

// Complete moves from submitting to submitted. Terminal: no transitions
// leave submitted.
func (p *Picker) Complete() {
	if p.phase == PhaseSubmitting {
		p.phase = PhaseSubmitted
	}
}

// Toggle flips the selection state of the identified shift and recomputes
// suggestions and conflicts for everything else. Toggling a conflicted
// shift, an unknown ID, or outside the select phase is a no-op; it returns
// whether the state changed.
func (p *Picker) Toggle(shiftID string) bool {
	if p.phase != PhaseSelect {
		return false
	}
	state, ok := p.index[shiftID]
	if !ok {
		return false
	}
	if state.Conflicted && !state.Selected {
		return false
	}

	state.Selected = !state.Selected
	p.recompute()
	return true
}

// recompute re-derives the suggested/conflicted flags for every unselected
// shift from scratch. Deliberately not incremental: deselecting one shift
// can release conflicts and suggestions anywhere else in the day.
func (p *Picker) recompute() {
	for _, candidate := range p.shifts {
		candidate.Suggested = false
		candidate.Conflicted = false
		if candidate.Selected {
			continue
		}

		span := timeutil.SpanOf(candidate.Slot)
		suggested := false
		overlapping := false

		for _, other := range p.shifts {
			if !other.Selected || other.Slot.ID == candidate.Slot.ID {
				continue
			}
			if other.Slot.DayOfWeek != candidate.Slot.DayOfWeek {
				continue
			}

			otherSpan := timeutil.SpanOf(other.Slot)
			if other.Slot.BranchID == candidate.Slot.BranchID && otherSpan.Contains(span) {
				suggested = true
			}
			if otherSpan.Overlaps(span) {
				overlapping = true
			}
		}

		// Overlap with containment is an endorsed pick; overlap without
		// containment is a hard conflict.
		if suggested {
			candidate.Suggested = true
			candidate.Reason = "fits inside a selected shift"
		} else if overlapping {
			candidate.Conflicted = true
		}
	}
}

// Shifts returns the live state of every selectable shift, in day order.
func (p *Picker) Shifts() []ShiftState {
	out := make([]ShiftState, len(p.shifts))
	for i, s := range p.shifts {
		out[i] = *s
	}
	return out
}

// SelectedShifts returns the currently selected slots.
func (p *Picker) SelectedShifts() []model.ShiftSlot {
	var out []model.ShiftSlot
	for _, s := range p.shifts {
		if s.Selected {
			out = append(out, s.Slot)
		}
	}
	return out
}
