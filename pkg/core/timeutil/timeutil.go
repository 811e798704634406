// Package timeutil provides the wall-clock arithmetic the matching engine is
// built on. Times are "HH:MM" strings compared as minutes since midnight;
// there is no date component at this layer.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ToMinutes parses an "HH:MM" string into minutes since midnight.
// Malformed input returns -1; callers that cannot tolerate it should
// validate at the boundary.
func ToMinutes(t string) int {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return -1
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 {
		return -1
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return -1
	}
	return hours*60 + minutes
}

// ToClock is the inverse of ToMinutes. Zero-padded two-digit fields, no day
// rollover: 1500 minutes renders as "25:00", not "01:00".
func ToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Span is a time range in minutes since midnight. End is always >= Start:
// NewSpan normalizes cross-midnight ranges by pushing the end into the next
// day, so a 22:00-02:00 shift compares as 1320-1560.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span from "HH:MM" bounds. ok is false when either bound
// is malformed.
func NewSpan(startTime, endTime string) (Span, bool) {
	start := ToMinutes(startTime)
	end := ToMinutes(endTime)
	if start < 0 || end < 0 {
		return Span{}, false
	}
	if end < start {
		end += minutesPerDay
	}
	return Span{Start: start, End: end}, true
}

// Duration returns the span length in minutes.
func (s Span) Duration() int {
	return s.End - s.Start
}

// StartHour returns the hour component of the span's start.
func (s Span) StartHour() int {
	return s.Start / 60
}

// Contains reports whether inner lies fully within s. Equal bounds count as
// contained.
func (s Span) Contains(inner Span) bool {
	return inner.Start >= s.Start && inner.End <= s.End
}

// Overlaps reports whether the two spans intersect. Open-interval semantics:
// touching endpoints (09:00-10:00 vs 10:00-11:00) do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Timed is anything carrying "HH:MM" start/end bounds.
type Timed interface {
	Bounds() (startTime, endTime string)
}

// SpanOf converts a Timed value to its Span. Malformed bounds yield a
// sentinel span that contains nothing, is contained in nothing, and
// overlaps nothing.
func SpanOf(t Timed) Span {
	start, end := t.Bounds()
	s, ok := NewSpan(start, end)
	if !ok {
		return Span{Start: -1, End: -1}
	}
	return s
}

// IsFullyContained reports whether inner lies fully within outer.
func IsFullyContained(inner, outer Timed) bool {
	return SpanOf(outer).Contains(SpanOf(inner))
}

// Overlaps reports whether a and b intersect (open-interval).
func Overlaps(a, b Timed) bool {
	return SpanOf(a).Overlaps(SpanOf(b))
}
