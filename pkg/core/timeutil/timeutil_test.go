package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes("00:00"))
	assert.Equal(t, 540, ToMinutes("09:00"))
	assert.Equal(t, 1439, ToMinutes("23:59"))
	assert.Equal(t, 90, ToMinutes("01:30"))
}

func TestToMinutes_Malformed(t *testing.T) {
	assert.Equal(t, -1, ToMinutes(""))
	assert.Equal(t, -1, ToMinutes("9"))
	assert.Equal(t, -1, ToMinutes("ab:cd"))
	assert.Equal(t, -1, ToMinutes("09:60"))
	assert.Equal(t, -1, ToMinutes("-1:30"))
}

func TestToClock(t *testing.T) {
	assert.Equal(t, "00:00", ToClock(0))
	assert.Equal(t, "09:05", ToClock(545))
	assert.Equal(t, "23:59", ToClock(1439))
}

func TestToClock_NoDayRollover(t *testing.T) {
	// Minutes past midnight render an hour >= 24 rather than wrapping.
	assert.Equal(t, "25:00", ToClock(1500))
	assert.Equal(t, "26:30", ToClock(1590))
}

func TestNewSpan(t *testing.T) {
	span, ok := NewSpan("09:00", "17:00")
	require.True(t, ok)
	assert.Equal(t, 540, span.Start)
	assert.Equal(t, 1020, span.End)
	assert.Equal(t, 480, span.Duration())
	assert.Equal(t, 9, span.StartHour())
}

func TestNewSpan_CrossMidnight(t *testing.T) {
	// A 22:00-02:00 shift is normalized into the next day.
	span, ok := NewSpan("22:00", "02:00")
	require.True(t, ok)
	assert.Equal(t, 1320, span.Start)
	assert.Equal(t, 1560, span.End)
	assert.Equal(t, 240, span.Duration())
}

func TestNewSpan_Malformed(t *testing.T) {
	_, ok := NewSpan("nope", "17:00")
	assert.False(t, ok)

	_, ok = NewSpan("09:00", "")
	assert.False(t, ok)
}

type window struct {
	start, end string
}

func (w window) Bounds() (string, string) {
	return w.start, w.end
}

func TestIsFullyContained_EqualBoundsCount(t *testing.T) {
	a := window{"09:00", "17:00"}

	// Containment is reflexive: an interval contains itself.
	assert.True(t, IsFullyContained(a, a))
}

func TestIsFullyContained(t *testing.T) {
	outer := window{"09:00", "17:00"}

	assert.True(t, IsFullyContained(window{"10:00", "14:00"}, outer))
	assert.True(t, IsFullyContained(window{"09:00", "12:00"}, outer))
	assert.False(t, IsFullyContained(window{"08:00", "12:00"}, outer))
	assert.False(t, IsFullyContained(window{"12:00", "18:00"}, outer))
	assert.False(t, IsFullyContained(outer, window{"10:00", "14:00"}))
}

func TestOverlaps_Symmetric(t *testing.T) {
	a := window{"09:00", "12:00"}
	b := window{"11:00", "14:00"}

	assert.True(t, Overlaps(a, b))
	assert.True(t, Overlaps(b, a))

	c := window{"13:00", "15:00"}
	assert.False(t, Overlaps(a, c))
	assert.False(t, Overlaps(c, a))
}

func TestOverlaps_TouchingEndpointsDoNotOverlap(t *testing.T) {
	a := window{"09:00", "10:00"}
	b := window{"10:00", "11:00"}

	assert.False(t, Overlaps(a, b))
	assert.False(t, Overlaps(b, a))
}

func TestOverlaps_Containment(t *testing.T) {
	outer := window{"08:00", "18:00"}
	inner := window{"10:00", "12:00"}

	assert.True(t, Overlaps(outer, inner))
	assert.True(t, Overlaps(inner, outer))
}

func TestSpanOf_MalformedBoundsMatchNothing(t *testing.T) {
	bad := window{"garbage", "17:00"}
	good := window{"00:00", "23:59"}

	assert.False(t, Overlaps(bad, good))
	assert.False(t, IsFullyContained(bad, good))
}
