package game

import (
	"fmt"
	"time"
)

// TickInterval is how often the timer samples the wall clock.
const TickInterval = time.Second

// Timer derives elapsed seconds from a fixed origin on every tick instead of
// incrementing a counter. Freezing holds the display only; the origin never
// moves, so the first tick after a freeze shows the full wall-clock time.
type Timer struct {
	Origin  time.Time
	Elapsed int // displayed seconds
	Running bool

	freezeEnd time.Time
}

// NewTimer starts a timer at now.
func NewTimer(now time.Time) Timer {
	return Timer{Origin: now, Running: true}
}

// Tick recomputes the display from the origin. Ticks on a stopped or frozen
// timer leave it unchanged.
func (t Timer) Tick(now time.Time) Timer {
	if !t.Running || t.Frozen(now) {
		return t
	}
	if s := t.Seconds(now); s > t.Elapsed {
		t.Elapsed = s
	}
	return t
}

// Freeze suspends display updates for d. Overlapping freezes extend the
// current one.
func (t Timer) Freeze(now time.Time, d time.Duration) Timer {
	if !t.Running || d <= 0 {
		return t
	}
	if end := now.Add(d); end.After(t.freezeEnd) {
		t.freezeEnd = end
	}
	return t
}

// Frozen reports whether a freeze is in effect at now.
func (t Timer) Frozen(now time.Time) bool {
	return !t.freezeEnd.IsZero() && now.Before(t.freezeEnd)
}

// FrozenUntil returns the end of the current or last freeze.
func (t Timer) FrozenUntil() time.Time {
	return t.freezeEnd
}

// Stop halts the timer; later ticks are no-ops.
func (t Timer) Stop() Timer {
	t.Running = false
	return t
}

// Seconds returns wall-clock seconds since the origin at now.
func (t Timer) Seconds(now time.Time) int {
	if t.Origin.IsZero() || now.Before(t.Origin) {
		return 0
	}
	return int(now.Sub(t.Origin) / time.Second)
}

// Display renders the shown value as MM:SS.
func (t Timer) Display() string {
	return FormatSeconds(t.Elapsed)
}

// FormatSeconds renders seconds as MM:SS.
func FormatSeconds(s int) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
