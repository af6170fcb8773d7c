package game

import "time"

// frameTap records the last N frame intervals into a ring buffer so the
// overlay can show a smoothed frame rate.
type frameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
	last      time.Time
}

func newFrameTap(ringSize int) *frameTap {
	return &frameTap{
		buffer: make([]time.Duration, ringSize),
	}
}

// mark records the interval since the previous mark. The first mark only
// starts the clock.
func (t *frameTap) mark(now time.Time) {
	if !t.last.IsZero() {
		t.buffer[t.nextIndex] = now.Sub(t.last)
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
		if t.filled < len(t.buffer) {
			t.filled++
		}
	}
	t.last = now
}

// snapshot returns up to the last n intervals, most recent last.
func (t *frameTap) snapshot(n int) []time.Duration {
	if n > t.filled {
		n = t.filled
	}
	out := make([]time.Duration, n)
	idx := t.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		out[i] = t.buffer[idx]
		idx--
	}
	return out
}

// average is the mean recorded interval, zero before two marks.
func (t *frameTap) average() time.Duration {
	samples := t.snapshot(t.filled)
	if len(samples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range samples {
		sum += d
	}
	return sum / time.Duration(len(samples))
}
