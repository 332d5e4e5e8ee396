package ui

import "time"

// Throttle collapses bursts to at most one execution per window. The first
// call in a window passes; later calls are dropped until the window elapses.
// Used for message submission and AI-response triggering.
type Throttle struct {
	window time.Duration
	last   time.Time
	now    func() time.Time
}

// NewThrottle creates a gate with the given window.
func NewThrottle(window time.Duration) *Throttle {
	return &Throttle{window: window, now: time.Now}
}

// Allow reports whether this call is inside a fresh window, opening one if
// so.
func (t *Throttle) Allow() bool {
	n := t.now()
	if !t.last.IsZero() && n.Sub(t.last) < t.window {
		return false
	}
	t.last = n
	return true
}

// Debouncer delays execution until input quiesces. Every Touch invalidates
// earlier pending ticks; a tick is live only if it carries the latest
// sequence number. Used for search-box filtering.
type Debouncer struct {
	seq int
}

// Touch registers fresh input and returns the sequence number the eventual
// tick must carry.
func (d *Debouncer) Touch() int {
	d.seq++
	return d.seq
}

// Live reports whether a tick with the given sequence number is still the
// latest, i.e. no input arrived since it was scheduled.
func (d *Debouncer) Live(seq int) bool {
	return seq == d.seq
}
