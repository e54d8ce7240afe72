package debounce

import "time"

// Input debounces a text field. Every edit restarts the settle countdown.
// The last edited value is committed exactly once after the countdown
// expires. The caller drives time through Set and Poll, there is no internal
// timer.
type Input struct {
	settle   time.Duration
	pending  string
	deadline time.Time
	armed    bool
}

// New returns an input debouncer with the given settle interval.
func New(settle time.Duration) *Input {
	return &Input{settle: settle}
}

// Set records an edited value and restarts the settle countdown.
func (d *Input) Set(value string, now time.Time) {
	d.pending = value
	d.deadline = now.Add(d.settle)
	d.armed = true
}

// Poll returns the pending value once the settle interval has passed since
// the last edit.
func (d *Input) Poll(now time.Time) (string, bool) {
	if !d.armed || now.Before(d.deadline) {
		return "", false
	}
	d.armed = false
	return d.pending, true
}

// Pending indicates if an edit is waiting to settle.
func (d *Input) Pending() bool {
	return d.armed
}

// Cancel drops a pending edit without committing it.
func (d *Input) Cancel() {
	d.armed = false
}
