package services

import (
	"sync"
	"time"
)

// Debouncer delays an action until no newer action has been scheduled for a
// full window. Every schedule is identified by a token; only the holder of the
// current token may claim the action when its timer fires.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	token  uint64
	armed  bool
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Window returns the debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Schedule arms fire to run once the window elapses and returns its token.
// An earlier schedule that has not fired yet is superseded.
func (d *Debouncer) Schedule(fire func(token uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.token++
	token := d.token
	d.armed = true
	d.timer = time.AfterFunc(d.window, func() { fire(token) })
	return token
}

// Claim reports whether token is still the current schedule and disarms it.
// A fired timer whose token was superseded or cancelled must do nothing.
func (d *Debouncer) Claim(token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.armed || token != d.token {
		return false
	}
	d.armed = false
	d.timer = nil
	return true
}

// Cancel drops the pending schedule, if any, and reports whether one existed.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	was := d.armed
	d.armed = false
	d.token++
	return was
}

// Pending reports whether a schedule is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}
