package monitor

import (
	"sync"
	"time"
)

// DefaultDebounce is the default coalescing window for file events.
const DefaultDebounce = 250 * time.Millisecond

// debouncer coalesces rapid triggers into one callback. Editors tend to
// write settings files with several events in quick succession; only the
// last scheduled callback runs once the window closes.
type debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
}

func newDebouncer(window time.Duration) *debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &debouncer{window: window}
}

// trigger schedules fn after the window, cancelling any pending schedule.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A timer can fire after Stop returned false; the sequence check
		// keeps superseded callbacks from running.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// cancel drops any pending callback.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
