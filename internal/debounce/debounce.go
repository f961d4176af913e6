// internal/debounce/debounce.go
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays a call until no new call has arrived for the configured
// quiet period. Only the last value of a burst is delivered.
type Debouncer[T any] struct {
	clock Clock
	delay time.Duration
	fire  func(T)

	mu         sync.Mutex
	timer      Timer
	generation uint64
}

func New[T any](clock Clock, delay time.Duration, fire func(T)) *Debouncer[T] {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer[T]{clock: clock, delay: delay, fire: fire}
}

// Call schedules value, replacing any value still waiting.
func (d *Debouncer[T]) Call(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that lost the race with Stop or a newer Call must not fire.
		if gen != d.generation {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fire(value)
	})
}

// Stop drops the pending value, if any. It reports whether one was dropped.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
