package daemon

import (
	"context"
	"time"
)

// debouncer coalesces bursts of trigger events into a single callback,
// fired once the stream has been quiet for the configured delay.
// Display reconfiguration tends to arrive as several RandR events in
// quick succession.
type debouncer struct {
	delay  time.Duration
	events chan struct{}
	fn     func()
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{
		delay:  delay,
		events: make(chan struct{}, 1),
		fn:     fn,
	}
}

// Trigger records an event. Safe to call from any goroutine; never blocks.
func (d *debouncer) Trigger() {
	select {
	case d.events <- struct{}{}:
	default:
	}
}

// Run processes events until the context is cancelled.
func (d *debouncer) Run(ctx context.Context) {
	timer := time.NewTimer(d.delay)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-d.events:
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(d.delay)
			armed = true
		case <-timer.C:
			armed = false
			d.fn()
		}
	}
}
