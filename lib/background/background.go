// Package background runs periodic work alongside a long blocking call.
package background

import "time"

// Repeat calls do every interval until cancel is called. cancel may be called more than
// once from the same goroutine.
func Repeat(do func(), interval time.Duration) (cancel func()) {
	t := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer t.Stop()
		for {
			select {
			case <-t.C:
				do()
			case <-done:
				return
			}
		}
	}()

	stopped := false
	return func() {
		if !stopped {
			stopped = true
			close(done)
		}
	}
}
