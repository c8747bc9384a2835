package kdf

import (
	"context"
	"time"
)

// tickInterval is how often the smoother re-estimates and emits
// progress between real step completions.
const tickInterval = 100 * time.Millisecond

// progressSmoother turns the coarse, bursty progress increments a
// multi-step KDF call produces (one jump per step, which can be
// seconds apart) into a steady stream of small increments a progress
// bar can animate smoothly. It communicates with the worker
// computing the digest purely over a channel: the worker posts real
// increments as they land, and a separate goroutine here
// extrapolates between them on a fixed tick, so neither side touches
// shared mutable state.
type progressSmoother struct {
	increments chan float64
}

func newProgressSmoother() *progressSmoother {
	return &progressSmoother{increments: make(chan float64, 16)}
}

// record posts a real progress increment (0-100 scale) from the
// worker. Safe to call only until the channel has been closed by the
// worker's completion.
func (s *progressSmoother) record(incr float64) {
	s.increments <- incr
}

// close signals that no further real increments will arrive.
func (s *progressSmoother) close() {
	close(s.increments)
}

// run drains increments and emits smoothed progress to emit until the
// channel is closed (emitting a final 100) or ctx is done. It must run
// in its own goroutine.
func (s *progressSmoother) run(ctx context.Context, emit func(float64)) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	start := time.Now()
	var total, maxIncr float64

	for {
		select {
		case <-ctx.Done():
			return
		case incr, ok := <-s.increments:
			if !ok {
				emit(100)
				return
			}
			total += incr
			if incr > maxIncr {
				maxIncr = incr
			}
		case <-ticker.C:
			// total_incr() in the reference smoother: sum of real
			// increments plus a fraction of the largest one seen, to
			// anticipate the next step landing.
			effective := total + maxIncr*0.55
			switch {
			case effective <= 0:
				emit(0.01)
			case effective >= 100:
				emit(100)
				return
			default:
				steps := time.Since(start).Seconds() / tickInterval.Seconds()
				if steps < 1 {
					steps = 1
				}
				emit(effective / steps)
			}
		}
	}
}
