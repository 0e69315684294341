package gosmpp

import (
	"sync"
	"time"
)

// Backoff is a truncated exponential backoff: each call to Next doubles
// the previous delay up to max, and Reset drops back to the initial
// delay. Grounded on
// original_source/aiosmpplib/retrytimer.py's SimpleExponentialBackoff.
type Backoff struct {
	mu      sync.Mutex
	initial time.Duration
	max     time.Duration
	next    time.Duration
}

// NewBackoff builds a Backoff starting at initial and capped at max. A
// non-positive initial becomes one second; a max below initial is raised to
// initial, so every delay is then initial.
func NewBackoff(initial, max time.Duration) *Backoff {
	if initial <= 0 {
		initial = time.Second
	}
	if max < initial {
		max = initial
	}
	return &Backoff{initial: initial, max: max}
}

// Next returns the delay to wait before the next retry, then doubles it
// (capped at max) for the following call.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.next == 0 {
		b.next = b.initial
	}
	d := b.next
	if b.next < b.max {
		b.next *= 2
		if b.next > b.max {
			b.next = b.max
		}
	}
	return d
}

// Reset returns the backoff to its initial delay.
func (b *Backoff) Reset() {
	b.mu.Lock()
	b.next = 0
	b.mu.Unlock()
}
