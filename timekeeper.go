package gosmpp

import (
	"context"
	"errors"
	"time"

	"github.com/relaysms/gosmpp/correlator"
)

// ErrRequestTimeout is delivered to a Pending's Waker when its deadline
// passes with no matching response, per spec.md section 4.3/9.
var ErrRequestTimeout = errors.New("gosmpp: request timed out waiting for response")

// timekeeper periodically sweeps a Correlator for expired Pending
// requests and wakes their callers with ErrRequestTimeout. Grounded on
// original_source/aiosmpplib/esme.py's periodic-task shape (there an
// asyncio task polling for stale state; here a time.Ticker-driven
// goroutine), no direct teacher equivalent since the copied snapshot's
// client/reader/writer never implemented request/response correlation.
type timekeeper struct {
	corr     correlator.Correlator
	interval time.Duration
}

func newTimekeeper(corr correlator.Correlator, interval time.Duration) *timekeeper {
	if interval <= 0 {
		interval = time.Second
	}
	return &timekeeper{corr: corr, interval: interval}
}

// run sweeps until ctx is done.
func (k *timekeeper) run(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.sweep()
		}
	}
}

func (k *timekeeper) sweep() {
	if k.corr == nil {
		return
	}
	for _, p := range k.corr.Expire(time.Now()) {
		select {
		case p.Waker <- correlator.Result{Err: ErrRequestTimeout}:
		default:
		}
	}
}
