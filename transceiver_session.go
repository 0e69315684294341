package gosmpp

import (
	"context"
	"time"

	"github.com/relaysms/gosmpp/data"
)

// TransceiverSession is a session bound as a transceiver (send and
// receive over the same bind). Generalized from the teacher's
// TransceiverSession wrapper, parameterized over data.BindingType and the
// new backoff-driven session instead of a fixed rebindingInterval.
type TransceiverSession struct{ *session }

// NewTransceiverSession connects, binds as transceiver, and reconnects
// (with backoff) on connection loss if backoff is non-nil.
func NewTransceiverSession(ctx context.Context, dialer Dialer, bindTimeout time.Duration, auth Auth, settings clientSettings, backoff *Backoff) (*TransceiverSession, error) {
	s, err := newSession(ctx, data.Transceiver, dialer, bindTimeout, auth, settings, backoff)
	if err != nil {
		return nil, err
	}
	return &TransceiverSession{s}, nil
}
