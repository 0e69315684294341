package gosmpp

import (
	"context"
	"time"

	"github.com/relaysms/gosmpp/data"
)

// ReceiverSession is a session bound as a receiver (delivery only).
type ReceiverSession struct{ *session }

// NewReceiverSession connects, binds as receiver, and reconnects (with
// backoff) on connection loss if backoff is non-nil.
func NewReceiverSession(ctx context.Context, dialer Dialer, bindTimeout time.Duration, auth Auth, settings clientSettings, backoff *Backoff) (*ReceiverSession, error) {
	s, err := newSession(ctx, data.Receiver, dialer, bindTimeout, auth, settings, backoff)
	if err != nil {
		return nil, err
	}
	return &ReceiverSession{s}, nil
}
