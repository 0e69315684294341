package gosmpp

import (
	"context"
	"time"

	"github.com/relaysms/gosmpp/data"
)

// TransmitterSession is a session bound as a transmitter (submit only).
type TransmitterSession struct{ *session }

// NewTransmitterSession connects, binds as transmitter, and reconnects
// (with backoff) on connection loss if backoff is non-nil.
func NewTransmitterSession(ctx context.Context, dialer Dialer, bindTimeout time.Duration, auth Auth, settings clientSettings, backoff *Backoff) (*TransmitterSession, error) {
	s, err := newSession(ctx, data.Transmitter, dialer, bindTimeout, auth, settings, backoff)
	if err != nil {
		return nil, err
	}
	return &TransmitterSession{s}, nil
}
