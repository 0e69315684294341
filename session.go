package gosmpp

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/relaysms/gosmpp/data"
)

// session owns one logical SMPP connection: it dials, binds, and runs a
// client; on connection loss it reconnects with exponential backoff
// instead of the teacher's fixed rebindingInterval, per spec.md section
// 4.4's RECONNECTING state and section 9's backoff requirement.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc

	dialer      Dialer
	auth        Auth
	bindingType data.BindingType
	bindTimeout time.Duration

	originalOnClosed func(State)
	settings         clientSettings
	backoff          *Backoff

	c atomic.Value // *client

	state        int32
	reconnecting int32
}

// newSession dials, binds, and starts a client; if backoff is non-nil,
// the session reconnects automatically (with exponential backoff) on
// connection loss instead of terminating.
func newSession(ctx context.Context, b data.BindingType, dialer Dialer, bindTimeout time.Duration, auth Auth, settings clientSettings, backoff *Backoff) (*session, error) {
	sessCtx, cancel := context.WithCancel(ctx)

	conn, err := connect(sessCtx, dialer, bindTimeout, auth, b)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &session{
		ctx:              sessCtx,
		cancel:           cancel,
		dialer:           dialer,
		auth:             auth,
		bindingType:      b,
		bindTimeout:      bindTimeout,
		backoff:          backoff,
		originalOnClosed: settings.OnClosed,
	}

	if backoff != nil {
		newSettings := settings
		newSettings.OnClosed = func(state State) {
			if s.originalOnClosed != nil {
				s.originalOnClosed(state)
			}
			switch state {
			case StateClosed:
				return
			default:
				s.reconnect()
			}
		}
		s.settings = newSettings
	} else {
		s.settings = settings
	}

	s.c.Store(newClient(conn, s.settings, boundStateFor(b)))
	return s, nil
}

// Client returns the currently-bound client.
func (s *session) Client() *client {
	c, _ := s.c.Load().(*client)
	return c
}

// Close tears the session down permanently; no further reconnects occur.
func (s *session) Close() (err error) {
	if atomic.CompareAndSwapInt32(&s.state, 0, 1) {
		s.cancel()
		if c := s.Client(); c != nil {
			err = c.Close()
		}
	}
	return
}

func (s *session) reconnect() {
	if !atomic.CompareAndSwapInt32(&s.reconnecting, 0, 1) {
		return
	}
	go func() {
		defer atomic.StoreInt32(&s.reconnecting, 0)

		if c := s.Client(); c != nil {
			_ = c.Close()
		}

		for atomic.LoadInt32(&s.state) == 0 {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(s.backoff.Next()):
			}

			conn, err := connect(s.ctx, s.dialer, s.bindTimeout, s.auth, s.bindingType)
			if err != nil {
				if s.settings.OnRebindingError != nil {
					s.settings.OnRebindingError(err)
				}
				continue
			}

			s.backoff.Reset()
			s.c.Store(newClient(conn, s.settings, boundStateFor(s.bindingType)))
			return
		}
	}()
}
