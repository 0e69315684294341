package gosmpp

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/relaysms/gosmpp/broker"
	"github.com/relaysms/gosmpp/correlator"
	"github.com/relaysms/gosmpp/hook"
	"github.com/relaysms/gosmpp/pdu"
)

// clientSettings configures a bound client. Generalized from the
// teacher's clientSettings: WriteTimeout/ReadTimeout/EnquireLink/
// OnSubmitError/OnReceivingError/OnRebindingError/OnClosed carry over
// unchanged; Correlator/Broker/Hook/RequestTimeout/Throttle are new,
// wiring in spec.md section 4.3's request/response matching and section
// 4.4's queueing/observation/self-throttling.
type clientSettings struct {
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	EnquireLink  time.Duration
	MaxFrameSize int

	RequestTimeout time.Duration
	ThrottleInitial time.Duration
	ThrottleMax     time.Duration

	Correlator correlator.Correlator
	Broker     broker.Broker
	Hook       hook.Hook

	OnPDU            PDUCallback
	OnSubmitError    PDUErrorCallback
	OnReceivingError ErrorCallback
	OnRebindingError ErrorCallback
	OnClosed         ClosedCallback
}

type client struct {
	settings clientSettings
	conn     *Conn
	reader   *reader
	writer   *writer
	throttle *Throttle
	state    int32
	bound    State
}

// newClient creates a client from a bound connection, starting its
// reader/writer actors. bound is the State the bind handshake already
// negotiated (BOUND_TX/BOUND_RX/BOUND_TRX), per spec.md section 4.4.
func newClient(conn *Conn, settings clientSettings, bound State) *client {
	c := &client{
		settings: settings,
		conn:     conn,
		throttle: NewThrottle(settings.ThrottleInitial, settings.ThrottleMax),
		bound:    bound,
	}

	c.writer = newWriter(conn, writerSettings{
		timeout:     settings.WriteTimeout,
		enquireLink: settings.EnquireLink,
		throttle:    c.throttle,
		hook:        settings.Hook,

		onSubmitError: settings.OnSubmitError,
		onClosed: func(state State) {
			switch state {
			case StateClosed:
				return
			default:
				_ = c.reader.Close()
				if c.settings.OnClosed != nil {
					c.settings.OnClosed(state)
				}
			}
		},
	})

	c.reader = newReader(conn, readerSettings{
		timeout:      settings.ReadTimeout,
		maxFrameSize: settings.MaxFrameSize,
		correlator:   settings.Correlator,
		broker:     settings.Broker,
		hook:       settings.Hook,
		throttle:   c.throttle,

		onPDU:            settings.OnPDU,
		onReceivingError: settings.OnReceivingError,
		onClosed: func(state State) {
			switch state {
			case StateClosed:
				return
			default:
				_ = c.writer.Close()
				if c.settings.OnClosed != nil {
					c.settings.OnClosed(state)
				}
			}
		},
		response: func(p pdu.PDU) {
			if c.writer.submit(p) != nil {
				_, _ = c.writer.write(pdu.Encode(p))
			}
		},
	})

	c.writer.start()
	c.reader.start()
	return c
}

// SystemID returns the system_id reported by the SMSC's bind_resp.
func (c *client) SystemID() string { return c.conn.SystemID() }

// State returns the bound lifecycle state this client was constructed
// with (BOUND_TX/BOUND_RX/BOUND_TRX).
func (c *client) State() State { return c.bound }

// OrphanResponses returns the number of response PDUs the reader has
// matched against no Pending (already timed out, or a duplicate), per the
// "late response after RequestTimeout" open-question decision.
func (c *client) OrphanResponses() int64 { return atomic.LoadInt64(&c.reader.orphanResponses) }

// Close tears down the reader/writer actors and the underlying conn.
func (c *client) Close() (err error) {
	if atomic.CompareAndSwapInt32(&c.state, 0, 1) {
		_ = c.writer.close(closeStopProcessOnly)
		_ = c.reader.close(closeStopProcessOnly)
		err = c.conn.Close()
		if c.settings.OnClosed != nil {
			c.settings.OnClosed(StateClosed)
		}
	}
	return
}

// Submit writes p to the wire without correlation bookkeeping, for PDUs
// that don't await a response (responses themselves, or fire-and-forget
// requests managed by the caller).
func (c *client) Submit(p pdu.PDU) error {
	return c.writer.submit(p)
}

// Request writes p and waits for its matched response, per spec.md
// section 4.3: the caller is responsible for having already registered a
// Pending with the correlator under p's sequence number before calling
// Request (the ESME façade does this; Request exists at this layer purely
// to keep reader/writer orchestration out of the façade).
func (c *client) Request(ctx context.Context, waker chan correlator.Result) (pdu.PDU, error) {
	select {
	case res := <-waker:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Response, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
