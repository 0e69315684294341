package gosmpp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/relaysms/gosmpp/broker"
	"github.com/relaysms/gosmpp/config"
	"github.com/relaysms/gosmpp/correlator"
	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/hook"
	"github.com/relaysms/gosmpp/pdu"
)

// ESME is the public façade spec.md section 4.5 describes: a single
// asynchronous client over one SMSC bind, composing a session, a
// correlator, a broker, and a hook. Grounded on
// original_source/aiosmpplib/esme.py's ESME class (connect/send/close),
// adapted to Go's explicit construction/Option pattern since the copied
// teacher snapshot never had an equivalent top-level type (it stopped at
// the three binding-type Session wrappers).
type ESME struct {
	cfg *config.Config

	dialer      Dialer
	bindingType data.BindingType

	corr correlator.Correlator
	brk  broker.Broker
	hk   hook.Hook
	log  *slog.Logger

	sess   *session
	cancel context.CancelFunc
}

// Option customizes an ESME before Connect.
type Option func(*ESME)

// WithDialer overrides the TCP dialer (e.g. for TLS).
func WithDialer(d Dialer) Option { return func(e *ESME) { e.dialer = d } }

// WithCorrelator overrides the reference in-memory Correlator.
func WithCorrelator(c correlator.Correlator) Option { return func(e *ESME) { e.corr = c } }

// WithBroker overrides the reference in-memory Broker.
func WithBroker(b broker.Broker) Option { return func(e *ESME) { e.brk = b } }

// WithHook overrides the reference logging Hook.
func WithHook(h hook.Hook) Option { return func(e *ESME) { e.hk = h } }

// WithLogger sets the slog.Logger used for the ESME's own diagnostics
// (read errors, rebind failures) and by the default logging Hook. The
// reader's diagnostics (orphan responses, dropped deliveries) do not use
// it; they go to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(e *ESME) { e.log = l } }

func bindingTypeFor(mode string) data.BindingType {
	switch mode {
	case "transmitter":
		return data.Transmitter
	case "receiver":
		return data.Receiver
	default:
		return data.Transceiver
	}
}

// New builds an unconnected ESME from cfg. Call Connect to dial and bind.
func New(cfg *config.Config, opts ...Option) *ESME {
	e := &ESME{
		cfg:         cfg,
		dialer:      NonTLSDialer,
		bindingType: bindingTypeFor(cfg.BindMode),
		corr:        correlator.NewMemory(cfg.MaxInFlight),
		brk:         broker.NewMemory(cfg.MaxInFlight),
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hk == nil {
		e.hk = hook.NewLogging(e.log)
	}
	return e
}

// Connect dials and binds the SMSC, and starts the session's reconnect
// loop (backoff-driven, per spec.md section 4.4) and its timekeeper.
func (e *ESME) Connect(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	auth := Auth{
		SMSC:         fmt.Sprintf("%s:%d", e.cfg.SMSCHost, e.cfg.SMSCPort),
		SystemID:     e.cfg.SystemID,
		Password:     e.cfg.Password,
		SystemType:   e.cfg.SystemType,
		AddrTon:      data.TON(e.cfg.AddrTon),
		AddrNpi:      data.NPI(e.cfg.AddrNpi),
		AddressRange: e.cfg.AddressRange,
	}

	settings := clientSettings{
		ReadTimeout:     2 * time.Second,
		MaxFrameSize:    e.cfg.MaxPDUSize,
		EnquireLink:     e.cfg.EnquireLinkInterval,
		RequestTimeout:  e.cfg.RequestTimeout,
		ThrottleInitial: e.cfg.ThrottleInitial,
		ThrottleMax:     e.cfg.ThrottleMax,
		Correlator:      e.corr,
		Broker:          e.brk,
		Hook:            e.hk,
		OnReceivingError: func(err error) {
			e.log.Warn("read error", "error", err)
		},
		OnRebindingError: func(err error) {
			e.log.Warn("rebind failed", "error", err)
		},
	}

	backoff := NewBackoff(e.cfg.ReconnectInitial, e.cfg.ReconnectMax)
	sess, err := newSession(ctx, e.bindingType, e.dialer, e.cfg.BindTimeout, auth, settings, backoff)
	if err != nil {
		cancel()
		return err
	}
	e.sess = sess

	tk := newTimekeeper(e.corr, time.Second)
	go tk.run(ctx)

	return nil
}

// Broker exposes the inbound-message queue, for consuming deliver_sm
// PDUs (messages and delivery receipts) outside the reader goroutine.
func (e *ESME) Broker() broker.Broker { return e.brk }

// OrphanResponses returns the count of response PDUs received with no
// matching Pending request, across the current bind.
func (e *ESME) OrphanResponses() int64 {
	c := e.clientOrErr()
	if c == nil {
		return 0
	}
	return c.OrphanResponses()
}

// Close tears the ESME down: no further reconnects, conn closed, no more
// PDUs accepted.
func (e *ESME) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	if e.sess != nil {
		return e.sess.Close()
	}
	return nil
}

// ErrMissingLogID is returned by Submit when p expects a response (and so
// is tracked by the correlator) but no non-empty logID was given, per
// spec.md section 3's Trackable message ("a required non-empty log_id").
var ErrMissingLogID = fmt.Errorf("gosmpp: log_id is required for a trackable request")

// ErrNotBoundForSubmit is returned by Submit when p is an outbound
// submit_sm/data_sm but the current bind is BOUND_RX, per spec.md section
// 3's "submit_sm allowed only in BOUND_TX/BOUND_TRX" invariant.
var ErrNotBoundForSubmit = fmt.Errorf("gosmpp: submit_sm/data_sm requires a BOUND_TX or BOUND_TRX session")

func requiresBoundForSubmit(p pdu.PDU) bool {
	switch p.(type) {
	case *pdu.SubmitSM, *pdu.DataSM:
		return true
	default:
		return false
	}
}

// Submit sends a request PDU and waits for its matched response, per
// spec.md section 4.3. p's sequence_number is assigned here, overwriting
// whatever the caller set. logID tags the outstanding request (and, for
// submit_sm, the delivery record created on a successful response) so a
// later timeout, response, or delivery receipt can all be traced back to
// it; extraData rides along unchanged. Responses (and PDUs with no
// response, e.g. generic_nack) are sent fire-and-forget via the
// underlying client and ignore logID/extraData entirely.
func (e *ESME) Submit(ctx context.Context, p pdu.PDU, logID string, extraData string) (pdu.PDU, error) {
	c := e.clientOrErr()
	if c == nil {
		return nil, ErrSessionClosing
	}
	if requiresBoundForSubmit(p) && !c.State().canSubmit() {
		return nil, ErrNotBoundForSubmit
	}

	header := p.GetHeader()
	respID := p.CommandID().ResponseID()
	if header.ID.IsResponse() || respID == 0 {
		return nil, c.Submit(p)
	}
	if logID == "" {
		return nil, ErrMissingLogID
	}

	seq := e.corr.NextSequence()
	header.Sequence = seq
	p.SetHeader(header)

	waker := make(chan correlator.Result, 1)
	deadline := time.Time{}
	if e.cfg.RequestTimeout > 0 {
		deadline = time.Now().Add(e.cfg.RequestTimeout)
	}

	if err := e.corr.Put(ctx, correlator.Pending{
		Sequence:  seq,
		CommandID: p.CommandID(),
		LogID:     logID,
		ExtraData: extraData,
		Deadline:  deadline,
		Waker:     waker,
	}); err != nil {
		return nil, err
	}

	if err := c.Submit(p); err != nil {
		e.corr.Get(seq) // release the window slot; no response is coming
		return nil, err
	}

	return c.Request(ctx, waker)
}

func (e *ESME) clientOrErr() *client {
	if e.sess == nil {
		return nil
	}
	return e.sess.Client()
}
