package gosmpp

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/relaysms/gosmpp/broker"
	"github.com/relaysms/gosmpp/correlator"
	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/hook"
	"github.com/relaysms/gosmpp/internal/logging"
	"github.com/relaysms/gosmpp/pdu"
)

const defaultReadTimeout = 2 * time.Second

// readerSettings configures the reader actor. Generalized from the
// teacher's readerSettings: onPDU/onReceivingError/onClosed/response
// carry over unchanged in shape; correlator/broker/hook are new, replacing
// the teacher's bare response-writing callback with spec.md section 4.3's
// request/response matching and section 4.4's delivery-queueing.
type readerSettings struct {
	timeout time.Duration

	// maxFrameSize caps command_length on decode, from config.Config's
	// max_pdu_size (spec.md section 6). 0 falls back to pdu.MaxFrameSize.
	maxFrameSize int

	correlator correlator.Correlator
	broker     broker.Broker
	hook       hook.Hook
	throttle   *Throttle
	logger     *slog.Logger

	onPDU            PDUCallback
	onReceivingError ErrorCallback
	onClosed         ClosedCallback

	// response writes an outbound PDU (typically an auto-response),
	// falling back to a direct conn write if the writer itself has
	// already stopped accepting submissions.
	response func(pdu.PDU)
}

func (s *readerSettings) normalize() {
	if s.timeout <= 0 {
		s.timeout = defaultReadTimeout
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
}

type reader struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	settings readerSettings
	conn     *Conn
	state    int32

	orphanResponses int64
}

func newReader(conn *Conn, settings readerSettings) *reader {
	settings.normalize()
	r := &reader{settings: settings, conn: conn}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	return r
}

func (t *reader) SystemID() string { return t.conn.SystemID() }

func (t *reader) Close() error { return t.close(closeExplicit) }

func (t *reader) close(reason closeReason) (err error) {
	if atomic.CompareAndSwapInt32(&t.state, 0, 1) {
		t.cancel()
		_ = t.conn.SetReadTimeout(200 * time.Millisecond)
		t.wg.Wait()

		if reason != closeStopProcessOnly {
			err = t.conn.Close()
		}

		if t.settings.onClosed != nil {
			t.settings.onClosed(reasonToState(reason))
		}
	}
	return
}

func (t *reader) closing(reason closeReason) {
	go func() { _ = t.close(reason) }()
}

func (t *reader) start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.loop()
	}()
}

func (t *reader) loop() {
	for {
		select {
		case <-t.ctx.Done():
			return
		default:
		}

		var p pdu.PDU
		err := t.conn.SetReadTimeout(t.settings.timeout)
		if err == nil {
			p, err = pdu.ParseWithLimit(t.conn, t.settings.maxFrameSize)
		}

		if err != nil {
			var decodeErr *pdu.DecodeError
			if errors.As(err, &decodeErr) {
				t.nackDecodeError(decodeErr)
				continue
			}
			if t.settings.onReceivingError != nil {
				t.settings.onReceivingError(err)
			}
			t.closing(closeInvalidStream)
			return
		}

		if t.handleOrClose(p) {
			return
		}
	}
}

// nackDecodeError replies generic_nack for a frame the codec could not
// decode (command_length too short/long, unknown command_id, malformed
// body), per spec.md section 4.1/4.4/7: a single bad frame never tears
// down the session. The offending frame's own sequence_number is echoed
// back when one was read.
func (t *reader) nackDecodeError(decodeErr *pdu.DecodeError) {
	status := data.ESME_RINVCMDID
	if errors.Is(decodeErr.Err, pdu.ErrMalformed) || errors.Is(decodeErr.Err, pdu.ErrFrameTooLarge) {
		status = data.ESME_RINVCMDLEN
	}

	nack := pdu.NewGenericNack(status)
	nack.Header.Sequence = decodeErr.Header.Sequence
	t.settings.logger.Debug("decode error, replying generic_nack", "error", decodeErr.Err, "sequence_number", decodeErr.Header.Sequence)
	if t.settings.response != nil {
		t.settings.response(nack)
	}
}

func (t *reader) handleOrClose(p pdu.PDU) (closing bool) {
	if p == nil {
		return false
	}

	header := p.GetHeader()

	switch pp := p.(type) {
	case *pdu.EnquireLink:
		t.hookReceived(t.ctx, pp)
		t.respond(pp, data.ESME_ROK)
		return false

	case *pdu.Unbind:
		t.hookReceived(t.ctx, pp)
		t.respond(pp, data.ESME_ROK)
		time.Sleep(50 * time.Millisecond)
		t.closing(closeUnbind)
		return true

	case *pdu.DeliverSM:
		t.logConcatSegment(pp)
		logID := t.correlateReceipt(pp)
		ctx := t.ctx
		if logID != "" {
			ctx = logging.ContextWithLogID(ctx, logID)
		}
		t.hookReceived(ctx, pp)
		t.respond(pp, data.ESME_ROK)
		t.enqueue(pp, logID)
		if t.settings.onPDU != nil {
			t.settings.onPDU(pp, true)
		}
		return false

	default:
		t.hookReceived(t.ctx, p)
		if header.ID.IsResponse() {
			t.matchResponse(p)
			return false
		}

		responded := t.autoRespond(p)
		if t.settings.onPDU != nil {
			t.settings.onPDU(p, responded)
		}
		return false
	}
}

func (t *reader) hookReceived(ctx context.Context, p pdu.PDU) {
	if t.settings.hook != nil {
		t.settings.hook.Received(ctx, p)
	}
}

// correlateReceipt looks up the delivery record for an inbound deliver_sm
// carrying a delivery receipt, returning the log_id the originating
// submit_sm was tagged with (empty if this isn't a receipt, or no record
// is found - already delivered, never submitted through this correlator,
// or evicted), per spec.md section 4.3's persistent submit<->receipt
// matching.
func (t *reader) correlateReceipt(p *pdu.DeliverSM) string {
	if t.settings.correlator == nil || !p.IsReceipt() {
		return ""
	}
	smscID, _ := p.ReceiptMessageID()
	if smscID == "" {
		return ""
	}
	rec, ok, err := t.settings.correlator.GetDelivery(t.ctx, smscID)
	if err != nil {
		t.settings.logger.Warn("delivery record lookup failed", "smsc_message_id", smscID, "error", err)
		return ""
	}
	if !ok {
		t.settings.logger.Debug("receipt with no matching delivery record", "smsc_message_id", smscID)
		return ""
	}
	return rec.LogID
}

// logConcatSegment notes a deliver_sm's concatenated-message UDH, if one is
// present, for operators piecing segments back together downstream.
// Reassembly itself is out of scope (spec.md's Non-goals).
func (t *reader) logConcatSegment(p *pdu.DeliverSM) {
	if p.ESMClass&pdu.ESMClassUDHI == 0 {
		return
	}
	udh, _, err := p.UDH()
	if err != nil {
		t.settings.logger.Debug("deliver_sm udh parse failed", "error", err)
		return
	}
	if udh.Concat != nil {
		t.settings.logger.Debug("deliver_sm segment", "reference", udh.Concat.Reference, "segment", udh.Concat.SegmentNumber, "total", udh.Concat.TotalSegments)
	}
}

// enqueue hands an inbound deliver_sm (message or delivery receipt) to the
// broker for application-side processing, per spec.md section 4.4. A full
// broker (Enqueue blocking past its own deadline) is logged and dropped
// rather than stalling the reader loop.
func (t *reader) enqueue(p *pdu.DeliverSM, logID string) {
	if t.settings.broker == nil {
		return
	}
	ctx, cancel := context.WithTimeout(t.ctx, 5*time.Second)
	defer cancel()
	msg := broker.Message{PDU: p, ReceivedAt: time.Now(), LogID: logID}
	if err := t.settings.broker.Enqueue(ctx, msg); err != nil {
		t.settings.logger.Warn("dropping deliver_sm, broker enqueue failed", "error", err)
	}
}

// respond builds the empty response paired with req (via pdu.NewResponse)
// with the given status and hands it to the writer, reporting whether a
// response was sent. Commands with no response PDU get none.
func (t *reader) respond(req pdu.PDU, status data.CommandStatus) bool {
	resp, err := pdu.NewResponse(req, status)
	if err != nil || t.settings.response == nil {
		return false
	}
	t.settings.response(resp)
	return true
}

// autoRespond sends the generic OK response for request PDUs the ESME
// itself only receives, never sends (data_sm, and any
// unrecognized-but-decodable request reaching a receiver/transceiver
// session). Commands with no response PDU (alert_notification, outbind) get
// none, and autoRespond reports false for them. submit_sm is an
// ESME-originated request, never received here.
func (t *reader) autoRespond(p pdu.PDU) bool {
	switch p.(type) {
	case *pdu.SubmitSM:
		return false
	default:
		return t.respond(p, data.ESME_ROK)
	}
}

// matchResponse delivers a response PDU to its Pending, via the
// correlator's sequence-number index, per spec.md section 4.3. A response
// with no matching Pending (already timed out, or a duplicate) is logged
// and dropped.
func (t *reader) matchResponse(p pdu.PDU) {
	header := p.GetHeader()
	if t.settings.throttle != nil {
		if header.Status.IsThrottled() {
			t.settings.throttle.Throttled()
		} else {
			t.settings.throttle.NotThrottled()
		}
	}

	seq := header.Sequence
	if t.settings.correlator == nil {
		return
	}
	pending, ok := t.settings.correlator.Get(seq)
	if !ok {
		n := atomic.AddInt64(&t.orphanResponses, 1)
		t.settings.logger.Debug("orphan response", "sequence_number", seq, "command_id", p.CommandID().String(), "orphan_responses", n)
		return
	}

	t.trackDelivery(pending, p, header)

	select {
	case pending.Waker <- correlator.Result{Response: p}:
	default:
	}
}

// trackDelivery stores a DeliveryRecord for a successful submit_sm_resp,
// so a later delivery receipt (deliver_sm) can be matched back to the
// log_id its submit_sm was tagged with, per spec.md section 4.3/4.4's
// "on submit_sm_resp(OK) create a DeliveryRecord" rule.
func (t *reader) trackDelivery(pending correlator.Pending, resp pdu.PDU, header pdu.Header) {
	sr, ok := resp.(*pdu.SubmitSMResp)
	if !ok || header.Status != data.ESME_ROK || sr.MessageID == "" || pending.LogID == "" {
		return
	}
	rec := correlator.DeliveryRecord{
		SMSCMessageID: sr.MessageID,
		LogID:         pending.LogID,
		ExtraData:     pending.ExtraData,
		SubmittedAt:   time.Now(),
	}
	if err := t.settings.correlator.PutDelivery(t.ctx, rec); err != nil {
		t.settings.logger.Warn("storing delivery record failed", "smsc_message_id", sr.MessageID, "error", err)
	}
}

func reasonToState(reason closeReason) State {
	switch reason {
	case closeUnbind:
		return StateUnbinding
	case closeConnectionIssue, closeInvalidStream:
		return StateReconnecting
	default:
		return StateClosed
	}
}
