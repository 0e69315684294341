package gosmpp

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/relaysms/gosmpp/hook"
	"github.com/relaysms/gosmpp/pdu"
)

// EnquireLinkIntervalMinimum is the floor the teacher enforces on the
// enquire_link period, to avoid hammering the SMSC with keepalives.
const EnquireLinkIntervalMinimum = 20 * time.Second

// ErrSessionClosing indicates the session is closing and no longer
// accepts outbound PDUs.
var ErrSessionClosing = fmt.Errorf("gosmpp: session is closing, cannot send PDU")

// writerSettings configures the writer actor. Generalized from the
// teacher's writerSettings: onSubmitError/onClosed/enquireLink carry over
// unchanged; throttle is new, gating writes per spec.md section 4.4's
// throttle-handling rule.
type writerSettings struct {
	timeout time.Duration

	enquireLink time.Duration
	throttle    *Throttle
	hook        hook.Hook

	onSubmitError PDUErrorCallback
	onClosed      ClosedCallback
}

func (s *writerSettings) normalize() {
	if s.enquireLink > 0 && s.enquireLink < EnquireLinkIntervalMinimum {
		s.enquireLink = EnquireLinkIntervalMinimum
	}
}

type writer struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	settings writerSettings
	conn     *Conn
	input    chan pdu.PDU
	lock     sync.RWMutex
	state    int32
}

func newWriter(conn *Conn, settings writerSettings) *writer {
	settings.normalize()
	w := &writer{settings: settings, conn: conn, input: make(chan pdu.PDU, 1)}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w
}

func (t *writer) Close() error { return t.close(closeExplicit) }

func (t *writer) close(reason closeReason) (err error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.state != 0 {
		return
	}

	t.cancel()
	close(t.input)
	t.wg.Wait()

	_, _ = t.write(pdu.Encode(pdu.NewUnbind()))

	if reason != closeStopProcessOnly {
		err = t.conn.Close()
	}

	if t.settings.onClosed != nil {
		t.settings.onClosed(reasonToState(reason))
	}

	t.state = 1
	return
}

func (t *writer) closing(reason closeReason) {
	go func() { _ = t.close(reason) }()
}

// submit enqueues a PDU for the writer goroutine to send.
func (t *writer) submit(p pdu.PDU) (err error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if t.state != 0 {
		return ErrSessionClosing
	}

	select {
	case <-t.ctx.Done():
		return t.ctx.Err()
	case t.input <- p:
		return nil
	}
}

func (t *writer) start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if t.settings.enquireLink > 0 {
			t.loopWithEnquireLink()
		} else {
			t.loop()
		}
	}()
}

func (t *writer) loop() {
	for p := range t.input {
		if p != nil && t.send(p) {
			return
		}
	}
}

func (t *writer) loopWithEnquireLink() {
	ticker := time.NewTicker(t.settings.enquireLink)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if t.send(pdu.NewEnquireLink()) {
				return
			}
		case p, ok := <-t.input:
			if !ok {
				return
			}
			if p != nil && t.send(p) {
				return
			}
		}
	}
}

// send applies the throttle gate, instruments via hook, writes the PDU,
// and closes the actor set on unrecoverable errors.
func (t *writer) send(p pdu.PDU) (closing bool) {
	if t.settings.throttle != nil {
		if delay := t.settings.throttle.Delay(); delay > 0 {
			select {
			case <-time.After(delay):
			case <-t.ctx.Done():
				return true
			}
		}
	}

	if t.settings.hook != nil {
		t.settings.hook.Sending(t.ctx, p)
	}

	n, err := t.write(pdu.Encode(p))
	return t.check(p, n, err)
}

func (t *writer) check(p pdu.PDU, n int, err error) (closing bool) {
	if err == nil {
		return false
	}

	if t.settings.hook != nil {
		t.settings.hook.SendError(t.ctx, p, err)
	}
	if t.settings.onSubmitError != nil {
		t.settings.onSubmitError(p, err)
	}

	if n == 0 {
		if nErr, ok := err.(net.Error); ok {
			closing = nErr.Timeout() || !nErr.Temporary()
		} else {
			closing = true
		}
	} else {
		closing = true
	}

	if closing {
		t.closing(closeConnectionIssue)
	}
	return
}

func (t *writer) write(v []byte) (n int, err error) {
	hasTimeout := t.settings.timeout > 0
	if hasTimeout {
		err = t.conn.SetWriteTimeout(t.settings.timeout)
	}
	if err == nil {
		if n, err = t.conn.Write(v); err != nil && n == 0 && hasTimeout &&
			t.conn.SetWriteTimeout(t.settings.timeout<<1) == nil {
			n, err = t.conn.Write(v)
		}
	}
	return
}
