// Package testsmsc provides an in-process fake SMSC over net.Pipe, for
// exercising a session end to end without a real network or a live SMSC,
// per spec.md section 8's Testable Properties. Grounded on the
// interaction shapes implied by the teacher's own session_test.go
// (bind / submit / error-handling scenarios), reimplemented hermetically.
package testsmsc

import (
	"net"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

// Fake is a minimal, scriptable SMSC peer: it accepts one bind, responds
// ESME_ROK (or a caller-chosen status), and thereafter runs a caller-
// supplied handler for every subsequent PDU it receives.
type Fake struct {
	conn net.Conn

	// BindStatus is the status the fake returns in bind_resp. Defaults
	// to ESME_ROK if left zero.
	BindStatus data.CommandStatus

	// SystemID is the system_id the fake reports in bind_resp.
	SystemID string

	// Handle is invoked for every PDU after the bind, with the fake's
	// own conn for writing further PDUs. A nil Handle auto-acks whatever
	// it's allowed to (submit_sm -> submit_sm_resp with MessageID set to
	// a fixed id, enquire_link -> enquire_link_resp).
	Handle func(conn net.Conn, p pdu.PDU)
}

// NewPipe returns a connected (esmeSide, smscSide) pair over net.Pipe,
// with a *Fake already wrapping the SMSC side.
func NewPipe() (esmeSide net.Conn, smsc *Fake) {
	esme, smscConn := net.Pipe()
	return esme, &Fake{conn: smscConn, BindStatus: data.ESME_ROK, SystemID: "faketest"}
}

// Serve runs the fake's accept-bind-then-handle loop until the
// connection closes or a read fails. Intended to run in its own
// goroutine, alongside the test's session/ESME under test.
func (f *Fake) Serve() error {
	bindReq, err := pdu.Parse(f.conn)
	if err != nil {
		return err
	}

	resp, err := pdu.NewResponse(bindReq, f.statusOrDefault())
	if err != nil {
		return err
	}
	if br, ok := resp.(*pdu.BindResponse); ok {
		br.SystemID = f.SystemID
	}
	if _, err := f.conn.Write(pdu.Encode(resp)); err != nil {
		return err
	}

	for {
		p, err := pdu.Parse(f.conn)
		if err != nil {
			return err
		}
		if f.Handle != nil {
			f.Handle(f.conn, p)
			continue
		}
		f.defaultHandle(p)
	}
}

func (f *Fake) statusOrDefault() data.CommandStatus {
	if f.BindStatus == 0 {
		return data.ESME_ROK
	}
	return f.BindStatus
}

func (f *Fake) defaultHandle(p pdu.PDU) {
	switch req := p.(type) {
	case *pdu.SubmitSM:
		resp, err := pdu.NewResponse(req, data.ESME_ROK)
		if err != nil {
			return
		}
		if sr, ok := resp.(*pdu.SubmitSMResp); ok {
			sr.MessageID = "fake-message-id"
		}
		_, _ = f.conn.Write(pdu.Encode(resp))

	case *pdu.EnquireLink:
		resp, err := pdu.NewResponse(req, data.ESME_ROK)
		if err == nil {
			_, _ = f.conn.Write(pdu.Encode(resp))
		}

	case *pdu.Unbind:
		resp, err := pdu.NewResponse(req, data.ESME_ROK)
		if err == nil {
			_, _ = f.conn.Write(pdu.Encode(resp))
		}
	}
}

// Close closes the fake's side of the pipe.
func (f *Fake) Close() error { return f.conn.Close() }

// SendDeliverSM writes a deliver_sm PDU to the ESME side, for testing
// inbound message/delivery-receipt handling.
func (f *Fake) SendDeliverSM(p *pdu.DeliverSM) error {
	_, err := f.conn.Write(pdu.Encode(p))
	return err
}

// Send writes an arbitrary PDU to the ESME side, for scripting scenarios
// SendDeliverSM doesn't cover (e.g. an unsolicited or late response).
func (f *Fake) Send(p pdu.PDU) error {
	_, err := f.conn.Write(pdu.Encode(p))
	return err
}

// WriteRaw writes bytes verbatim to the ESME side, for exercising decode
// error handling (malformed/oversized/truncated frames) that no valid PDU
// could ever produce.
func (f *Fake) WriteRaw(b []byte) error {
	_, err := f.conn.Write(b)
	return err
}
