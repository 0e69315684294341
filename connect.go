package gosmpp

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

// Dialer opens the TCP connection to the SMSC.
type Dialer func(ctx context.Context, addr string) (net.Conn, error)

// NonTLSDialer is the default, unencrypted Dialer.
var NonTLSDialer Dialer = func(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// ErrBindTimeout is returned when bindTimeout elapses before the SMSC
// sends bind_resp.
var ErrBindTimeout = fmt.Errorf("gosmpp: timed out waiting for bind response")

// BindRejectedError reports a non-ESME_ROK bind_resp status, so callers
// can distinguish bad credentials from a transport failure via errors.As.
type BindRejectedError struct {
	Status data.CommandStatus
}

func (e *BindRejectedError) Error() string {
	return fmt.Sprintf("gosmpp: bind rejected: %s", e.Status)
}

// Auth carries bind credentials, per spec.md section 2's AuthCredentials.
type Auth struct {
	SMSC       string
	SystemID   string
	Password   string
	SystemType string

	AddrTon data.TON
	AddrNpi data.NPI

	AddressRange string
}

func newBindRequest(a Auth, b data.BindingType) *pdu.BindRequest {
	req := pdu.NewBindRequest(b)
	req.SystemID = a.SystemID
	req.Password = a.Password
	req.SystemType = a.SystemType
	req.AddrTon = a.AddrTon
	req.AddrNpi = a.AddrNpi
	req.AddressRange = a.AddressRange
	return req
}

// connect dials addr, writes a bind request, and waits for bind_resp,
// returning a *Conn tagged with the SMSC's reported system_id. Grounded on
// spec.md section 4.4's CONNECTING -> OPEN -> BINDING -> bound transition
// and the teacher's ConnectAsTransceiver/connectAs call shape, whose
// connect() body was not present in the copied snapshot.
func connect(ctx context.Context, dialer Dialer, bindTimeout time.Duration, a Auth, b data.BindingType) (*Conn, error) {
	if dialer == nil {
		dialer = NonTLSDialer
	}

	rawConn, err := dialer(ctx, a.SMSC)
	if err != nil {
		return nil, fmt.Errorf("gosmpp: dial %s: %w", a.SMSC, err)
	}

	bindCtx := ctx
	var cancel context.CancelFunc
	if bindTimeout > 0 {
		bindCtx, cancel = context.WithTimeout(ctx, bindTimeout)
		defer cancel()
	}
	if deadline, ok := bindCtx.Deadline(); ok {
		_ = rawConn.SetDeadline(deadline)
	}

	req := newBindRequest(a, b)
	req.Header.Sequence = 1 // reserved for the bind request, per spec.md section 3

	if _, err := rawConn.Write(pdu.Encode(req)); err != nil {
		_ = rawConn.Close()
		return nil, fmt.Errorf("gosmpp: write bind request: %w", err)
	}

	resp, err := pdu.Parse(rawConn)
	if err != nil {
		_ = rawConn.Close()
		if nErr, ok := err.(net.Error); ok && nErr.Timeout() {
			return nil, ErrBindTimeout
		}
		return nil, fmt.Errorf("gosmpp: parse bind response: %w", err)
	}

	bound, ok := resp.(*pdu.BindResponse)
	if !ok {
		_ = rawConn.Close()
		return nil, fmt.Errorf("gosmpp: unexpected bind response command id %s", resp.CommandID())
	}
	if status := bound.GetHeader().Status; status != data.ESME_ROK {
		_ = rawConn.Close()
		return nil, &BindRejectedError{Status: status}
	}

	_ = rawConn.SetDeadline(time.Time{})
	return NewConn(rawConn, bound.SystemID), nil
}

// ConnectAsReceiver connects and binds as a Receiver.
func ConnectAsReceiver(ctx context.Context, dialer Dialer, bindTimeout time.Duration, a Auth) (*Conn, error) {
	return connect(ctx, dialer, bindTimeout, a, data.Receiver)
}

// ConnectAsTransmitter connects and binds as a Transmitter.
func ConnectAsTransmitter(ctx context.Context, dialer Dialer, bindTimeout time.Duration, a Auth) (*Conn, error) {
	return connect(ctx, dialer, bindTimeout, a, data.Transmitter)
}

// ConnectAsTransceiver connects and binds as a Transceiver.
func ConnectAsTransceiver(ctx context.Context, dialer Dialer, bindTimeout time.Duration, a Auth) (*Conn, error) {
	return connect(ctx, dialer, bindTimeout, a, data.Transceiver)
}
