package gosmpp

import "github.com/relaysms/gosmpp/data"

// State is a session's position in the connection/bind lifecycle, per
// spec.md section 4.4's nine-state machine — an expansion of the
// teacher's narrower four-value close-reason enum (kept below as
// closeReason for the reader/writer shutdown plumbing that the teacher's
// State served, since that concern is distinct from lifecycle state).
type State int

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
	StateBinding
	StateBoundTX
	StateBoundRX
	StateBoundTRX
	StateUnbinding
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateBinding:
		return "binding"
	case StateBoundTX:
		return "bound_tx"
	case StateBoundRX:
		return "bound_rx"
	case StateBoundTRX:
		return "bound_trx"
	case StateUnbinding:
		return "unbinding"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// IsBound reports whether the state is one of the three bound states, in
// which submit_sm/data_sm may be sent per the binding type.
func (s State) IsBound() bool {
	return s == StateBoundTX || s == StateBoundRX || s == StateBoundTRX
}

// boundStateFor maps the binding type negotiated at connect time to the
// bound State a successfully-built client sits in, per spec.md section
// 4.4's BINDING->BOUND_TX/BOUND_RX/BOUND_TRX transition.
func boundStateFor(b data.BindingType) State {
	switch b {
	case data.Receiver:
		return StateBoundRX
	case data.Transceiver:
		return StateBoundTRX
	default:
		return StateBoundTX
	}
}

// canSubmit reports whether s permits an outbound submit_sm/data_sm, per
// spec.md section 3's "submit_sm allowed only in BOUND_TX/BOUND_TRX"
// invariant. A receiver-only bind may not submit.
func (s State) canSubmit() bool {
	return s == StateBoundTX || s == StateBoundTRX
}

// closeReason distinguishes why the reader/writer actors are shutting
// down their shared connection, grounded on the teacher's State enum
// (ExplicitClosing/InvalidStreaming/UnbindClosing/ConnectionIssue),
// renamed to avoid colliding with the lifecycle State above.
type closeReason int

const (
	// closeExplicit is a caller-initiated Close.
	closeExplicit closeReason = iota
	// closeInvalidStream is a malformed-frame or read error.
	closeInvalidStream
	// closeUnbind is a peer-initiated unbind.
	closeUnbind
	// closeConnectionIssue is a write failure or timeout.
	closeConnectionIssue
	// closeStopProcessOnly tears down actors without closing conn (the
	// conn is already closed or owned by the caller).
	closeStopProcessOnly
)
