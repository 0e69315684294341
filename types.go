// Package gosmpp implements an asynchronous SMPP 3.4 ESME client: a
// reader/writer/timekeeper actor set around one TCP connection, with
// pluggable correlation, queuing, and observation capabilities. Grounded
// on the goten4-gosmpp teacher's client/reader/writer actor split, itself
// the session layer of the published github.com/linxGnu/gosmpp library.
package gosmpp

import "github.com/relaysms/gosmpp/pdu"

// PDUCallback handles an inbound PDU that the reader has already
// responded to automatically, if a response was due. `responded`
// indicates whether that automatic response was sent.
type PDUCallback func(p pdu.PDU, responded bool)

// PDUErrorCallback notifies a failure to submit a PDU.
type PDUErrorCallback func(p pdu.PDU, err error)

// ErrorCallback notifies a non-fatal background error (a read error, a
// rebind failure).
type ErrorCallback func(err error)

// ClosedCallback notifies that a session transitioned into a new State.
type ClosedCallback func(state State)
