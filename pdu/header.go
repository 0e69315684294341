// Package pdu implements bit-exact encoding and decoding of SMPP 3.4
// protocol data units: the 16-byte header shared by every command, the
// tag-length-value optional parameter tail, user-data-header parsing, and
// one Marshal/Unmarshal pair per modeled command.
package pdu

import "github.com/relaysms/gosmpp/data"

// HeaderLength is the fixed size, in bytes, of every PDU header.
const HeaderLength = 16

// Header is the 16-byte prologue shared by every SMPP PDU: command_length
// (computed, never stored explicitly on the Go value), command_id,
// command_status, and sequence_number.
type Header struct {
	ID       data.CommandID
	Status   data.CommandStatus
	Sequence uint32
}

// Base is embedded by every command struct to satisfy the header-related
// methods of the PDU interface without repeating them per command: every
// command file does `type SubmitSM struct { Base; ... }`. Go has no
// "inherit these three methods" shorthand, so this struct-embedding is the
// idiomatic substitute for the tagged-variant-with-shared-header advice in
// spec.md section 9.
type Base struct {
	Header Header
}

// CommandID returns the command id carried in the header.
func (b *Base) CommandID() data.CommandID { return b.Header.ID }

// GetHeader returns a copy of the embedded header.
func (b *Base) GetHeader() Header { return b.Header }

// SetHeader overwrites the embedded header, used by Parse after decoding
// the 16-byte prologue and by callers before Encode to set a fresh
// sequence_number.
func (b *Base) SetHeader(h Header) { b.Header = h }

// NewBase constructs a Base carrying a given command id with ESME_ROK
// status and sequence 0 (the caller fills in Sequence before sending).
func NewBase(id data.CommandID) Base {
	return Base{Header: Header{ID: id}}
}
