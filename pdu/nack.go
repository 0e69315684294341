package pdu

import "github.com/relaysms/gosmpp/data"

// GenericNack is sent when a frame cannot be processed: a malformed PDU, an
// unrecognized command id, or any other error the protocol has no specific
// response for. Grounded on spec.md section 4.1's decode contract
// ("unknown command_id with status 0 ... the session replies with
// generic_nack(status=ESME_RINVCMDID)") and original_source's GenericNack.
type GenericNack struct{ Base }

// NewGenericNack builds a generic_nack with the given status.
func NewGenericNack(status data.CommandStatus) *GenericNack {
	n := &GenericNack{Base: NewBase(data.GenericNackID)}
	n.Header.Status = status
	return n
}

func (p *GenericNack) Marshal(w *Writer)          {}
func (p *GenericNack) Unmarshal(r *Reader) error { return nil }

func init() {
	register(data.GenericNackID, func() PDU { return &GenericNack{Base: NewBase(data.GenericNackID)} })
}
