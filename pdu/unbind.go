package pdu

import "github.com/relaysms/gosmpp/data"

// Unbind is the unbind PDU: a request to cleanly end the session. It has no
// body. Grounded on original_source/aiosmpplib/protocol.py's Unbind.
type Unbind struct{ Base }

// NewUnbind builds an unbind request.
func NewUnbind() *Unbind { return &Unbind{Base: NewBase(data.UnbindID)} }

func (p *Unbind) Marshal(w *Writer)          {}
func (p *Unbind) Unmarshal(r *Reader) error { return nil }

// UnbindResp is the unbind_resp PDU, also bodyless.
type UnbindResp struct{ Base }

// NewUnbindResp builds an unbind_resp.
func NewUnbindResp() *UnbindResp { return &UnbindResp{Base: NewBase(data.UnbindRespID)} }

func (p *UnbindResp) Marshal(w *Writer)          {}
func (p *UnbindResp) Unmarshal(r *Reader) error { return nil }

func init() {
	register(data.UnbindID, func() PDU { return NewUnbind() })
	register(data.UnbindRespID, func() PDU { return NewUnbindResp() })
}
