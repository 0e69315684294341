package pdu

import "github.com/relaysms/gosmpp/data"

// EnquireLink is the enquire_link keepalive PDU; bodyless. Grounded on
// original_source/aiosmpplib/protocol.py's EnquireLink and spec.md section
// 4.4's keepalive description.
type EnquireLink struct{ Base }

// NewEnquireLink builds an enquire_link request.
func NewEnquireLink() *EnquireLink { return &EnquireLink{Base: NewBase(data.EnquireLinkID)} }

func (p *EnquireLink) Marshal(w *Writer)          {}
func (p *EnquireLink) Unmarshal(r *Reader) error { return nil }

// EnquireLinkResp is the enquire_link_resp PDU, also bodyless.
type EnquireLinkResp struct{ Base }

// NewEnquireLinkResp builds an enquire_link_resp.
func NewEnquireLinkResp() *EnquireLinkResp {
	return &EnquireLinkResp{Base: NewBase(data.EnquireLinkRespID)}
}

func (p *EnquireLinkResp) Marshal(w *Writer)          {}
func (p *EnquireLinkResp) Unmarshal(r *Reader) error { return nil }

func init() {
	register(data.EnquireLinkID, func() PDU { return NewEnquireLink() })
	register(data.EnquireLinkRespID, func() PDU { return NewEnquireLinkResp() })
}
