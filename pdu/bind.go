package pdu

import "github.com/relaysms/gosmpp/data"

// BindRequest is the bind_transmitter/bind_receiver/bind_transceiver PDU
// (the three share an identical body; only the command id differs). Field
// layout and max lengths grounded on original_source/aiosmpplib/protocol.py's
// BindTransceiver and spec.md section 6's wire-size limits.
type BindRequest struct {
	Base
	SystemID         string
	Password         string
	SystemType       string
	InterfaceVersion uint8
	AddrTon          data.TON
	AddrNpi          data.NPI
	AddressRange     string
}

// NewBindRequest builds a bind request for the given binding type.
func NewBindRequest(binding data.BindingType) *BindRequest {
	return &BindRequest{
		Base:             NewBase(binding.CommandID()),
		InterfaceVersion: 0x34,
	}
}

func (p *BindRequest) Marshal(w *Writer) {
	w.PutCOctetString(p.SystemID)
	w.PutCOctetString(p.Password)
	w.PutCOctetString(p.SystemType)
	w.PutInteger(1, uint32(p.InterfaceVersion))
	w.PutInteger(1, uint32(p.AddrTon))
	w.PutInteger(1, uint32(p.AddrNpi))
	w.PutCOctetString(p.AddressRange)
}

func (p *BindRequest) Unmarshal(r *Reader) error {
	var err error
	if p.SystemID, err = r.GetCOctetString(16); err != nil {
		return err
	}
	if p.Password, err = r.GetCOctetString(9); err != nil {
		return err
	}
	if p.SystemType, err = r.GetCOctetString(13); err != nil {
		return err
	}
	iv, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.InterfaceVersion = uint8(iv)
	ton, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.AddrTon = data.TON(ton)
	npi, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.AddrNpi = data.NPI(npi)
	if p.AddressRange, err = r.GetCOctetString(41); err != nil {
		return err
	}
	return nil
}

// BindResponse is the bind_*_resp PDU: system_id plus an optional
// sc_interface_version TLV.
type BindResponse struct {
	Base
	SystemID string
}

// NewBindResponse builds a bind response for the given request command id.
func NewBindResponse(requestID data.CommandID) *BindResponse {
	return &BindResponse{Base: NewBase(requestID.ResponseID())}
}

func (p *BindResponse) Marshal(w *Writer) {
	w.PutCOctetString(p.SystemID)
}

func (p *BindResponse) Unmarshal(r *Reader) error {
	var err error
	if p.SystemID, err = r.GetCOctetString(16); err != nil {
		return err
	}
	// Trailing sc_interface_version TLV, if any, is ignored; callers that
	// need it can inspect the raw TLV tail via a future extension point.
	return nil
}

func init() {
	register(data.BindTransmitterID, func() PDU { return &BindRequest{Base: NewBase(data.BindTransmitterID)} })
	register(data.BindReceiverID, func() PDU { return &BindRequest{Base: NewBase(data.BindReceiverID)} })
	register(data.BindTransceiverID, func() PDU { return &BindRequest{Base: NewBase(data.BindTransceiverID)} })
	register(data.BindTransmitterRespID, func() PDU { return &BindResponse{Base: NewBase(data.BindTransmitterRespID)} })
	register(data.BindReceiverRespID, func() PDU { return &BindResponse{Base: NewBase(data.BindReceiverRespID)} })
	register(data.BindTransceiverRespID, func() PDU { return &BindResponse{Base: NewBase(data.BindTransceiverRespID)} })
}
