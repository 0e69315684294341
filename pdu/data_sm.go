package pdu

import "github.com/relaysms/gosmpp/data"

// DataSM is the data_sm PDU: an alternative to submit_sm/deliver_sm for
// exchanging data with no mandatory short_message field — payload travels
// exclusively via the message_payload TLV. Not modeled by
// original_source/aiosmpplib; grounded directly on SMPP 3.4 section 4.7.
type DataSM struct {
	Base
	ServiceType        string
	Source             data.Address
	Dest               data.Address
	ESMClass           byte
	RegisteredDelivery byte
	DataCoding         data.DataCoding
	TLVs               TLVList
}

func NewDataSM() *DataSM { return &DataSM{Base: NewBase(data.DataSMID)} }

func (p *DataSM) Marshal(w *Writer) {
	w.PutCOctetString(p.ServiceType)
	w.PutInteger(1, uint32(p.Source.Ton))
	w.PutInteger(1, uint32(p.Source.Npi))
	w.PutCOctetString(p.Source.Number)
	w.PutInteger(1, uint32(p.Dest.Ton))
	w.PutInteger(1, uint32(p.Dest.Npi))
	w.PutCOctetString(p.Dest.Number)
	w.PutInteger(1, uint32(p.ESMClass))
	w.PutInteger(1, uint32(p.RegisteredDelivery))
	w.PutInteger(1, uint32(p.DataCoding))
	p.TLVs.Marshal(w)
}

func (p *DataSM) Unmarshal(r *Reader) error {
	var err error
	if p.ServiceType, err = r.GetCOctetString(6); err != nil {
		return err
	}
	if p.Source, err = readAddress(r); err != nil {
		return err
	}
	if p.Dest, err = readAddress(r); err != nil {
		return err
	}
	esm, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.ESMClass = byte(esm)
	reg, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.RegisteredDelivery = byte(reg)
	dcs, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.DataCoding = data.DataCoding(dcs)
	p.TLVs, err = ParseTLVs(r)
	return err
}

// Payload returns the message_payload TLV contents, if present.
func (p *DataSM) Payload() ([]byte, bool) { return p.TLVs.Get(TagMessagePayload) }

// DataSMResp is the data_sm_resp PDU.
type DataSMResp struct {
	Base
	MessageID string
	TLVs      TLVList
}

func NewDataSMResp() *DataSMResp { return &DataSMResp{Base: NewBase(data.DataSMRespID)} }

func (p *DataSMResp) Marshal(w *Writer) {
	w.PutCOctetString(p.MessageID)
	p.TLVs.Marshal(w)
}

func (p *DataSMResp) Unmarshal(r *Reader) error {
	var err error
	if p.MessageID, err = r.GetCOctetString(65); err != nil {
		return err
	}
	p.TLVs, err = ParseTLVs(r)
	return err
}

func init() {
	register(data.DataSMID, func() PDU { return NewDataSM() })
	register(data.DataSMRespID, func() PDU { return NewDataSMResp() })
}
