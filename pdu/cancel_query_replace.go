package pdu

import "github.com/relaysms/gosmpp/data"

// CancelSM, QuerySM and ReplaceSM are not implemented by
// original_source/aiosmpplib (its own documentation states it does not
// handle them), but spec.md section 3 lists them among the commands
// modeled by this core, so they are grounded directly on SMPP 3.4 section
// 4's field layout instead, following the same header+mandatory-fields+TLV
// shape every sibling command file already uses.

// CancelSM requests the SMSC cancel a previously submitted message.
type CancelSM struct {
	Base
	ServiceType string
	MessageID   string
	Source      data.Address
	Dest        data.Address
}

// NewCancelSM builds an empty cancel_sm request.
func NewCancelSM() *CancelSM { return &CancelSM{Base: NewBase(data.CancelSMID)} }

func (p *CancelSM) Marshal(w *Writer) {
	w.PutCOctetString(p.ServiceType)
	w.PutCOctetString(p.MessageID)
	w.PutInteger(1, uint32(p.Source.Ton))
	w.PutInteger(1, uint32(p.Source.Npi))
	w.PutCOctetString(p.Source.Number)
	w.PutInteger(1, uint32(p.Dest.Ton))
	w.PutInteger(1, uint32(p.Dest.Npi))
	w.PutCOctetString(p.Dest.Number)
}

func (p *CancelSM) Unmarshal(r *Reader) error {
	var err error
	if p.ServiceType, err = r.GetCOctetString(6); err != nil {
		return err
	}
	if p.MessageID, err = r.GetCOctetString(65); err != nil {
		return err
	}
	if p.Source, err = readAddress(r); err != nil {
		return err
	}
	if p.Dest, err = readAddress(r); err != nil {
		return err
	}
	return nil
}

// CancelSMResp is the cancel_sm_resp PDU; bodyless.
type CancelSMResp struct{ Base }

func NewCancelSMResp() *CancelSMResp { return &CancelSMResp{Base: NewBase(data.CancelSMRespID)} }
func (p *CancelSMResp) Marshal(w *Writer)          {}
func (p *CancelSMResp) Unmarshal(r *Reader) error { return nil }

// QuerySM requests the current state of a previously submitted message.
type QuerySM struct {
	Base
	MessageID string
	Source    data.Address
}

func NewQuerySM() *QuerySM { return &QuerySM{Base: NewBase(data.QuerySMID)} }

func (p *QuerySM) Marshal(w *Writer) {
	w.PutCOctetString(p.MessageID)
	w.PutInteger(1, uint32(p.Source.Ton))
	w.PutInteger(1, uint32(p.Source.Npi))
	w.PutCOctetString(p.Source.Number)
}

func (p *QuerySM) Unmarshal(r *Reader) error {
	var err error
	if p.MessageID, err = r.GetCOctetString(65); err != nil {
		return err
	}
	p.Source, err = readAddress(r)
	return err
}

// QuerySMResp carries the final state of a message.
type QuerySMResp struct {
	Base
	MessageID    string
	FinalDate    string
	MessageState uint8
	ErrorCode    uint8
}

func NewQuerySMResp() *QuerySMResp { return &QuerySMResp{Base: NewBase(data.QuerySMRespID)} }

func (p *QuerySMResp) Marshal(w *Writer) {
	w.PutCOctetString(p.MessageID)
	w.PutCOctetString(p.FinalDate)
	w.PutInteger(1, uint32(p.MessageState))
	w.PutInteger(1, uint32(p.ErrorCode))
}

func (p *QuerySMResp) Unmarshal(r *Reader) error {
	var err error
	if p.MessageID, err = r.GetCOctetString(65); err != nil {
		return err
	}
	if p.FinalDate, err = r.GetCOctetString(17); err != nil {
		return err
	}
	state, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.MessageState = uint8(state)
	code, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.ErrorCode = uint8(code)
	return nil
}

// ReplaceSM replaces the content of a previously submitted, still-pending
// short message.
type ReplaceSM struct {
	Base
	MessageID            string
	Source               data.Address
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   byte
	SMDefaultMsgID       byte
	ShortMessage         []byte
}

func NewReplaceSM() *ReplaceSM { return &ReplaceSM{Base: NewBase(data.ReplaceSMID)} }

func (p *ReplaceSM) Marshal(w *Writer) {
	w.PutCOctetString(p.MessageID)
	w.PutInteger(1, uint32(p.Source.Ton))
	w.PutInteger(1, uint32(p.Source.Npi))
	w.PutCOctetString(p.Source.Number)
	w.PutCOctetString(p.ScheduleDeliveryTime)
	w.PutCOctetString(p.ValidityPeriod)
	w.PutInteger(1, uint32(p.RegisteredDelivery))
	w.PutInteger(1, uint32(p.SMDefaultMsgID))
	w.PutInteger(1, uint32(len(p.ShortMessage)))
	w.PutOctetString(p.ShortMessage)
}

func (p *ReplaceSM) Unmarshal(r *Reader) error {
	var err error
	if p.MessageID, err = r.GetCOctetString(65); err != nil {
		return err
	}
	if p.Source, err = readAddress(r); err != nil {
		return err
	}
	if p.ScheduleDeliveryTime, err = r.GetCOctetString(17); err != nil {
		return err
	}
	if p.ValidityPeriod, err = r.GetCOctetString(17); err != nil {
		return err
	}
	regDlvr, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.RegisteredDelivery = byte(regDlvr)
	defMsgID, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.SMDefaultMsgID = byte(defMsgID)
	smLen, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	p.ShortMessage, err = r.GetOctetString(int(smLen))
	return err
}

// ReplaceSMResp is the replace_sm_resp PDU; bodyless.
type ReplaceSMResp struct{ Base }

func NewReplaceSMResp() *ReplaceSMResp { return &ReplaceSMResp{Base: NewBase(data.ReplaceSMRespID)} }
func (p *ReplaceSMResp) Marshal(w *Writer)          {}
func (p *ReplaceSMResp) Unmarshal(r *Reader) error { return nil }

// readAddress consumes a ton/npi/c_octet_string(21) triple, the shape every
// mandatory address field in the protocol shares.
func readAddress(r *Reader) (data.Address, error) {
	ton, err := r.GetInteger(1)
	if err != nil {
		return data.Address{}, err
	}
	npi, err := r.GetInteger(1)
	if err != nil {
		return data.Address{}, err
	}
	num, err := r.GetCOctetString(21)
	if err != nil {
		return data.Address{}, err
	}
	return data.Address{Number: num, Ton: data.TON(ton), Npi: data.NPI(npi)}, nil
}

func init() {
	register(data.CancelSMID, func() PDU { return NewCancelSM() })
	register(data.CancelSMRespID, func() PDU { return NewCancelSMResp() })
	register(data.QuerySMID, func() PDU { return NewQuerySM() })
	register(data.QuerySMRespID, func() PDU { return NewQuerySMResp() })
	register(data.ReplaceSMID, func() PDU { return NewReplaceSM() })
	register(data.ReplaceSMRespID, func() PDU { return NewReplaceSMResp() })
}
