package pdu

import (
	"strings"

	"github.com/relaysms/gosmpp/data"
)

// MaxShortMessageLen is the wire limit of the mandatory short_message field
// before the codec must move the payload into the message_payload TLV, per
// spec.md section 4.1.
const MaxShortMessageLen = 254

// ESMClassUDHI is the bit of esm_class marking that short_message/
// message_payload begins with a User Data Header, set by a multipart
// submit_sm's segment builder and read back by UDH on the receiving side.
const ESMClassUDHI byte = 0x40

// smBody is the field set shared by submit_sm and deliver_sm, grounded on
// original_source/aiosmpplib/protocol.py's SubmitSm dataclass (DeliverSm
// subclasses SubmitSm in the original; Go has no PDU inheritance so the
// shared fields are a plain embeddable struct instead).
type smBody struct {
	ServiceType          string
	Source               data.Address
	Dest                 data.Address
	ESMClass             byte
	ProtocolID           byte
	PriorityFlag         byte
	ScheduleDeliveryTime string
	ValidityPeriod       string
	RegisteredDelivery   byte
	ReplaceIfPresentFlag byte
	DataCoding           data.DataCoding
	SMDefaultMsgID       byte
	ShortMessage         []byte
	TLVs                 TLVList
}

// UDH returns the parsed User Data Header, if esm_class marks one present.
func (b *smBody) UDH() (*Udh, []byte, error) {
	if b.ESMClass&ESMClassUDHI == 0 {
		return nil, b.ShortMessage, nil
	}
	return ParseUDH(b.ShortMessage)
}

func (b *smBody) marshal(w *Writer) {
	w.PutCOctetString(b.ServiceType)
	w.PutInteger(1, uint32(b.Source.Ton))
	w.PutInteger(1, uint32(b.Source.Npi))
	w.PutCOctetString(b.Source.Number)
	w.PutInteger(1, uint32(b.Dest.Ton))
	w.PutInteger(1, uint32(b.Dest.Npi))
	w.PutCOctetString(b.Dest.Number)
	w.PutInteger(1, uint32(b.ESMClass))
	w.PutInteger(1, uint32(b.ProtocolID))
	w.PutInteger(1, uint32(b.PriorityFlag))
	w.PutCOctetString(b.ScheduleDeliveryTime)
	w.PutCOctetString(b.ValidityPeriod)
	w.PutInteger(1, uint32(b.RegisteredDelivery))
	w.PutInteger(1, uint32(b.ReplaceIfPresentFlag))
	w.PutInteger(1, uint32(b.DataCoding))
	w.PutInteger(1, uint32(b.SMDefaultMsgID))

	tlvs := b.TLVs
	if len(b.ShortMessage) > MaxShortMessageLen {
		// Move the oversized payload into message_payload and zero the
		// mandatory length, per spec.md section 4.1.
		w.PutInteger(1, 0)
		tlvs = tlvs.Set(TagMessagePayload, b.ShortMessage)
	} else {
		w.PutInteger(1, uint32(len(b.ShortMessage)))
		w.PutOctetString(b.ShortMessage)
	}
	tlvs.Marshal(w)
}

func (b *smBody) unmarshal(r *Reader) error {
	var err error
	if b.ServiceType, err = r.GetCOctetString(6); err != nil {
		return err
	}
	ton, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	npi, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	num, err := r.GetCOctetString(21)
	if err != nil {
		return err
	}
	b.Source = data.Address{Number: num, Ton: data.TON(ton), Npi: data.NPI(npi)}

	if ton, err = r.GetInteger(1); err != nil {
		return err
	}
	if npi, err = r.GetInteger(1); err != nil {
		return err
	}
	if num, err = r.GetCOctetString(21); err != nil {
		return err
	}
	b.Dest = data.Address{Number: num, Ton: data.TON(ton), Npi: data.NPI(npi)}

	esm, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.ESMClass = byte(esm)
	pid, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.ProtocolID = byte(pid)
	prio, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.PriorityFlag = byte(prio)
	if b.ScheduleDeliveryTime, err = r.GetCOctetString(17); err != nil {
		return err
	}
	if b.ValidityPeriod, err = r.GetCOctetString(17); err != nil {
		return err
	}
	regDlvr, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.RegisteredDelivery = byte(regDlvr)
	replace, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.ReplaceIfPresentFlag = byte(replace)
	dcs, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.DataCoding = data.DataCoding(dcs)
	defMsgID, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	b.SMDefaultMsgID = byte(defMsgID)

	smLen, err := r.GetInteger(1)
	if err != nil {
		return err
	}
	sm, err := r.GetOctetString(int(smLen))
	if err != nil {
		return err
	}
	b.ShortMessage = sm

	tlvs, err := ParseTLVs(r)
	if err != nil {
		return err
	}
	b.TLVs = tlvs

	// message_payload, if present, supersedes short_message per spec.md
	// section 4.1.
	if payload, ok := tlvs.Get(TagMessagePayload); ok {
		b.ShortMessage = payload
	}
	return nil
}

// SubmitSM is the submit_sm PDU: a request to transmit a short message.
type SubmitSM struct {
	Base
	smBody
}

// NewSubmitSM builds an empty submit_sm request.
func NewSubmitSM() *SubmitSM {
	return &SubmitSM{Base: NewBase(data.SubmitSMID)}
}

func (p *SubmitSM) Marshal(w *Writer)          { p.smBody.marshal(w) }
func (p *SubmitSM) Unmarshal(r *Reader) error { return p.smBody.unmarshal(r) }

// SubmitSMResp is the submit_sm_resp PDU, carrying the SMSC-assigned
// message_id used later to correlate delivery receipts.
type SubmitSMResp struct {
	Base
	MessageID string
}

// NewSubmitSMResp builds an empty submit_sm_resp; the caller sets its
// header (sequence_number, status) and MessageID.
func NewSubmitSMResp() *SubmitSMResp {
	return &SubmitSMResp{Base: NewBase(data.SubmitSMRespID)}
}

func (p *SubmitSMResp) Marshal(w *Writer) { w.PutCOctetString(p.MessageID) }
func (p *SubmitSMResp) Unmarshal(r *Reader) error {
	var err error
	p.MessageID, err = r.GetCOctetString(65)
	return err
}

// DeliverSM is the deliver_sm PDU: an inbound short message, which may be an
// ordinary mobile-originated message or a delivery receipt (esm_class bits
// 2-5 equal to 0b0001 per spec.md section 4.4 and
// original_source/aiosmpplib/protocol.py's DeliverSm.get_receipt_param).
type DeliverSM struct {
	Base
	smBody
}

// NewDeliverSM builds an empty deliver_sm request.
func NewDeliverSM() *DeliverSM {
	return &DeliverSM{Base: NewBase(data.DeliverSMID)}
}

func (p *DeliverSM) Marshal(w *Writer)          { p.smBody.marshal(w) }
func (p *DeliverSM) Unmarshal(r *Reader) error { return p.smBody.unmarshal(r) }

// IsReceipt reports whether esm_class marks this deliver_sm as a delivery
// receipt rather than an ordinary mobile-originated message.
func (p *DeliverSM) IsReceipt() bool {
	return (p.ESMClass&0b00111100)>>2 == 1
}

// ReceiptMessageID returns the SMSC message id this receipt refers to,
// preferring the `id:` field parsed out of short_message and falling back
// to the receipted_message_id optional parameter, per spec.md section 9's
// receipt-parsing-ambiguity note and aiosmpplib's same fallback order.
func (p *DeliverSM) ReceiptMessageID() (string, map[string]string) {
	fields := data.ParseReceipt(string(p.ShortMessage))
	if id, ok := fields["id"]; ok && id != "" {
		return id, fields
	}
	if raw, ok := p.TLVs.Get(TagReceiptedMessageID); ok {
		return strings.TrimRight(string(raw), "\x00"), fields
	}
	return "", fields
}

// DeliverSMResp is the deliver_sm_resp PDU.
type DeliverSMResp struct {
	Base
	MessageID string
}

// NewDeliverSMResp builds a deliver_sm_resp.
func NewDeliverSMResp() *DeliverSMResp {
	return &DeliverSMResp{Base: NewBase(data.DeliverSMRespID)}
}

func (p *DeliverSMResp) Marshal(w *Writer) { w.PutCOctetString(p.MessageID) }
func (p *DeliverSMResp) Unmarshal(r *Reader) error {
	var err error
	p.MessageID, err = r.GetCOctetString(65)
	return err
}

func init() {
	register(data.SubmitSMID, func() PDU { return NewSubmitSM() })
	register(data.SubmitSMRespID, func() PDU { return NewSubmitSMResp() })
	register(data.DeliverSMID, func() PDU { return NewDeliverSM() })
	register(data.DeliverSMRespID, func() PDU { return NewDeliverSMResp() })
}
