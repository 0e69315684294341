package pdu

import "github.com/relaysms/gosmpp/data"

// AlertNotification is sent by the SMSC to notify the ESME that a
// previously inaccessible mobile subscriber has become available; it has
// no response. Not modeled by original_source/aiosmpplib; grounded
// directly on SMPP 3.4 section 4.12.
type AlertNotification struct {
	Base
	Source    data.Address
	ESMEAddr  data.Address
	TLVs      TLVList
}

func NewAlertNotification() *AlertNotification {
	return &AlertNotification{Base: NewBase(data.AlertNotificationID)}
}

func (p *AlertNotification) Marshal(w *Writer) {
	w.PutInteger(1, uint32(p.Source.Ton))
	w.PutInteger(1, uint32(p.Source.Npi))
	w.PutCOctetString(p.Source.Number)
	w.PutInteger(1, uint32(p.ESMEAddr.Ton))
	w.PutInteger(1, uint32(p.ESMEAddr.Npi))
	w.PutCOctetString(p.ESMEAddr.Number)
	p.TLVs.Marshal(w)
}

func (p *AlertNotification) Unmarshal(r *Reader) error {
	var err error
	if p.Source, err = readAddress(r); err != nil {
		return err
	}
	if p.ESMEAddr, err = readAddress(r); err != nil {
		return err
	}
	p.TLVs, err = ParseTLVs(r)
	return err
}

// Outbind is sent by the SMSC to an ESME to request that it bind, used when
// the SMSC itself initiates the TCP connection. Not modeled by
// original_source/aiosmpplib; grounded directly on SMPP 3.4 section 4.1.5.
type Outbind struct {
	Base
	SystemID string
	Password string
}

func NewOutbind() *Outbind { return &Outbind{Base: NewBase(data.OutbindID)} }

func (p *Outbind) Marshal(w *Writer) {
	w.PutCOctetString(p.SystemID)
	w.PutCOctetString(p.Password)
}

func (p *Outbind) Unmarshal(r *Reader) error {
	var err error
	if p.SystemID, err = r.GetCOctetString(16); err != nil {
		return err
	}
	p.Password, err = r.GetCOctetString(9)
	return err
}

func init() {
	register(data.AlertNotificationID, func() PDU { return NewAlertNotification() })
	register(data.OutbindID, func() PDU { return NewOutbind() })
}
