package pdu

// Tag identifies an optional (TLV) parameter. Values per SMPP 3.4 section
// 5.3.2, supplemented from original_source/aiosmpplib/state.py's tag table.
type Tag uint16

const (
	TagDestAddrSubunit        Tag = 0x0005
	TagDestNetworkType        Tag = 0x0006
	TagDestBearerType         Tag = 0x0007
	TagDestTelematicsID       Tag = 0x0008
	TagSourceAddrSubunit      Tag = 0x000D
	TagSourceNetworkType      Tag = 0x000E
	TagSourceBearerType       Tag = 0x000F
	TagSourceTelematicsID     Tag = 0x0010
	TagQosTimeToLive          Tag = 0x0017
	TagPayloadType            Tag = 0x0019
	TagAdditionalStatusInfo   Tag = 0x001D
	TagReceiptedMessageID     Tag = 0x001E
	TagMsMsgWaitFacilities    Tag = 0x0030
	TagPrivacyIndicator       Tag = 0x0201
	TagSourceSubaddress       Tag = 0x0202
	TagDestSubaddress         Tag = 0x0203
	TagUserMessageReference   Tag = 0x0204
	TagUserResponseCode       Tag = 0x0205
	TagSourcePort             Tag = 0x020A
	TagDestinationPort        Tag = 0x020B
	TagSarMsgRefNum           Tag = 0x020C
	TagLanguageIndicator      Tag = 0x020D
	TagSarTotalSegments       Tag = 0x020E
	TagSarSegmentSeqnum       Tag = 0x020F
	TagScInterfaceVersion     Tag = 0x0210
	TagCallbackNumPresInd     Tag = 0x0302
	TagCallbackNumAtag        Tag = 0x0303
	TagNumberOfMessages       Tag = 0x0304
	TagCallbackNum            Tag = 0x0381
	TagDpfResult              Tag = 0x0420
	TagSetDpf                 Tag = 0x0421
	TagMsAvailabilityStatus   Tag = 0x0422
	TagNetworkErrorCode       Tag = 0x0423
	TagMessagePayload         Tag = 0x0424
	TagDeliveryFailureReason  Tag = 0x0425
	TagMoreMessagesToSend     Tag = 0x0426
	TagMessageState           Tag = 0x0427
	TagUssdServiceOp          Tag = 0x0501
	TagDisplayTime            Tag = 0x1201
	TagSmsSignal              Tag = 0x1203
	TagMsValidity             Tag = 0x1204
	TagAlertOnMessageDelivery Tag = 0x130C
	TagItsReplyType           Tag = 0x1380
	TagItsSessionInfo         Tag = 0x1383
)

// TLV is a single optional parameter: an opaque tag/value pair. Decoded
// semantic type (integer width, c-string, octet string) is a concern of the
// command struct reading it, per spec.md's "unknown tags round-trip as
// opaque bytes" rule.
type TLV struct {
	Tag   Tag
	Value []byte
}

// TLVList is an ordered collection of optional parameters. Order is
// preserved on encode (insertion order) per spec.md section 4.1; lookups
// must not depend on position.
type TLVList []TLV

// Get returns the first TLV with the given tag.
func (l TLVList) Get(tag Tag) ([]byte, bool) {
	for _, t := range l {
		if t.Tag == tag {
			return t.Value, true
		}
	}
	return nil, false
}

// Set appends or replaces (in place, preserving its original position) the
// TLV with the given tag.
func (l TLVList) Set(tag Tag, value []byte) TLVList {
	for i, t := range l {
		if t.Tag == tag {
			l[i].Value = value
			return l
		}
	}
	return append(l, TLV{Tag: tag, Value: value})
}

// Marshal appends every TLV's wire encoding (2-byte tag, 2-byte length,
// value) to w.
func (l TLVList) Marshal(w *Writer) {
	for _, t := range l {
		w.PutInteger(2, uint32(t.Tag))
		w.PutInteger(2, uint32(len(t.Value)))
		w.PutOctetString(t.Value)
	}
}

// ParseTLVs consumes every remaining tag/length/value triple in r.
func ParseTLVs(r *Reader) (TLVList, error) {
	var list TLVList
	for r.Len() > 0 {
		tag, err := r.GetInteger(2)
		if err != nil {
			return nil, err
		}
		length, err := r.GetInteger(2)
		if err != nil {
			return nil, err
		}
		value, err := r.GetOctetString(int(length))
		if err != nil {
			return nil, err
		}
		list = append(list, TLV{Tag: Tag(tag), Value: value})
	}
	return list, nil
}
