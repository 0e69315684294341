package pdu

import "fmt"

// Information-element identifiers used by the concatenated-message UDH,
// grounded on nurmuhammad701-smpp__pdu.go's manual UDH byte layout and on
// spec.md section 9's IE_ID naming (8-bit and 16-bit reference number
// variants).
const (
	ieConcatenated8Bit  byte = 0x00
	ieConcatenated16Bit byte = 0x08
)

// ConcatInfo is the parsed concatenated-message information element of a
// User Data Header: reference number, total segment count, and this
// segment's 1-based sequence number. Reassembly across segments is out of
// scope per spec.md's Non-goals; the codec only exposes this parsed value.
type ConcatInfo struct {
	Reference     uint16
	TotalSegments uint8
	SegmentNumber uint8
}

// Udh is the parsed User Data Header prefix of a short_message/
// message_payload body when esm_class marks udhi. Concat is present only
// when the payload carries a concatenated-message information element.
type Udh struct {
	Concat *ConcatInfo
	// Raw is the complete UDH (length byte included), for round-tripping
	// elements this parser does not model explicitly.
	Raw []byte
}

// ParseUDH reads a length-prefixed User Data Header from the front of
// payload and returns it along with the remaining application data.
func ParseUDH(payload []byte) (*Udh, []byte, error) {
	if len(payload) == 0 {
		return nil, payload, fmt.Errorf("%w: udhi set but payload is empty", ErrMalformed)
	}
	udhLen := int(payload[0])
	if 1+udhLen > len(payload) {
		return nil, payload, fmt.Errorf("%w: udh length %d exceeds payload", ErrMalformed, udhLen)
	}
	raw := payload[:1+udhLen]
	rest := payload[1+udhLen:]
	udh := &Udh{Raw: raw}

	body := raw[1:]
	for len(body) >= 2 {
		ieID := body[0]
		ieLen := int(body[1])
		if 2+ieLen > len(body) {
			break
		}
		ieData := body[2 : 2+ieLen]
		switch ieID {
		case ieConcatenated8Bit:
			if ieLen == 3 {
				udh.Concat = &ConcatInfo{
					Reference:     uint16(ieData[0]),
					TotalSegments: ieData[1],
					SegmentNumber: ieData[2],
				}
			}
		case ieConcatenated16Bit:
			if ieLen == 4 {
				udh.Concat = &ConcatInfo{
					Reference:     uint16(ieData[0])<<8 | uint16(ieData[1]),
					TotalSegments: ieData[2],
					SegmentNumber: ieData[3],
				}
			}
		}
		body = body[2+ieLen:]
	}
	return udh, rest, nil
}

// BuildConcatUDH returns the 6-byte (8-bit reference) UDH for a concatenated
// message segment, grounded on nurmuhammad701-smpp__pdu.go's SetUDH layout.
func BuildConcatUDH(reference uint8, total uint8, sequence uint8) []byte {
	return []byte{0x05, ieConcatenated8Bit, 0x03, reference, total, sequence}
}
