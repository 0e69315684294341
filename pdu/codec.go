package pdu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/relaysms/gosmpp/data"
)

// Sentinel errors per spec.md section 7's codec error kinds. Wrapped with
// fmt.Errorf("%w: ...") so callers can errors.Is/As them.
var (
	ErrMalformed      = errors.New("gosmpp: malformed pdu")
	ErrFrameTooLarge  = errors.New("gosmpp: frame too large")
	ErrUnknownCommand = errors.New("gosmpp: unknown command")
)

// MaxFrameSize is the default cap on command_length, per spec.md section
// 4.1 ("a frame whose command_length exceeds a configured cap (default
// 256 KiB)").
const MaxFrameSize = 256 * 1024

// DecodeError wraps a frame-level decode failure (malformed body, unknown
// command, oversized frame) with the Header that was nonetheless read off
// the wire, so a caller can reply generic_nack with the offending frame's
// own sequence_number per spec.md section 4.1's decode contract, instead
// of tearing the session down over one bad frame. A transport-level read
// failure (the header itself, or the stream closing mid-frame) is never
// wrapped this way, since no header was reliably read.
type DecodeError struct {
	Header Header
	Err    error
}

func (e *DecodeError) Error() string { return e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// PDU is implemented by every modeled SMPP command. Per spec.md section 9's
// design note, a single tagged variant is modeled in Go as one struct per
// command sharing an embedded Header, dispatched through this interface
// rather than through a type switch on a sum type.
type PDU interface {
	CommandID() data.CommandID
	GetHeader() Header
	SetHeader(Header)
	Marshal(w *Writer)
	Unmarshal(r *Reader) error
}

// constructors is populated by each command file's init(), mapping a
// command id to a zero-value factory. Grounded on the registry-by-map idiom
// already used for field-width TLV lookups in the example pack.
var constructors = map[data.CommandID]func() PDU{}

func register(id data.CommandID, ctor func() PDU) {
	constructors[id] = ctor
}

// Encode serializes a PDU into a full frame (header + body + TLV tail),
// computing command_length last from the total emitted size, per spec.md
// section 4.1's encoding contract.
func Encode(p PDU) []byte {
	w := NewWriter()
	p.Marshal(w)
	body := w.Bytes()

	total := HeaderLength + len(body)
	frame := make([]byte, total)
	binary.BigEndian.PutUint32(frame[0:4], uint32(total))
	h := p.GetHeader()
	binary.BigEndian.PutUint32(frame[4:8], uint32(h.ID))
	binary.BigEndian.PutUint32(frame[8:12], uint32(h.Status))
	binary.BigEndian.PutUint32(frame[12:16], h.Sequence)
	copy(frame[16:], body)
	return frame
}

// Parse reads exactly one frame from r, capping command_length at the
// package default MaxFrameSize. Matches the teacher's reader.go call shape
// (pdu.Parse(conn)) while the decode contract itself is spec.md section
// 4.1's. Use ParseWithLimit to honor a configured max_pdu_size instead.
func Parse(r io.Reader) (PDU, error) {
	return ParseWithLimit(r, MaxFrameSize)
}

// ParseWithLimit reads exactly one frame from r: the 4-byte command_length,
// the rest of the 16-byte header, then command_length-16 body bytes, then
// dispatches by command id to the registered Unmarshal, rejecting any
// command_length above maxFrameSize (config.Config.MaxPDUSize, per spec.md
// section 6). A command_length below 16 consumes only the bytes the frame
// declares and yields an ErrMalformed DecodeError whose header holds the
// fields those bytes cover (the rest zero). maxFrameSize <= 0 falls back to
// the package default.
func ParseWithLimit(r io.Reader, maxFrameSize int) (PDU, error) {
	if maxFrameSize <= 0 {
		maxFrameSize = MaxFrameSize
	}

	var hdr [HeaderLength]byte
	if _, err := io.ReadFull(r, hdr[:4]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(hdr[0:4])
	if length < HeaderLength {
		if length > 4 {
			if _, err := io.ReadFull(r, hdr[4:length]); err != nil {
				return nil, err
			}
		}
	} else if _, err := io.ReadFull(r, hdr[4:]); err != nil {
		return nil, err
	}
	header := Header{
		ID:       data.CommandID(binary.BigEndian.Uint32(hdr[4:8])),
		Status:   data.CommandStatus(binary.BigEndian.Uint32(hdr[8:12])),
		Sequence: binary.BigEndian.Uint32(hdr[12:16]),
	}
	if length < HeaderLength {
		return nil, &DecodeError{Header: header, Err: fmt.Errorf("%w: command_length %d shorter than header", ErrMalformed, length)}
	}
	if int(length) > maxFrameSize {
		return nil, &DecodeError{Header: header, Err: fmt.Errorf("%w: command_length %d exceeds cap %d", ErrFrameTooLarge, length, maxFrameSize)}
	}

	body := make([]byte, length-HeaderLength)
	if len(body) > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, err
		}
	}

	ctor, ok := constructors[header.ID]
	if !ok {
		if header.Status != data.ESME_ROK {
			// Unknown command id with a non-OK status decodes as a
			// generic_nack-equivalent: status preserved, body discarded.
			nack := &GenericNack{}
			nack.SetHeader(header)
			return nack, nil
		}
		return nil, &DecodeError{Header: header, Err: fmt.Errorf("%w: command_id 0x%08X", ErrUnknownCommand, uint32(header.ID))}
	}

	p := ctor()
	p.SetHeader(header)
	if err := p.Unmarshal(NewReader(body)); err != nil {
		return nil, &DecodeError{Header: header, Err: err}
	}
	return p, nil
}

// DecodeBytes is a convenience wrapper around Parse for callers holding an
// already-complete frame (used by the frame-independence property test:
// decode(encode(p) || garbage) must consume exactly len(encode(p)) bytes).
func DecodeBytes(b []byte) (PDU, int, error) {
	r := newCountingReader(b)
	p, err := Parse(r)
	if err != nil {
		return nil, 0, err
	}
	return p, r.consumed, nil
}

type countingReader struct {
	buf      []byte
	pos      int
	consumed int
}

func newCountingReader(b []byte) *countingReader { return &countingReader{buf: b} }

func (c *countingReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.buf) {
		return 0, io.EOF
	}
	n := copy(p, c.buf[c.pos:])
	c.pos += n
	c.consumed += n
	return n, nil
}
