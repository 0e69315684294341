package pdu

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Writer accumulates the body of a PDU being encoded. It provides the three
// field-kind primitives spec.md section 4.1 defines: integer, c_octet_string,
// and octet_string. Grounded on the per-command body-building closures in
// original_source/aiosmpplib/protocol.py's SubmitSm.pdu, generalized into a
// reusable type since Go favors a shared helper over a per-call closure.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty body Writer.
func NewWriter() *Writer { return &Writer{} }

// PutInteger writes an n-byte (n in {1,2,4}) big-endian unsigned integer.
func (w *Writer) PutInteger(n int, v uint32) {
	switch n {
	case 1:
		w.buf.WriteByte(byte(v))
	case 2:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(v))
		w.buf.Write(b[:])
	case 4:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		w.buf.Write(b[:])
	default:
		panic(fmt.Sprintf("pdu: unsupported integer width %d", n))
	}
}

// PutCOctetString writes a NUL-terminated ASCII string. An empty string is
// encoded as a single NUL byte, per spec.md section 4.1.
func (w *Writer) PutCOctetString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0x00)
}

// PutOctetString writes raw bytes with no length prefix or terminator; the
// length is implied by a preceding integer field or TLV length.
func (w *Writer) PutOctetString(b []byte) {
	w.buf.Write(b)
}

// Bytes returns the accumulated body bytes.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Reader walks the body bytes of a PDU being decoded, consuming fields left
// to right and failing fast with an ErrMalformed-wrapped error on underrun.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps a body byte slice for sequential field extraction.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Remaining returns the bytes not yet consumed.
func (r *Reader) Remaining() []byte { return r.buf[r.pos:] }

// Len reports how many bytes remain unconsumed.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// GetInteger reads an n-byte (n in {1,2,4}) big-endian unsigned integer.
func (r *Reader) GetInteger(n int) (uint32, error) {
	if r.pos+n > len(r.buf) {
		return 0, fmt.Errorf("%w: need %d bytes for integer, have %d", ErrMalformed, n, r.Len())
	}
	var v uint32
	switch n {
	case 1:
		v = uint32(r.buf[r.pos])
	case 2:
		v = uint32(binary.BigEndian.Uint16(r.buf[r.pos:]))
	case 4:
		v = binary.BigEndian.Uint32(r.buf[r.pos:])
	default:
		return 0, fmt.Errorf("pdu: unsupported integer width %d", n)
	}
	r.pos += n
	return v, nil
}

// GetCOctetString reads bytes up to and including the next NUL, returning
// the string without the terminator. maxLen is the wire field width
// including the NUL (0 means unbounded, scan to end of body).
func (r *Reader) GetCOctetString(maxLen int) (string, error) {
	limit := len(r.buf)
	if maxLen > 0 && r.pos+maxLen < limit {
		limit = r.pos + maxLen
	}
	for i := r.pos; i < limit; i++ {
		if r.buf[i] == 0x00 {
			s := string(r.buf[r.pos:i])
			r.pos = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unterminated c_octet_string", ErrMalformed)
}

// GetOctetString reads exactly n raw bytes.
func (r *Reader) GetOctetString(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes for octet_string, have %d", ErrMalformed, n, r.Len())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}
