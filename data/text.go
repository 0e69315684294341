package data

import (
	"errors"
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// ErrEncode and ErrDecode are the sentinel errors wrapped by every codec's
// failure paths, per spec.md section 7 (EncodeError/DecodeError).
var (
	ErrEncode = errors.New("gosmpp: encode error")
	ErrDecode = errors.New("gosmpp: decode error")
)

// Codec converts between an application string and the DCS-indexed wire
// byte encoding, per spec.md section 4.2.
type Codec interface {
	Encode(s string) ([]byte, error)
	Decode(b []byte) (string, error)
}

type options struct {
	lossy  bool
	packed bool
}

// Option configures a Codec constructed via CodecFor.
type Option func(*options)

// WithLossy makes the codec substitute unsupported characters instead of
// failing, per spec.md section 4.2 ("substituted with `?`").
func WithLossy() Option {
	return func(o *options) { o.lossy = true }
}

// WithPacked selects the bit-packed septet wire format for GSM7 (the
// encoding some SMSC vendors require for data_coding 0, as opposed to the
// one-septet-per-byte layout CodecFor(GSM7) returns by default), per
// spec.md section 4.2's "packed or unpacked per data_coding" note. Ignored
// by every other DataCoding.
func WithPacked() Option {
	return func(o *options) { o.packed = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// CodecFor returns the Codec implementation for a data coding scheme.
func CodecFor(dcs DataCoding, opts ...Option) (Codec, error) {
	switch dcs {
	case GSM7:
		if applyOptions(opts).packed {
			return newGSM7PackedCodec(opts), nil
		}
		return newGSM7Codec(opts), nil
	case ASCII:
		return newASCIICodec(opts), nil
	case Latin1:
		return newLatin1Codec(opts), nil
	case UCS2BE:
		return newUCS2Codec(opts), nil
	case OctetUnspecified, OctetUnspecified2:
		return octetCodec{}, nil
	default:
		return nil, fmt.Errorf("gosmpp: no text codec registered for %s", dcs)
	}
}

// octetCodec is the pass-through OCTET_UNSPECIFIED codec: the "string" is
// treated as a raw Latin-1-ish byte transparent pass-through, per spec.md's
// instruction that OCTET_UNSPECIFIED is a pass-through encoding.
type octetCodec struct{}

func (octetCodec) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (octetCodec) Decode(b []byte) (string, error) { return string(b), nil }

// ASCIICodec enforces 7-bit clean ASCII, the DCS=1 encoding.
type ASCIICodec struct{ lossy bool }

func newASCIICodec(opts []Option) *ASCIICodec { return &ASCIICodec{lossy: applyOptions(opts).lossy} }

func (c *ASCIICodec) Encode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i, r := range s {
		if r > 0x7F {
			if !c.lossy {
				return nil, fmt.Errorf("%w: non-ASCII rune %q at byte offset %d", ErrEncode, r, i)
			}
			r = rune(gsmQuestionMark)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func (c *ASCIICodec) Decode(b []byte) (string, error) {
	out := make([]rune, 0, len(b))
	for i, by := range b {
		if by > 0x7F {
			if !c.lossy {
				return "", fmt.Errorf("%w: non-ASCII byte 0x%02X at offset %d", ErrDecode, by, i)
			}
			by = gsmQuestionMark
		}
		out = append(out, rune(by))
	}
	return string(out), nil
}

// Latin1Codec implements the ISO-8859-1 (DCS=3) encoding, built on
// golang.org/x/text/encoding/charmap so the byte<->rune table itself is not
// hand-rolled (see DESIGN.md for the grounding of this dependency choice).
type Latin1Codec struct{ lossy bool }

func newLatin1Codec(opts []Option) *Latin1Codec { return &Latin1Codec{lossy: applyOptions(opts).lossy} }

func (c *Latin1Codec) Encode(s string) ([]byte, error) {
	enc := charmap.ISO8859_1.NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		if !c.lossy {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return []byte(replaceUnmappable(s)), nil
	}
	return out, nil
}

func replaceUnmappable(s string) []byte {
	out := make([]byte, 0, len(s))
	enc := charmap.ISO8859_1.NewEncoder()
	for _, r := range s {
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil || len(b) != 1 {
			out = append(out, gsmQuestionMark)
			continue
		}
		out = append(out, b[0])
	}
	return out
}

func (c *Latin1Codec) Decode(b []byte) (string, error) {
	dec := charmap.ISO8859_1.NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(out), nil
}

// UCS2Codec implements UTF-16BE (DCS=8, "UCS-2BE"), matching aiosmpplib's
// UCS2Codec (which itself treats UCS-2 as equivalent to big-endian UTF-16).
// Grounded on stdlib unicode/utf16 rather than golang.org/x/text: the x/text
// module has no standalone "UCS-2BE" transform distinct from UTF-16BE, and
// the stdlib conversion is exact for the code points SMPP actually carries,
// so a second text-encoding dependency for an already-solved conversion
// isn't justified (see DESIGN.md).
type UCS2Codec struct{ lossy bool }

func newUCS2Codec(opts []Option) *UCS2Codec { return &UCS2Codec{lossy: applyOptions(opts).lossy} }

func (c *UCS2Codec) Encode(s string) ([]byte, error) {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[2*i] = byte(u >> 8)
		out[2*i+1] = byte(u)
	}
	return out, nil
}

func (c *UCS2Codec) Decode(b []byte) (string, error) {
	if len(b)%2 != 0 {
		if !c.lossy {
			return "", fmt.Errorf("%w: odd byte length %d for UCS-2BE", ErrDecode, len(b))
		}
		b = b[:len(b)-1]
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(units)), nil
}
