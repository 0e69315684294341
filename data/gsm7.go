package data

import "fmt"

// GSM 03.38 default alphabet escape sentinel and fallback runes.
const (
	gsmEscape       byte = 0x1B
	gsmQuestionMark byte = 0x3F
	gsmNoBreakSpace rune = 0x00A0
)

// gsmBasicDecode maps the GSM 03.38 basic character table (septets 0x00-0x7F)
// to unicode runes. Grounded verbatim on aiosmpplib's GSM_BASIC_DECODE_MAP.
var gsmBasicDecode = map[byte]rune{
	0x00: '@', 0x01: '£', 0x02: '$', 0x03: '¥', 0x04: 'è', 0x05: 'é', 0x06: 'ù',
	0x07: 'ì', 0x08: 'ò', 0x09: 'Ç', 0x0A: '\n', 0x0B: 'Ø', 0x0C: 'ø', 0x0D: '\r',
	0x0E: 'Å', 0x0F: 'å', 0x10: 'Δ', 0x11: '_', 0x12: 'Φ', 0x13: 'Γ', 0x14: 'Λ',
	0x15: 'Ω', 0x16: 'Π', 0x17: 'Ψ', 0x18: 'Σ', 0x19: 'Θ', 0x1A: 'Ξ',
	0x1C: 'Æ', 0x1D: 'æ', 0x1E: 'ß', 0x1F: 'É',
	0x20: ' ', 0x21: '!', 0x22: '"', 0x23: '#', 0x24: '¤', 0x25: '%', 0x26: '&',
	0x27: '\'', 0x28: '(', 0x29: ')', 0x2A: '*', 0x2B: '+', 0x2C: ',', 0x2D: '-',
	0x2E: '.', 0x2F: '/',
	0x30: '0', 0x31: '1', 0x32: '2', 0x33: '3', 0x34: '4', 0x35: '5', 0x36: '6',
	0x37: '7', 0x38: '8', 0x39: '9', 0x3A: ':', 0x3B: ';', 0x3C: '<', 0x3D: '=',
	0x3E: '>', 0x3F: '?',
	0x40: '¡', 0x41: 'A', 0x42: 'B', 0x43: 'C', 0x44: 'D', 0x45: 'E', 0x46: 'F',
	0x47: 'G', 0x48: 'H', 0x49: 'I', 0x4A: 'J', 0x4B: 'K', 0x4C: 'L', 0x4D: 'M',
	0x4E: 'N', 0x4F: 'O', 0x50: 'P', 0x51: 'Q', 0x52: 'R', 0x53: 'S', 0x54: 'T',
	0x55: 'U', 0x56: 'V', 0x57: 'W', 0x58: 'X', 0x59: 'Y', 0x5A: 'Z',
	0x5B: 'Ä', 0x5C: 'Ö', 0x5D: 'Ñ', 0x5E: 'Ü', 0x5F: '§',
	0x60: '¿', 0x61: 'a', 0x62: 'b', 0x63: 'c', 0x64: 'd', 0x65: 'e', 0x66: 'f',
	0x67: 'g', 0x68: 'h', 0x69: 'i', 0x6A: 'j', 0x6B: 'k', 0x6C: 'l', 0x6D: 'm',
	0x6E: 'n', 0x6F: 'o', 0x70: 'p', 0x71: 'q', 0x72: 'r', 0x73: 's', 0x74: 't',
	0x75: 'u', 0x76: 'v', 0x77: 'w', 0x78: 'x', 0x79: 'y', 0x7A: 'z',
	0x7B: 'ä', 0x7C: 'ö', 0x7D: 'ñ', 0x7E: 'ü', 0x7F: 'à',
}

// gsmExtendedDecode maps the escaped (0x1B-prefixed) extension table.
// Grounded verbatim on aiosmpplib's GSM_EXTENDED_DECODE_MAP.
var gsmExtendedDecode = map[byte]rune{
	0x0A: '\f', 0x14: '^', 0x28: '{', 0x29: '}', 0x2F: '\\',
	0x3C: '[', 0x3D: '~', 0x3E: ']', 0x40: '|', 0x65: '€',
}

// gsmReplaceEncode is the lossy-mode Greek-letter-to-Latin-lookalike table,
// used only when the caller asked for lossy encoding. Grounded verbatim on
// aiosmpplib's GSM_REPLACE_ENCODE_MAP (supplemented per SPEC_FULL.md section
// 12, since this table is present in the original but not named in spec.md).
var gsmReplaceEncode = map[rune]byte{
	'ç': 0x09, 'Α': 0x41, 'Β': 0x42, 'Ε': 0x45, 'Η': 0x48, 'Ι': 0x49, 'Κ': 0x4B,
	'Μ': 0x4D, 'Ν': 0x4E, 'Ο': 0x4F, 'Ρ': 0x50, 'Τ': 0x54, 'Χ': 0x58, 'Υ': 0x59,
	'Ζ': 0x5A,
}

var (
	gsmBasicEncode    = invertByteRune(gsmBasicDecode)
	gsmExtendedEncode = invertByteRune(gsmExtendedDecode)
)

func invertByteRune(m map[byte]rune) map[rune]byte {
	out := make(map[rune]byte, len(m))
	for b, r := range m {
		out[r] = b
	}
	return out
}

// gsmToCodes converts a string into the sequence of GSM 03.38 septet codes
// (0x1B escape bytes included for extension-table characters), per
// spec.md's 2-septet length-accounting note for extension characters.
func gsmToCodes(text string, lossy bool) ([]byte, error) {
	codes := make([]byte, 0, len(text))
	for i, r := range text {
		if b, ok := gsmBasicEncode[r]; ok {
			codes = append(codes, b)
			continue
		}
		if b, ok := gsmExtendedEncode[r]; ok {
			codes = append(codes, gsmEscape, b)
			continue
		}
		if !lossy {
			return nil, fmt.Errorf("%w: character %q at byte offset %d", ErrEncode, r, i)
		}
		if b, ok := gsmReplaceEncode[r]; ok {
			codes = append(codes, b)
		} else {
			codes = append(codes, gsmQuestionMark)
		}
	}
	return codes, nil
}

func gsmDecodeChar(code byte, escaped bool) (rune, bool, bool) {
	if code == gsmEscape {
		return 0, true, false
	}
	if escaped {
		if r, ok := gsmExtendedDecode[code]; ok {
			return r, false, true
		}
		return gsmNoBreakSpace, false, true
	}
	if r, ok := gsmBasicDecode[code]; ok {
		return r, false, true
	}
	return 0, false, false
}

// GSM7Codec implements unpacked (one septet per octet, high bit zero) GSM-7
// encoding, matching SMPP's usual on-the-wire representation (most SMSCs
// carry one GSM-7 character per byte rather than bit-packed septets).
type GSM7Codec struct {
	lossy bool
}

func newGSM7Codec(opts []Option) *GSM7Codec {
	return &GSM7Codec{lossy: applyOptions(opts).lossy}
}

func (c *GSM7Codec) Encode(s string) ([]byte, error) {
	codes, err := gsmToCodes(s, c.lossy)
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (c *GSM7Codec) Decode(b []byte) (string, error) {
	var out []rune
	escaped := false
	for i, code := range b {
		r, nowEscaped, ok := gsmDecodeChar(code, escaped)
		escaped = nowEscaped
		if !escaped {
			if !ok {
				if !c.lossy {
					return "", fmt.Errorf("%w: unsupported GSM-7 byte 0x%02X at offset %d", ErrDecode, code, i)
				}
				out = append(out, rune(gsmQuestionMark))
				continue
			}
			out = append(out, r)
		}
	}
	if escaped {
		if !c.lossy {
			return "", fmt.Errorf("%w: sequence ends with escape byte", ErrDecode)
		}
		out = append(out, gsmNoBreakSpace)
	}
	return string(out), nil
}

// GSM7PackedCodec implements the bit-packed septet representation required
// by some SMSC vendors (GSM 03.38's own storage format). Grounded verbatim
// on aiosmpplib's GSM7BitPackedCodec bit-shifting algorithm.
type GSM7PackedCodec struct {
	lossy bool
}

func newGSM7PackedCodec(opts []Option) *GSM7PackedCodec {
	return &GSM7PackedCodec{lossy: applyOptions(opts).lossy}
}

func (c *GSM7PackedCodec) Encode(s string) ([]byte, error) {
	codes, err := gsmToCodes(s, c.lossy)
	if err != nil {
		return nil, err
	}
	bits := len(codes) * 7
	numBytes := bits / 8
	if bits%8 != 0 {
		numBytes++
	}
	padded := append(codes, 0x00)
	result := make([]byte, numBytes)
	count := 0
	for index := 0; index < numBytes; index++ {
		shift := index % 7
		lb := padded[count] >> shift
		hb := (padded[count+1] << (7 - shift)) & 0xFF
		result[index] = lb + hb
		if shift == 6 {
			count += 2
		} else {
			count++
		}
	}
	return result, nil
}

func (c *GSM7PackedCodec) Decode(b []byte) (string, error) {
	var out []rune
	count := 0
	var last byte
	escaped := false
	for _, by := range b {
		mask := byte(0x7F) >> count
		outCode := ((by & mask) << count) + last
		last = by >> (7 - count)
		r, nowEscaped, ok := gsmDecodeChar(outCode, escaped)
		escaped = nowEscaped
		if !escaped {
			if ok {
				out = append(out, r)
			} else if c.lossy {
				out = append(out, rune(gsmQuestionMark))
			}
		}
		if count == 6 {
			r, nowEscaped, ok := gsmDecodeChar(last, escaped)
			escaped = nowEscaped
			if !escaped && ok {
				out = append(out, r)
			}
			last = 0
		}
		count = (count + 1) % 7
	}
	if escaped && c.lossy {
		out = append(out, gsmNoBreakSpace)
	}
	return string(out), nil
}

// IsGSM7Text reports whether every rune of s is representable in the GSM-7
// default alphabet or its extension table, without needing lossy fallback.
func IsGSM7Text(s string) bool {
	for _, r := range s {
		if _, ok := gsmBasicEncode[r]; ok {
			continue
		}
		if _, ok := gsmExtendedEncode[r]; ok {
			continue
		}
		return false
	}
	return true
}

// GSM7Length returns the number of septets text would occupy once encoded,
// counting extension-table characters as 2 septets per spec.md section 9.
func GSM7Length(s string) int {
	n := 0
	for _, r := range s {
		if _, ok := gsmBasicEncode[r]; ok {
			n++
			continue
		}
		if _, ok := gsmExtendedEncode[r]; ok {
			n += 2
			continue
		}
		n++ // will be replaced by '?' or fail at encode time
	}
	return n
}
