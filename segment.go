package gosmpp

import (
	"fmt"
	"unicode/utf16"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

// Segment size limits per spec.md section 9's multipart note and
// original_source/aiosmpplib/utils.py's split_sms_udh constants: a
// concatenated-message UDH (8-bit reference) costs 7 septets or 6 octets
// out of the single-segment budget.
const (
	maxSingleSeptets = 160
	maxConcatSeptets = maxSingleSeptets - 7
	maxSingleOctets  = 140
	maxConcatOctets  = maxSingleOctets - 6
)

// BuildSubmitSegments splits text into one or more submit_sm PDUs cloned
// from base (which should already carry Source/Dest/service_type/
// registered_delivery and any other fields this send needs - only
// data_coding, esm_class's UDHI bit, and short_message are set here),
// picking GSM-7 (bit-packed, per spec.md section 4.2's "packed or unpacked
// per data_coding") when text fits the default alphabet and UCS-2BE
// otherwise. A text that doesn't fit one segment is prefixed with a
// concatenated-message UDH built by pdu.BuildConcatUDH on every segment,
// grounded on original_source/aiosmpplib/utils.py's split_sms_udh. lossy
// is forwarded to the underlying data.Codec.
func BuildSubmitSegments(base *pdu.SubmitSM, text string, reference uint8, lossy bool) ([]*pdu.SubmitSM, error) {
	var opts []data.Option
	if lossy {
		opts = append(opts, data.WithLossy())
	}

	if data.IsGSM7Text(text) {
		return buildGSM7Segments(base, text, reference, opts)
	}
	return buildUCS2Segments(base, text, reference, opts)
}

func buildGSM7Segments(base *pdu.SubmitSM, text string, reference uint8, opts []data.Option) ([]*pdu.SubmitSM, error) {
	codec, err := data.CodecFor(data.GSM7, append(opts, data.WithPacked())...)
	if err != nil {
		return nil, err
	}

	chunks := []string{text}
	if data.GSM7Length(text) > maxSingleSeptets {
		chunks = splitBySeptets(text, maxConcatSeptets)
	}
	return encodeSegments(base, data.GSM7, codec, chunks, reference)
}

func buildUCS2Segments(base *pdu.SubmitSM, text string, reference uint8, opts []data.Option) ([]*pdu.SubmitSM, error) {
	codec, err := data.CodecFor(data.UCS2BE, opts...)
	if err != nil {
		return nil, err
	}

	units := utf16.Encode([]rune(text))
	chunks := []string{text}
	if len(units)*2 > maxSingleOctets {
		chunks = splitByUTF16Units(units, maxConcatOctets/2)
	}
	return encodeSegments(base, data.UCS2BE, codec, chunks, reference)
}

// splitBySeptets breaks text into the fewest runes-aligned chunks whose
// packed septet length stays within maxSeptets, so a GSM-7 extension-table
// character's escape/value pair is never split across segments.
func splitBySeptets(text string, maxSeptets int) []string {
	var out []string
	var cur []rune
	for _, r := range text {
		candidate := append(append([]rune{}, cur...), r)
		if len(cur) > 0 && data.GSM7Length(string(candidate)) > maxSeptets {
			out = append(out, string(cur))
			cur = []rune{r}
		} else {
			cur = candidate
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// splitByUTF16Units breaks a UTF-16BE code-unit stream into chunks of at
// most maxUnits units, pulling a lone leading surrogate back into the next
// chunk rather than splitting a surrogate pair.
func splitByUTF16Units(units []uint16, maxUnits int) []string {
	var out []string
	for start := 0; start < len(units); {
		end := start + maxUnits
		if end >= len(units) {
			end = len(units)
		} else if units[end-1] >= 0xD800 && units[end-1] <= 0xDBFF {
			end--
		}
		out = append(out, string(utf16.Decode(units[start:end])))
		start = end
	}
	return out
}

func encodeSegments(base *pdu.SubmitSM, dcs data.DataCoding, codec data.Codec, chunks []string, reference uint8) ([]*pdu.SubmitSM, error) {
	segments := make([]*pdu.SubmitSM, 0, len(chunks))
	for i, chunk := range chunks {
		encoded, err := codec.Encode(chunk)
		if err != nil {
			return nil, fmt.Errorf("gosmpp: encoding segment %d/%d: %w", i+1, len(chunks), err)
		}

		seg := *base
		seg.DataCoding = dcs
		if len(chunks) > 1 {
			seg.ESMClass |= pdu.ESMClassUDHI
			seg.ShortMessage = append(pdu.BuildConcatUDH(reference, uint8(len(chunks)), uint8(i+1)), encoded...)
		} else {
			seg.ShortMessage = encoded
		}
		segments = append(segments, &seg)
	}
	return segments, nil
}
