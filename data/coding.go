package data

import "fmt"

// DataCoding is the SMPP data_coding field selecting how short_message bytes
// are interpreted, per spec.md section 4.2.
type DataCoding uint8

const (
	GSM7             DataCoding = 0x00
	ASCII            DataCoding = 0x01
	OctetUnspecified DataCoding = 0x02
	Latin1           DataCoding = 0x03
	OctetUnspecified2 DataCoding = 0x04
	JIS              DataCoding = 0x05
	Cyrillic         DataCoding = 0x06
	LatinHebrew      DataCoding = 0x07
	UCS2BE           DataCoding = 0x08
	PictogramEncoding DataCoding = 0x09
	Iso2022JPMusic   DataCoding = 0x0A
	ExtendedKanjiJIS DataCoding = 0x0D
	KSC5601          DataCoding = 0x0E
)

func (d DataCoding) String() string {
	switch d {
	case GSM7:
		return "gsm7"
	case ASCII:
		return "ascii"
	case OctetUnspecified, OctetUnspecified2:
		return "octet_unspecified"
	case Latin1:
		return "latin1"
	case JIS:
		return "jis"
	case Cyrillic:
		return "cyrillic"
	case LatinHebrew:
		return "latin_hebrew"
	case UCS2BE:
		return "ucs2be"
	case PictogramEncoding:
		return "pictogram"
	case Iso2022JPMusic:
		return "iso2022jp_music"
	case ExtendedKanjiJIS:
		return "extended_kanji_jis"
	case KSC5601:
		return "euc_kr"
	default:
		return fmt.Sprintf("dcs(0x%02X)", uint8(d))
	}
}
