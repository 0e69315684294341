package data

import (
	"errors"
	"fmt"
)

// TON is the Type-of-Number of an SMPP address.
type TON uint8

const (
	TONUnknown          TON = 0x00
	TONInternational    TON = 0x01
	TONNational         TON = 0x02
	TONNetworkSpecific  TON = 0x03
	TONSubscriberNumber TON = 0x04
	TONAlphanumeric     TON = 0x05
	TONAbbreviated      TON = 0x06
)

func (t TON) String() string {
	switch t {
	case TONUnknown:
		return "unknown"
	case TONInternational:
		return "international"
	case TONNational:
		return "national"
	case TONNetworkSpecific:
		return "network_specific"
	case TONSubscriberNumber:
		return "subscriber_number"
	case TONAlphanumeric:
		return "alphanumeric"
	case TONAbbreviated:
		return "abbreviated"
	default:
		return fmt.Sprintf("ton(%d)", uint8(t))
	}
}

// NPI is the Numbering-Plan-Indicator of an SMPP address.
type NPI uint8

const (
	NPIUnknown     NPI = 0x00
	NPIISDN        NPI = 0x01
	NPIData        NPI = 0x03
	NPITelex       NPI = 0x04
	NPILandMobile  NPI = 0x06
	NPINational    NPI = 0x08
	NPIPrivate     NPI = 0x09
	NPIERMES       NPI = 0x0A
	NPIInternet    NPI = 0x0E
	NPIWAPClientID NPI = 0x12
)

func (n NPI) String() string {
	switch n {
	case NPIUnknown:
		return "unknown"
	case NPIISDN:
		return "isdn"
	case NPIData:
		return "data"
	case NPITelex:
		return "telex"
	case NPILandMobile:
		return "land_mobile"
	case NPINational:
		return "national"
	case NPIPrivate:
		return "private"
	case NPIERMES:
		return "ermes"
	case NPIInternet:
		return "internet"
	case NPIWAPClientID:
		return "wap_client_id"
	default:
		return fmt.Sprintf("npi(%d)", uint8(n))
	}
}

// MaxAddressLength is the maximum number of ASCII digits in an SMPP address,
// per spec.md's PhoneNumber invariant (up to 20 digits, NUL-terminated on
// the wire so the c_octet_string field itself is 21 bytes).
const MaxAddressLength = 20

// ErrEmptyAddress is returned by NewAddress when given an empty number,
// whatever the TON; spec.md requires a non-empty address.
var ErrEmptyAddress = errors.New("gosmpp: address must be non-empty")

// Address is the PhoneNumber triple from spec.md section 3: an ASCII number
// together with its type-of-number and numbering-plan-indicator.
type Address struct {
	Number string
	Ton    TON
	Npi    NPI
}

// NewAddress builds an Address, validating the invariants from spec.md
// section 3 (non-empty, max length).
func NewAddress(number string, ton TON, npi NPI) (Address, error) {
	if number == "" {
		return Address{}, ErrEmptyAddress
	}
	if len(number) > MaxAddressLength {
		return Address{}, fmt.Errorf("gosmpp: address %q exceeds %d characters", number, MaxAddressLength)
	}
	return Address{Number: number, Ton: ton, Npi: npi}, nil
}
