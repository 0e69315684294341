package pdu_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

func TestSubmitSMRoundTrip(t *testing.T) {
	p := pdu.NewSubmitSM()
	p.Header.Sequence = 42
	p.ServiceType = ""
	p.Source = data.Address{Number: "12345", Ton: data.TONInternational, Npi: data.NPIISDN}
	p.Dest = data.Address{Number: "98765", Ton: data.TONInternational, Npi: data.NPIISDN}
	p.DataCoding = data.GSM7
	p.ShortMessage = []byte("Hello")

	encoded := pdu.Encode(p)
	decoded, consumed, err := pdu.DecodeBytes(encoded)
	require.NoError(t, err)
	require.Equal(t, len(encoded), consumed)

	got, ok := decoded.(*pdu.SubmitSM)
	require.True(t, ok)
	require.Equal(t, p.Source, got.Source)
	require.Equal(t, p.Dest, got.Dest)
	require.Equal(t, p.ShortMessage, got.ShortMessage)
	require.Equal(t, uint32(42), got.GetHeader().Sequence)
}

func TestFrameIndependence(t *testing.T) {
	p := pdu.NewEnquireLink()
	p.Header.Sequence = 7
	encoded := pdu.Encode(p)
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	decoded, consumed, err := pdu.DecodeBytes(append(append([]byte{}, encoded...), garbage...))
	require.NoError(t, err)
	require.Equal(t, len(encoded), consumed)
	_, ok := decoded.(*pdu.EnquireLink)
	require.True(t, ok)
}

func TestLengthSelfConsistency(t *testing.T) {
	p := pdu.NewSubmitSM()
	p.ShortMessage = []byte("Length check")
	encoded := pdu.Encode(p)
	require.Len(t, encoded, len(encoded))

	length := uint32(encoded[0])<<24 | uint32(encoded[1])<<16 | uint32(encoded[2])<<8 | uint32(encoded[3])
	require.Equal(t, uint32(len(encoded)), length)
}

func TestLongMessageUsesPayloadTLV(t *testing.T) {
	p := pdu.NewSubmitSM()
	long := make([]byte, 300)
	for i := range long {
		long[i] = byte('A' + i%26)
	}
	p.ShortMessage = long

	encoded := pdu.Encode(p)
	decoded, _, err := pdu.DecodeBytes(encoded)
	require.NoError(t, err)

	got := decoded.(*pdu.SubmitSM)
	require.Equal(t, long, got.ShortMessage)
	payload, ok := got.TLVs.Get(pdu.TagMessagePayload)
	require.True(t, ok)
	require.Equal(t, long, payload)
}

func TestMalformedShortFrame(t *testing.T) {
	_, _, err := pdu.DecodeBytes([]byte{0x00, 0x00, 0x00, 0x0C})
	require.Error(t, err)
}

func TestUnknownCommandWithNonOKStatusDecodesAsNack(t *testing.T) {
	n := pdu.NewGenericNack(data.ESME_RINVCMDID)
	n.Header.ID = 0x12345678
	n.Header.Sequence = 1
	encoded := pdu.Encode(n)
	decoded, _, err := pdu.DecodeBytes(encoded)
	require.NoError(t, err)
	_, ok := decoded.(*pdu.GenericNack)
	require.True(t, ok)
}
