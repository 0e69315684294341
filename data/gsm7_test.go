package data_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/data"
)

func TestGSM7RoundTrip(t *testing.T) {
	codec, err := data.CodecFor(data.GSM7)
	require.NoError(t, err)

	encoded, err := codec.Encode("Hello, World! @£$")
	require.NoError(t, err)
	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, "Hello, World! @£$", decoded)
}

func TestGSM7ExtensionTableRoundTrip(t *testing.T) {
	codec, err := data.CodecFor(data.GSM7)
	require.NoError(t, err)

	text := "price: 10€ [a|b] {c}~d\\e"
	encoded, err := codec.Encode(text)
	require.NoError(t, err)
	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, text, decoded)
}

func TestGSM7LengthCountsExtensionAsTwo(t *testing.T) {
	require.Equal(t, 1, data.GSM7Length("A"))
	require.Equal(t, 2, data.GSM7Length("€"))
	require.Equal(t, 3, data.GSM7Length("A€"))
}

func TestGSM7EncodeStrictFailsOnUnsupported(t *testing.T) {
	codec, err := data.CodecFor(data.GSM7)
	require.NoError(t, err)
	_, err = codec.Encode("héllo 中文")
	require.Error(t, err)
}

func TestGSM7EncodeLossySubstitutes(t *testing.T) {
	codec, err := data.CodecFor(data.GSM7, data.WithLossy())
	require.NoError(t, err)
	encoded, err := codec.Encode("中")
	require.NoError(t, err)
	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, "?", decoded)
}

func TestGSM7PackedRoundTrip(t *testing.T) {
	packed := &data.GSM7PackedCodec{}
	text := "Hello World, this is a test message"
	encoded, err := packed.Encode(text)
	require.NoError(t, err)
	decoded, err := packed.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, text, decoded)
}

func TestUCS2RoundTrip(t *testing.T) {
	codec, err := data.CodecFor(data.UCS2BE)
	require.NoError(t, err)
	text := "héllo 中文"
	encoded, err := codec.Encode(text)
	require.NoError(t, err)
	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, text, decoded)
}

func TestParseReceipt(t *testing.T) {
	text := "id:1234567890 sub:001 dlvrd:001 submit date:2501011200 done date:2501011201 stat:DELIVRD err:000 text:Hello"
	fields := data.ParseReceipt(text)
	require.Equal(t, "1234567890", fields["id"])
	require.Equal(t, "DELIVRD", fields["stat"])
	require.Equal(t, "2501011200", fields["submit date"])
	require.Equal(t, "2501011201", fields["done date"])
}

func TestParseReceiptMissingFieldsOmitted(t *testing.T) {
	fields := data.ParseReceipt("id:42 stat:DELIVRD")
	require.Equal(t, "42", fields["id"])
	require.Equal(t, "DELIVRD", fields["stat"])
	_, ok := fields["err"]
	require.False(t, ok)
}
