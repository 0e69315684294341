package gosmpp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

func TestBuildSubmitSegmentsSingleGSM7(t *testing.T) {
	base := pdu.NewSubmitSM()
	base.Dest = data.Address{Number: "2000"}

	segs, err := BuildSubmitSegments(base, "hello world", 7, false)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, data.GSM7, segs[0].DataCoding)
	require.Zero(t, segs[0].ESMClass&pdu.ESMClassUDHI)
}

func TestBuildSubmitSegmentsMultipartGSM7(t *testing.T) {
	base := pdu.NewSubmitSM()
	base.Dest = data.Address{Number: "2000"}
	text := strings.Repeat("a", 400)

	segs, err := BuildSubmitSegments(base, text, 7, false)
	require.NoError(t, err)
	require.Greater(t, len(segs), 1)

	for i, seg := range segs {
		require.NotZero(t, seg.ESMClass&pdu.ESMClassUDHI)
		udh, rest, err := seg.UDH()
		require.NoError(t, err)
		require.NotNil(t, udh.Concat)
		require.EqualValues(t, 7, udh.Concat.Reference)
		require.EqualValues(t, len(segs), udh.Concat.TotalSegments)
		require.EqualValues(t, i+1, udh.Concat.SegmentNumber)
		require.NotEmpty(t, rest)
	}
}

func TestBuildSubmitSegmentsUCS2(t *testing.T) {
	base := pdu.NewSubmitSM()
	base.Dest = data.Address{Number: "2000"}

	segs, err := BuildSubmitSegments(base, "héllo 中文", 3, false)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, data.UCS2BE, segs[0].DataCoding)
}
