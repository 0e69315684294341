package correlator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/correlator"
	"github.com/relaysms/gosmpp/data"
)

func TestNextSequenceStartsAboveReservedZero(t *testing.T) {
	m := correlator.NewMemory(10)
	for i := uint32(1); i < 5; i++ {
		require.Equal(t, i, m.NextSequence())
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	m := correlator.NewMemory(10)
	seq := m.NextSequence()
	waker := make(chan correlator.Result, 1)
	err := m.Put(context.Background(), correlator.Pending{
		Sequence:  seq,
		CommandID: data.SubmitSMID,
		Waker:     waker,
	})
	require.NoError(t, err)
	require.Equal(t, 1, m.Outstanding())

	p, ok := m.Get(seq)
	require.True(t, ok)
	require.Equal(t, seq, p.Sequence)
	require.Equal(t, 0, m.Outstanding())

	_, ok = m.Get(seq)
	require.False(t, ok)
}

func TestWindowRejectsBeyondCapacity(t *testing.T) {
	m := correlator.NewMemory(2)
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, correlator.Pending{Sequence: 1}))
	require.NoError(t, m.Put(ctx, correlator.Pending{Sequence: 2}))
	err := m.Put(ctx, correlator.Pending{Sequence: 3})
	require.ErrorIs(t, err, correlator.ErrWindowFull)
}

func TestGetReleasesWindowSlot(t *testing.T) {
	m := correlator.NewMemory(1)
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, correlator.Pending{Sequence: 1}))
	require.ErrorIs(t, m.Put(ctx, correlator.Pending{Sequence: 2}), correlator.ErrWindowFull)

	_, ok := m.Get(1)
	require.True(t, ok)
	require.NoError(t, m.Put(ctx, correlator.Pending{Sequence: 2}))
}

func TestExpireReleasesSlotsAndReturnsPastDeadline(t *testing.T) {
	m := correlator.NewMemory(10)
	ctx := context.Background()
	past := time.Now().Add(-time.Second)
	future := time.Now().Add(time.Hour)

	require.NoError(t, m.Put(ctx, correlator.Pending{Sequence: 1, Deadline: past}))
	require.NoError(t, m.Put(ctx, correlator.Pending{Sequence: 2, Deadline: future}))

	expired := m.Expire(time.Now())
	require.Len(t, expired, 1)
	require.Equal(t, uint32(1), expired[0].Sequence)
	require.Equal(t, 1, m.Outstanding())
}

func TestDeliveryRecordRoundTrip(t *testing.T) {
	m := correlator.NewMemory(10)
	ctx := context.Background()
	rec := correlator.DeliveryRecord{SMSCMessageID: "abc123", LogID: "log-1"}
	require.NoError(t, m.PutDelivery(ctx, rec))

	got, ok, err := m.GetDelivery(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "log-1", got.LogID)

	_, ok, err = m.GetDelivery(ctx, "abc123")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutDeliveryRejectsEmptyID(t *testing.T) {
	m := correlator.NewMemory(10)
	err := m.PutDelivery(context.Background(), correlator.DeliveryRecord{})
	require.ErrorIs(t, err, correlator.ErrStorage)
}
