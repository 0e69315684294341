package broker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/broker"
	"github.com/relaysms/gosmpp/pdu"
)

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	b := broker.NewMemory(4)
	ctx := context.Background()
	msg := broker.Message{PDU: pdu.NewEnquireLink(), ReceivedAt: time.Now()}

	require.NoError(t, b.Enqueue(ctx, msg))
	got, err := b.Dequeue(ctx)
	require.NoError(t, err)
	require.Equal(t, msg.PDU, got.PDU)
}

func TestDequeueBlocksUntilEnqueue(t *testing.T) {
	b := broker.NewMemory(1)
	done := make(chan struct{})
	go func() {
		_, err := b.Dequeue(context.Background())
		require.NoError(t, err)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, b.Enqueue(context.Background(), broker.Message{PDU: pdu.NewEnquireLink()}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dequeue did not unblock after enqueue")
	}
}

func TestCloseStopsNewEnqueues(t *testing.T) {
	b := broker.NewMemory(1)
	b.Close()
	err := b.Enqueue(context.Background(), broker.Message{PDU: pdu.NewEnquireLink()})
	require.ErrorIs(t, err, broker.ErrClosed)
}

func TestDequeueRespectsContextCancellation(t *testing.T) {
	b := broker.NewMemory(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := b.Dequeue(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
