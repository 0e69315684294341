package gosmpp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/config"
	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/internal/testsmsc"
	"github.com/relaysms/gosmpp/pdu"
)

func testConfig() *config.Config {
	return &config.Config{
		SMSCHost:            "ignored",
		SMSCPort:            0,
		SystemID:            "esme",
		Password:            "secret",
		BindMode:            "transceiver",
		BindTimeout:         time.Second,
		RequestTimeout:      2 * time.Second,
		ReconnectInitial:    100 * time.Millisecond,
		ReconnectMax:        time.Second,
		ThrottleInitial:     time.Second,
		ThrottleMax:         30 * time.Second,
		MaxInFlight:         10,
		EnquireLinkInterval: 0,
	}
}

func TestESMESubmitRoundTrip(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	go func() { _ = fake.Serve() }()

	e := New(testConfig(), WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	submit := pdu.NewSubmitSM()
	submit.Source = data.Address{Number: "1000", Ton: data.TONInternational, Npi: data.NPIISDN}
	submit.Dest = data.Address{Number: "2000", Ton: data.TONInternational, Npi: data.NPIISDN}
	submit.ShortMessage = []byte("hello")

	resp, err := e.Submit(ctx, submit, "log-roundtrip", "")
	require.NoError(t, err)

	got, ok := resp.(*pdu.SubmitSMResp)
	require.True(t, ok)
	require.Equal(t, "fake-message-id", got.MessageID)
}

func TestESMESubmitRequiresLogID(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	go func() { _ = fake.Serve() }()

	e := New(testConfig(), WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	submit := pdu.NewSubmitSM()
	submit.ShortMessage = []byte("no log id")

	_, err := e.Submit(ctx, submit, "", "")
	require.ErrorIs(t, err, ErrMissingLogID)
}

func TestESMESubmitRejectedOnReceiverOnlyBind(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	go func() { _ = fake.Serve() }()

	cfg := testConfig()
	cfg.BindMode = "receiver"
	e := New(cfg, WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	submit := pdu.NewSubmitSM()
	submit.ShortMessage = []byte("should be rejected")

	_, err := e.Submit(ctx, submit, "log-receiver-only", "")
	require.ErrorIs(t, err, ErrNotBoundForSubmit)
}

func TestESMEReceivesDeliverSMViaBroker(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	go func() { _ = fake.Serve() }()

	e := New(testConfig(), WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	deliver := pdu.NewDeliverSM()
	deliver.Source = data.Address{Number: "2000"}
	deliver.Dest = data.Address{Number: "1000"}
	deliver.ShortMessage = []byte("inbound text")
	require.NoError(t, fake.SendDeliverSM(deliver))

	msg, err := e.Broker().Dequeue(ctx)
	require.NoError(t, err)
	got, ok := msg.PDU.(*pdu.DeliverSM)
	require.True(t, ok)
	require.Equal(t, []byte("inbound text"), got.ShortMessage)
}

func TestESMERequestTimeoutWhenSMSCNeverResponds(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	fake.Handle = func(conn net.Conn, p pdu.PDU) {} // swallow everything post-bind
	go func() { _ = fake.Serve() }()

	cfg := testConfig()
	cfg.RequestTimeout = 200 * time.Millisecond
	e := New(cfg, WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	submit := pdu.NewSubmitSM()
	submit.ShortMessage = []byte("will time out")

	_, err := e.Submit(ctx, submit, "log-timeout", "")
	require.ErrorIs(t, err, ErrRequestTimeout)
}

func TestESMEReplysGenericNackOnMalformedFrame(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()

	nacks := make(chan *pdu.GenericNack, 1)
	fake.Handle = func(conn net.Conn, p pdu.PDU) {
		switch req := p.(type) {
		case *pdu.GenericNack:
			nacks <- req
		case *pdu.SubmitSM:
			resp, err := pdu.NewResponse(req, data.ESME_ROK)
			if err == nil {
				if sr, ok := resp.(*pdu.SubmitSMResp); ok {
					sr.MessageID = "fake-message-id"
				}
				_, _ = conn.Write(pdu.Encode(resp))
			}
		}
	}
	go func() { _ = fake.Serve() }()

	e := New(testConfig(), WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	// A 12-byte frame: command_length(12) < the 16-byte header itself, per
	// spec.md end-to-end scenario 4.
	require.NoError(t, fake.WriteRaw([]byte{0x00, 0x00, 0x00, 0x0C, 0, 0, 0, 0, 0, 0, 0, 0}))

	select {
	case n := <-nacks:
		require.Equal(t, data.ESME_RINVCMDLEN, n.GetHeader().Status)
	case <-time.After(time.Second):
		t.Fatal("expected a generic_nack in response to the malformed frame")
	}

	// The session must still be usable after the bad frame.
	submit := pdu.NewSubmitSM()
	submit.ShortMessage = []byte("still alive")
	resp, err := e.Submit(ctx, submit, "log-still-alive", "")
	require.NoError(t, err)
	got, ok := resp.(*pdu.SubmitSMResp)
	require.True(t, ok)
	require.Equal(t, "fake-message-id", got.MessageID)
}

func TestESMECountsOrphanResponse(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	go func() { _ = fake.Serve() }()

	e := New(testConfig(), WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	require.EqualValues(t, 0, e.OrphanResponses())

	stray := pdu.NewSubmitSMResp()
	header := stray.GetHeader()
	header.Sequence = 999
	header.Status = data.ESME_ROK
	stray.SetHeader(header)
	require.NoError(t, fake.Send(stray))

	require.Eventually(t, func() bool {
		return e.OrphanResponses() == 1
	}, time.Second, 10*time.Millisecond)
}

// TestESMECorrelatesDeliveryReceiptToLogID covers spec.md section 8's
// "Receipt correlation" testable property end to end: a submit_sm tagged
// with a log_id, acknowledged with an SMSC message_id, is later matched
// back up from an unrelated deliver_sm receipt carrying that message_id,
// so the broker message surfaces the originating log_id.
func TestESMECorrelatesDeliveryReceiptToLogID(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	fake.Handle = func(conn net.Conn, p pdu.PDU) {
		req, ok := p.(*pdu.SubmitSM)
		if !ok {
			return
		}
		resp, err := pdu.NewResponse(req, data.ESME_ROK)
		if err != nil {
			return
		}
		if sr, ok := resp.(*pdu.SubmitSMResp); ok {
			sr.MessageID = "smsc-42"
		}
		_, _ = conn.Write(pdu.Encode(resp))
	}
	go func() { _ = fake.Serve() }()

	e := New(testConfig(), WithDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		return esmeConn, nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Connect(ctx))
	defer e.Close()

	submit := pdu.NewSubmitSM()
	submit.Dest = data.Address{Number: "2000"}
	submit.ShortMessage = []byte("tracked message")

	resp, err := e.Submit(ctx, submit, "log-receipt-1", "campaign=42")
	require.NoError(t, err)
	got, ok := resp.(*pdu.SubmitSMResp)
	require.True(t, ok)
	require.Equal(t, "smsc-42", got.MessageID)

	receipt := pdu.NewDeliverSM()
	receipt.ESMClass = 0x04 // bits 2-5 == 0b0001: delivery receipt
	receipt.Source = data.Address{Number: "2000"}
	receipt.Dest = data.Address{Number: "1000"}
	receipt.ShortMessage = []byte("id:smsc-42 sub:001 dlvrd:001 submit date:2601010000 done date:2601010001 stat:DELIVRD err:000 text:tracked message")
	require.NoError(t, fake.SendDeliverSM(receipt))

	msg, err := e.Broker().Dequeue(ctx)
	require.NoError(t, err)
	deliver, ok := msg.PDU.(*pdu.DeliverSM)
	require.True(t, ok)
	require.True(t, deliver.IsReceipt())
	require.Equal(t, "log-receipt-1", msg.LogID)
}
