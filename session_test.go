package gosmpp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/internal/testsmsc"
	"github.com/relaysms/gosmpp/pdu"
)

func pipeDialer(conn net.Conn) Dialer {
	return func(ctx context.Context, addr string) (net.Conn, error) {
		return conn, nil
	}
}

func testClientSettings() clientSettings {
	return clientSettings{
		ReadTimeout:     time.Second,
		ThrottleInitial: time.Second,
		ThrottleMax:     30 * time.Second,
	}
}

func TestTransceiverSessionBindsAndSubmits(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	go func() { _ = fake.Serve() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := NewTransceiverSession(ctx, pipeDialer(esmeConn), time.Second,
		Auth{SMSC: "ignored:0", SystemID: "esme", Password: "secret"},
		testClientSettings(), nil)
	require.NoError(t, err)
	defer sess.Close()

	require.Equal(t, "faketest", sess.Client().SystemID())

	submit := pdu.NewSubmitSM()
	submit.Source = data.Address{Number: "1000", Ton: data.TONInternational, Npi: data.NPIISDN}
	submit.Dest = data.Address{Number: "2000", Ton: data.TONInternational, Npi: data.NPIISDN}
	submit.ShortMessage = []byte("hello")

	require.NoError(t, sess.Client().Submit(submit))
}

func TestSessionClosePerformsUnbind(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	unbinds := make(chan struct{}, 1)
	fake.Handle = func(conn net.Conn, p pdu.PDU) {
		if _, ok := p.(*pdu.Unbind); ok {
			select {
			case unbinds <- struct{}{}:
			default:
			}
		}
	}
	go func() { _ = fake.Serve() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := NewTransceiverSession(ctx, pipeDialer(esmeConn), time.Second,
		Auth{SMSC: "ignored:0", SystemID: "esme", Password: "secret"},
		testClientSettings(), nil)
	require.NoError(t, err)

	require.NoError(t, sess.Close())

	select {
	case <-unbinds:
	case <-time.After(time.Second):
		t.Fatal("expected the fake SMSC to receive an unbind on Close")
	}
}

func TestBindRejectedReturnsError(t *testing.T) {
	esmeConn, fake := testsmsc.NewPipe()
	fake.BindStatus = data.ESME_RINVPASWD
	go func() { _ = fake.Serve() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewTransceiverSession(ctx, pipeDialer(esmeConn), time.Second,
		Auth{SMSC: "ignored:0", SystemID: "esme", Password: "wrong"},
		testClientSettings(), nil)
	require.Error(t, err)

	var rejected *BindRejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, data.ESME_RINVPASWD, rejected.Status)
}
