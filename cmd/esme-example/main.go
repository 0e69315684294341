// Command esme-example wires an ESME together from environment
// configuration, submits one message, prints inbound deliveries, and
// runs until interrupted. Grounded on the overall bootstrap shape of
// oarkflow-smpp-server/examples/simple-client/main.go (load config,
// construct client, send, wait for signal, disconnect) — no types
// imported from it, only its main-function structure.
package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	gosmpp "github.com/relaysms/gosmpp"
	"github.com/relaysms/gosmpp/config"
	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	esme := gosmpp.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := esme.Connect(ctx); err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer esme.Close()

	go deliverLoop(ctx, esme)

	base := pdu.NewSubmitSM()
	base.Source = data.Address{Number: "12345", Ton: data.TONInternational, Npi: data.NPIISDN}
	base.Dest = data.Address{Number: "67890", Ton: data.TONInternational, Npi: data.NPIISDN}

	segments, err := gosmpp.BuildSubmitSegments(base, "Hello from the example ESME", 1, true)
	if err != nil {
		log.Fatalf("build submit segments: %v", err)
	}
	logID := uuid.NewString()
	for _, submit := range segments {
		resp, err := esme.Submit(ctx, submit, logID, "")
		if err != nil {
			slog.Error("submit failed", "log_id", logID, "error", err)
		} else if sr, ok := resp.(*pdu.SubmitSMResp); ok {
			slog.Info("submit acknowledged", "log_id", logID, "message_id", sr.MessageID)
		}
	}

	<-ctx.Done()
	slog.Info("shutting down")
}

func deliverLoop(ctx context.Context, esme *gosmpp.ESME) {
	for {
		msg, err := esme.Broker().Dequeue(ctx)
		if err != nil {
			return
		}
		d, ok := msg.PDU.(*pdu.DeliverSM)
		if !ok {
			continue
		}
		if d.IsReceipt() {
			id, fields := d.ReceiptMessageID()
			slog.Info("delivery receipt", "message_id", id, "stat", fields["stat"], "log_id", msg.LogID)
		} else {
			slog.Info("inbound message", "from", d.Source.Number, "text", string(d.ShortMessage))
		}
	}
}
