// Package hook provides the observation capability spec.md sections 4.4
// and 6 describe: a way for callers to observe PDU traffic and send
// failures without influencing the session's own control flow. Grounded on
// original_source/aiosmpplib's hook.py (AbstractHook/SimpleHook) — none of
// its methods may return an error, matching the Python base class's
// contract that hook failures never interrupt sending or receiving.
package hook

import (
	"context"

	"github.com/relaysms/gosmpp/pdu"
)

// Hook observes PDU traffic. Implementations must not block the session
// for long; Sending/Received/SendError are invoked synchronously from the
// session's goroutines.
type Hook interface {
	// Sending is called immediately before a PDU is written to the wire.
	Sending(ctx context.Context, p pdu.PDU)

	// Received is called immediately after a PDU is parsed off the wire.
	Received(ctx context.Context, p pdu.PDU)

	// SendError is called when writing or encoding a PDU fails.
	SendError(ctx context.Context, p pdu.PDU, err error)
}
