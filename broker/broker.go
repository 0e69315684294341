// Package broker provides the queue capability spec.md section 4.4 and 6
// describe: a place for received, not-yet-dispatched PDUs (typically
// deliver_sm) to wait for a consumer, decoupling the reader goroutine from
// whatever application code processes inbound messages. Grounded on
// original_source/aiosmpplib's broker.py (AbstractBroker/SimpleBroker).
package broker

import (
	"context"
	"time"

	"github.com/relaysms/gosmpp/pdu"
)

// Message is an inbound PDU paired with its arrival time, queued for
// application-side processing. LogID is populated when the PDU is a
// delivery receipt the correlator matched back to the log_id its
// originating submit_sm was tagged with (empty otherwise), per spec.md
// section 4.3/4.4's receipt-correlation contract.
type Message struct {
	PDU        pdu.PDU
	ReceivedAt time.Time
	LogID      string
}

// Broker decouples PDU receipt from PDU processing. Enqueue must not block
// the caller indefinitely on a full queue without honoring ctx; Dequeue
// blocks until a message is available or ctx is done.
type Broker interface {
	Enqueue(ctx context.Context, msg Message) error
	Dequeue(ctx context.Context) (Message, error)
}
