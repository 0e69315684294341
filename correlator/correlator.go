// Package correlator implements the matching layer between outbound
// requests and their responses (by sequence_number, within a bounded
// window) and between submitted messages and their later delivery
// receipts (by SMSC-assigned message id), per spec.md section 4.3.
package correlator

import (
	"context"
	"errors"
	"time"

	"github.com/relaysms/gosmpp/data"
	"github.com/relaysms/gosmpp/pdu"
)

// ErrWindowFull is returned by Put when the in-flight window is saturated.
var ErrWindowFull = errors.New("gosmpp: window full")

// ErrStorage wraps failures from a delivery-record store, per spec.md
// section 4.3 ("put_delivery/get_delivery may fail with StorageError").
var ErrStorage = errors.New("gosmpp: correlator storage error")

// Pending is a short-lived, in-flight request awaiting its response, per
// spec.md section 3.
type Pending struct {
	Sequence    uint32
	CommandID   data.CommandID
	LogID       string
	ExtraData   string
	Deadline    time.Time
	Waker       chan Result
}

// Result is delivered to a Pending's Waker exactly once: either the
// matching response PDU, or an error (RequestTimeout, SessionClosed, ...).
type Result struct {
	Response pdu.PDU
	Err      error
}

// DeliveryRecord is a long-lived submit->receipt correlation record, per
// spec.md section 3. It has no imposed TTL; eviction is user-driven.
type DeliveryRecord struct {
	SMSCMessageID string
	LogID         string
	ExtraData     string
	SubmittedAt   time.Time
}

// Correlator is the capability surface spec.md section 4.3 defines.
// Implementations must serialize access to their own state behind a single
// mutex, per spec.md section 5's single-mutex-over-the-correlator
// discipline; callers never need their own external lock.
type Correlator interface {
	// NextSequence returns the next sequence number, wrapping
	// 0x7FFFFFFF -> 1 (0 is reserved), per spec.md section 3.
	NextSequence() uint32

	// Put registers an in-flight request, acquiring a window slot. It
	// returns ErrWindowFull if max_in_flight outstanding requests are
	// already registered.
	Put(ctx context.Context, p Pending) error

	// Get removes and returns the Pending for a sequence number, releasing
	// its window slot. The second return value is false if no such
	// pending exists (already matched, expired, or never registered).
	Get(sequence uint32) (Pending, bool)

	// PutDelivery stores a receipt-awaiting record, keyed by the
	// SMSC-assigned message id from a successful submit_sm_resp.
	PutDelivery(ctx context.Context, rec DeliveryRecord) error

	// GetDelivery removes and returns the delivery record for an SMSC
	// message id, if one is awaiting a receipt.
	GetDelivery(ctx context.Context, smscMessageID string) (DeliveryRecord, bool, error)

	// Expire returns every Pending whose deadline is at or before now,
	// removing them from the window (releasing their slots).
	Expire(now time.Time) []Pending

	// Outstanding reports the current count of in-flight requests, for
	// observability and the window-discipline testable property.
	Outstanding() int
}
