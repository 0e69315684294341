package broker

import (
	"context"
	"errors"
)

// ErrClosed is returned by Enqueue/Dequeue once Close has been called.
var ErrClosed = errors.New("gosmpp: broker closed")

// Memory is a bounded in-process Broker backed by a buffered channel,
// grounded on original_source/aiosmpplib's SimpleBroker (asyncio.Queue
// there, a buffered Go channel here).
type Memory struct {
	queue  chan Message
	closed chan struct{}
}

// NewMemory constructs a Memory broker holding up to capacity messages
// before Enqueue blocks.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	return &Memory{
		queue:  make(chan Message, capacity),
		closed: make(chan struct{}),
	}
}

func (m *Memory) Enqueue(ctx context.Context, msg Message) error {
	select {
	case <-m.closed:
		return ErrClosed
	default:
	}
	select {
	case m.queue <- msg:
		return nil
	case <-m.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Memory) Dequeue(ctx context.Context) (Message, error) {
	select {
	case msg := <-m.queue:
		return msg, nil
	case <-m.closed:
		select {
		case msg := <-m.queue:
			return msg, nil
		default:
			return Message{}, ErrClosed
		}
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// Close stops accepting new messages; queued messages already buffered can
// still be drained by Dequeue until empty.
func (m *Memory) Close() {
	select {
	case <-m.closed:
	default:
		close(m.closed)
	}
}
