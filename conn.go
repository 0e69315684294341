package gosmpp

import (
	"net"
	"time"
)

// Conn wraps a bound net.Conn with the system_id the SMSC returned in its
// bind_resp, and read/write timeout helpers. Grounded on the call shape
// the teacher's reader.go/writer.go/client.go expect from a "*Connection"
// (SetReadTimeout/SetWriteTimeout/Write/Close/SystemID), whose own
// definition was not present in the copied snapshot.
type Conn struct {
	net.Conn
	systemID string
}

// NewConn wraps conn, recording the system_id from a successful bind.
func NewConn(conn net.Conn, systemID string) *Conn {
	return &Conn{Conn: conn, systemID: systemID}
}

// SystemID returns the system_id reported by the SMSC's bind_resp.
func (c *Conn) SystemID() string { return c.systemID }

// SetReadTimeout sets the read deadline to now+d, or clears it if d<=0.
func (c *Conn) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return c.SetReadDeadline(time.Time{})
	}
	return c.SetReadDeadline(time.Now().Add(d))
}

// SetWriteTimeout sets the write deadline to now+d, or clears it if d<=0.
func (c *Conn) SetWriteTimeout(d time.Duration) error {
	if d <= 0 {
		return c.SetWriteDeadline(time.Time{})
	}
	return c.SetWriteDeadline(time.Now().Add(d))
}
