package pdu

import (
	"fmt"

	"github.com/relaysms/gosmpp/data"
)

// ErrNoResponse is returned by NewResponse for commands that have no
// response PDU (outbind, alert_notification) or that are themselves a
// response.
var ErrNoResponse = fmt.Errorf("gosmpp: command has no response pdu")

// NewResponse builds the empty response PDU paired with req, with its
// header's sequence_number copied from req and status set to status. The
// caller fills in any response-specific mandatory fields (message_id,
// system_id, ...) afterward.
func NewResponse(req PDU, status data.CommandStatus) (PDU, error) {
	if req.CommandID().IsResponse() {
		return nil, ErrNoResponse
	}
	respID := req.CommandID().ResponseID()
	if respID == 0 {
		return nil, ErrNoResponse
	}
	ctor, ok := constructors[respID]
	if !ok {
		return nil, ErrNoResponse
	}
	resp := ctor()
	h := resp.GetHeader()
	h.Sequence = req.GetHeader().Sequence
	h.Status = status
	resp.SetHeader(h)
	return resp, nil
}
