package hook

import (
	"context"
	"log/slog"

	"github.com/relaysms/gosmpp/internal/logging"
	"github.com/relaysms/gosmpp/pdu"
)

// Logging is the reference Hook: it records every Sending/Received event
// at logging.LevelTrace and every SendError at slog.LevelWarn, grounded on
// original_source/aiosmpplib's SimpleHook (which does exactly this over
// Python's logging module at DEBUG/TRACE-equivalent levels).
type Logging struct {
	logger *slog.Logger
}

// NewLogging builds a Logging hook over logger, or over slog.Default() if
// logger is nil.
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging{logger: logger}
}

func (h *Logging) Sending(ctx context.Context, p pdu.PDU) {
	h.logger.Log(ctx, logging.LevelTrace, "sending pdu",
		"command_id", p.CommandID().String(),
		"sequence_number", p.GetHeader().Sequence)
}

func (h *Logging) Received(ctx context.Context, p pdu.PDU) {
	h.logger.Log(ctx, logging.LevelTrace, "received pdu",
		"command_id", p.CommandID().String(),
		"sequence_number", p.GetHeader().Sequence)
}

func (h *Logging) SendError(ctx context.Context, p pdu.PDU, err error) {
	cmd := "unknown"
	var seq uint32
	if p != nil {
		cmd = p.CommandID().String()
		seq = p.GetHeader().Sequence
	}
	h.logger.Warn("send error",
		"command_id", cmd,
		"sequence_number", seq,
		"error", err)
}
