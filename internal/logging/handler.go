// Package logging carries the context-aware slog.Handler used throughout
// the module, grounded on
// thrillee-aegisbox-distribution/internal/logging/handler.go: promote a
// fixed set of context values onto every log record instead of threading
// a logger instance through every call.
package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	ClientIDKey  contextKey = "client_id"
	LogIDKey     contextKey = "log_id"
	CommandIDKey contextKey = "cmd_id"
	SequenceKey  contextKey = "seq_num"
)

// LevelTrace sits below slog.LevelDebug, for the high-volume per-PDU
// sending/received hook events that original_source/aiosmpplib logs only
// at trace level.
const LevelTrace slog.Level = slog.LevelDebug - 4

// ContextHandler wraps another slog.Handler and adds attributes pulled
// out of the record's context, so call sites log with plain slog.Info/
// Debug calls and still get client_id/log_id/cmd_id/seq_num attached.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps h.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if clientID, ok := ctx.Value(ClientIDKey).(string); ok {
		r.AddAttrs(slog.String("client_id", clientID))
	}
	if logID, ok := ctx.Value(LogIDKey).(string); ok && logID != "" {
		r.AddAttrs(slog.String("log_id", logID))
	}
	if cmdID, ok := ctx.Value(CommandIDKey).(string); ok {
		r.AddAttrs(slog.String("cmd_id", cmdID))
	}
	if seq, ok := ctx.Value(SequenceKey).(uint32); ok {
		r.AddAttrs(slog.Uint64("seq_num", uint64(seq)))
	}
	return h.Handler.Handle(ctx, r)
}

func ContextWithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

func ContextWithLogID(ctx context.Context, logID string) context.Context {
	return context.WithValue(ctx, LogIDKey, logID)
}

func ContextWithPDUInfo(ctx context.Context, commandID string, sequence uint32) context.Context {
	ctx = context.WithValue(ctx, CommandIDKey, commandID)
	return context.WithValue(ctx, SequenceKey, sequence)
}
