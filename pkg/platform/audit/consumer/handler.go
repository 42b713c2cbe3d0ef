package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"arbiter/internal/platform/kafka/consumer"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/audit/store/postgres"
)

type EventStore interface {
	AppendWithID(ctx context.Context, event audit.Event) error
}

// EventHandler writes relayed payloads into the queryable event table.
type EventHandler struct {
	store  EventStore
	logger *slog.Logger
}

func NewEventHandler(store EventStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: store, logger: logger}
}

// Handle returns nil for malformed payloads so they are committed and never
// block the partition.
func (h *EventHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	var payload postgres.Payload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		h.logger.ErrorContext(ctx, "CRITICAL: malformed audit payload",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}
	event, err := payload.Event()
	if err != nil {
		h.logger.ErrorContext(ctx, "CRITICAL: invalid audit payload",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	if err := h.store.AppendWithID(ctx, event); err != nil {
		return fmt.Errorf("store audit event: %w", err)
	}
	h.logger.DebugContext(ctx, "materialized audit event",
		"event_id", event.ID,
		"action", event.Action,
		"subject", event.Subject,
	)
	return nil
}
