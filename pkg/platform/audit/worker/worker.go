// Package worker relays outbox rows to Kafka.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"arbiter/pkg/platform/audit/store/postgres"
)

type Outbox interface {
	Pending(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Relay moves outbox rows to topic. Delivery is at-least-once: a crash
// between Publish and MarkPublished republishes, and the materializer
// ignores duplicates by event ID.
type Relay struct {
	outbox    Outbox
	publisher Publisher
	topic     string
	interval  time.Duration
	batch     int
	logger    *slog.Logger
}

func NewRelay(outbox Outbox, publisher Publisher, topic string, interval time.Duration, logger *slog.Logger) *Relay {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{outbox: outbox, publisher: publisher, topic: topic, interval: interval, batch: 100, logger: logger}
}

func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many rows were marked.
// Rows published before a failure are still marked.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	entries, err := r.outbox.Pending(ctx, r.batch)
	if err != nil {
		return 0, fmt.Errorf("load outbox: %w", err)
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, e := range entries {
		if err := r.publisher.Publish(ctx, r.topic, []byte(e.AggregateID), e.Payload); err != nil {
			publishErr = fmt.Errorf("publish outbox entry %s: %w", e.ID, err)
			break
		}
		published = append(published, e.ID)
	}

	if err := r.outbox.MarkPublished(ctx, published); err != nil {
		return 0, err
	}
	return len(published), publishErr
}
