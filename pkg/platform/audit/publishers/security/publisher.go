// Package security is the best-effort audit publisher for rejected signers
// and other security signals. Emit never blocks the request path; events are
// buffered and flushed in the background.
package security

import (
	"context"
	"log/slog"
	"time"

	audit "arbiter/pkg/platform/audit"
)

type Publisher struct {
	store    audit.Store
	buffer   *RingBuffer
	breaker  *CircuitBreaker
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func WithBufferSize(n int) Option {
	return func(p *Publisher) { p.buffer = NewRingBuffer(n) }
}

func WithFlushInterval(d time.Duration) Option {
	return func(p *Publisher) { p.interval = d }
}

func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(p *Publisher) { p.breaker = cb }
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:    store,
		buffer:   NewRingBuffer(0),
		breaker:  NewCircuitBreaker(0, 0),
		logger:   slog.Default(),
		interval: time.Second,
		batch:    128,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit buffers event. It always returns nil; the error keeps the signature
// of the compliance publisher.
func (p *Publisher) Emit(_ context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.CategorySecurity
	p.buffer.Enqueue(event)
	return nil
}

// Run flushes on every tick until ctx ends, then drains what is left.
func (p *Publisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Flush(context.WithoutCancel(ctx))
			return nil
		case <-ticker.C:
			p.Flush(ctx)
		}
	}
}

// Flush writes buffered events until the buffer is empty or the store
// fails. Events that fail are dropped and counted in the log.
func (p *Publisher) Flush(ctx context.Context) {
	for p.buffer.Len() > 0 {
		if !p.breaker.Allow() {
			return
		}
		for _, event := range p.buffer.DequeueBatch(p.batch) {
			if err := p.store.Append(ctx, event); err != nil {
				p.breaker.RecordFailure()
				p.logger.WarnContext(ctx, "security audit dropped",
					"action", event.Action,
					"subject", event.Subject,
					"error", err,
				)
				continue
			}
			p.breaker.RecordSuccess()
		}
	}
}

func (p *Publisher) Dropped() int64 { return p.buffer.Dropped() }
