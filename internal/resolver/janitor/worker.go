package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arbiter/internal/resolver/metrics"
	"arbiter/internal/resolver/models"
	"arbiter/pkg/domain"
)

// Deleter removes a completed proposal by address. The service gates on
// the deadline again, so a stale index entry cannot delete early.
type Deleter interface {
	DeleteSlashProposalAt(ctx context.Context, proposal domain.Address) error
}

// Lister reads proposals for the startup rebuild.
type Lister interface {
	ListProposals(ctx context.Context, filter models.ProposalFilter) ([]*models.SlashProposal, error)
}

type SlotClock interface {
	CurrentSlot(ctx context.Context) (uint64, error)
}

// Worker sweeps the index on an interval and deletes due proposals.
type Worker struct {
	index    Index
	deleter  Deleter
	lister   Lister
	clock    SlotClock
	interval time.Duration
	batch    int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatch(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func NewWorker(index Index, deleter Deleter, lister Lister, clock SlotClock, opts ...Option) *Worker {
	w := &Worker{
		index:    index,
		deleter:  deleter,
		lister:   lister,
		clock:    clock,
		interval: 5 * time.Second,
		batch:    100,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Rebuild schedules every completed proposal in the store. Entries already
// in the index are overwritten with the stored deadline.
func (w *Worker) Rebuild(ctx context.Context) (int, error) {
	if w.lister == nil {
		return 0, nil
	}
	proposals, err := w.lister.ListProposals(ctx, models.ProposalFilter{
		Statuses: []models.ProposalStatus{models.ProposalStatusVetoed, models.ProposalStatusExecuted},
	})
	if err != nil {
		return 0, fmt.Errorf("list completed proposals: %w", err)
	}
	for _, p := range proposals {
		if err := w.index.Schedule(ctx, p.Address, p.DeleteDeadlineSlot); err != nil {
			return 0, err
		}
	}
	return len(proposals), nil
}

func (w *Worker) Run(ctx context.Context) error {
	n, err := w.Rebuild(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "janitor rebuild failed", "error", err)
	} else {
		w.logger.InfoContext(ctx, "janitor index rebuilt", "proposals", n)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.SweepOnce(ctx); err != nil {
				w.logger.ErrorContext(ctx, "janitor sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce deletes one batch of due proposals and returns how many were
// removed. A failed delete leaves its entry for the next sweep unless the
// proposal is gone or no longer due.
func (w *Worker) SweepOnce(ctx context.Context) (int, error) {
	slot, err := w.clock.CurrentSlot(ctx)
	if err != nil {
		return 0, fmt.Errorf("read slot: %w", err)
	}
	due, err := w.index.Due(ctx, slot, w.batch)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, proposal := range due {
		if ctx.Err() != nil {
			break
		}
		err := w.deleter.DeleteSlashProposalAt(ctx, proposal)
		switch {
		case err == nil:
			deleted++
		case models.HasCode(err, models.ErrorAccountNotFound),
			models.HasCode(err, models.ErrorProposalNotCompleted),
			models.HasCode(err, models.ErrorDeleteDeadlineNotReached):
			// The index disagrees with the store; the next transition of the
			// proposal schedules it again.
			w.logger.WarnContext(ctx, "dropping stale janitor entry",
				"proposal", proposal.String(), "error", err)
			if rmErr := w.index.Remove(ctx, proposal); rmErr != nil {
				w.logger.WarnContext(ctx, "janitor entry removal failed",
					"proposal", proposal.String(), "error", rmErr)
			}
		default:
			w.logger.ErrorContext(ctx, "janitor delete failed",
				"proposal", proposal.String(), "error", err)
		}
	}

	if w.metrics != nil {
		if n, err := w.index.Len(ctx); err == nil {
			w.metrics.SetJanitorBacklog(n)
		}
	}
	return deleted, nil
}
