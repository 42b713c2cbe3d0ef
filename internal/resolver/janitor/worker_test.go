package janitor_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"arbiter/internal/clock"
	"arbiter/internal/resolver/janitor"
	"arbiter/internal/resolver/metrics"
	"arbiter/internal/resolver/models"
	"arbiter/pkg/domain"
)

type fakeDeleter struct {
	mu      sync.Mutex
	index   janitor.Index
	results map[domain.Address]error
	calls   []domain.Address
}

// DeleteSlashProposalAt mirrors the service: success removes the entry.
func (f *fakeDeleter) DeleteSlashProposalAt(ctx context.Context, proposal domain.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, proposal)
	if err := f.results[proposal]; err != nil {
		return err
	}
	return f.index.Remove(ctx, proposal)
}

type fakeLister struct {
	proposals []*models.SlashProposal
	filter    models.ProposalFilter
	err       error
}

func (f *fakeLister) ListProposals(_ context.Context, filter models.ProposalFilter) ([]*models.SlashProposal, error) {
	f.filter = filter
	return f.proposals, f.err
}

type WorkerSuite struct {
	suite.Suite
	ctx     context.Context
	index   *janitor.MemoryIndex
	deleter *fakeDeleter
	lister  *fakeLister
	clock   *clock.Manual
	metrics *metrics.Metrics
	worker  *janitor.Worker
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.ctx = context.Background()
	s.index = janitor.NewMemoryIndex()
	s.deleter = &fakeDeleter{index: s.index, results: map[domain.Address]error{}}
	s.lister = &fakeLister{}
	s.clock = clock.NewManual(0)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.worker = janitor.NewWorker(s.index, s.deleter, s.lister, s.clock,
		janitor.WithBatch(10), janitor.WithMetrics(s.metrics))
}

func (s *WorkerSuite) schedule(addr domain.Address, deadline uint64) {
	s.Require().NoError(s.index.Schedule(s.ctx, addr, deadline))
}

func (s *WorkerSuite) TestSweepDeletesOnlyDue() {
	early, late := domain.Address{0x01}, domain.Address{0x02}
	s.schedule(early, 100)
	s.schedule(late, 500)

	s.clock.Set(99)
	n, err := s.worker.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
	s.Empty(s.deleter.calls)

	s.clock.Set(100)
	n, err = s.worker.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal([]domain.Address{early}, s.deleter.calls)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.JanitorBacklog))
}

func (s *WorkerSuite) TestStaleEntriesAreDropped() {
	gone, notDue, open := domain.Address{0x01}, domain.Address{0x02}, domain.Address{0x03}
	s.schedule(gone, 10)
	s.schedule(notDue, 10)
	s.schedule(open, 10)
	s.deleter.results[gone] = models.ErrorAccountNotFound.Errorf("slash proposal %s", gone)
	s.deleter.results[notDue] = models.ErrorDeleteDeadlineNotReached.Err()
	s.deleter.results[open] = models.ErrorProposalNotCompleted.Err()

	s.clock.Set(20)
	n, err := s.worker.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)

	left, err := s.index.Len(s.ctx)
	s.Require().NoError(err)
	s.Zero(left)
}

func (s *WorkerSuite) TestTransientFailureIsRetried() {
	addr := domain.Address{0x01}
	s.schedule(addr, 10)
	s.deleter.results[addr] = errors.New("connection reset")
	s.clock.Set(20)

	n, err := s.worker.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)

	delete(s.deleter.results, addr)
	n, err = s.worker.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Len(s.deleter.calls, 2)
}

func (s *WorkerSuite) TestBatchLimit() {
	for i := range 25 {
		s.schedule(domain.Address{byte(i + 1)}, uint64(i))
	}
	s.clock.Set(1000)

	n, err := s.worker.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(10, n)
	s.Equal(float64(15), testutil.ToFloat64(s.metrics.JanitorBacklog))
}

func (s *WorkerSuite) TestRebuildSchedulesCompleted() {
	vetoed := &models.SlashProposal{Address: domain.Address{0x01}, Status: models.ProposalStatusVetoed, DeleteDeadlineSlot: 150}
	executed := &models.SlashProposal{Address: domain.Address{0x02}, Status: models.ProposalStatusExecuted, DeleteDeadlineSlot: 200}
	s.lister.proposals = []*models.SlashProposal{vetoed, executed}

	n, err := s.worker.Rebuild(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
	s.ElementsMatch([]models.ProposalStatus{models.ProposalStatusVetoed, models.ProposalStatusExecuted}, s.lister.filter.Statuses)
	s.Zero(s.lister.filter.Limit)

	due, err := s.index.Due(s.ctx, 150, 10)
	s.Require().NoError(err)
	s.Equal([]domain.Address{vetoed.Address}, due)
}

func (s *WorkerSuite) TestRebuildFailure() {
	s.lister.err = errors.New("db down")
	_, err := s.worker.Rebuild(s.ctx)
	s.Require().Error(err)
	s.ErrorIs(err, s.lister.err)
}

func (s *WorkerSuite) TestClockFailure() {
	failing := janitor.NewWorker(s.index, s.deleter, s.lister, failingClock{})
	_, err := failing.SweepOnce(s.ctx)
	s.Require().Error(err)
}

func (s *WorkerSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.NoError(s.worker.Run(ctx))
}

type failingClock struct{}

func (failingClock) CurrentSlot(context.Context) (uint64, error) {
	return 0, errors.New("rpc timeout")
}
