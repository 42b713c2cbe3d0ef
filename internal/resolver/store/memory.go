// Package store persists resolver program accounts.
package store

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
	"arbiter/pkg/platform/sentinel"
	txcontext "arbiter/pkg/platform/tx"
)

type state struct {
	configs   map[domain.Address]models.Config
	policies  map[domain.Address]models.NcnPolicy
	resolvers map[domain.Address]models.Resolver
	slashers  map[domain.Address]models.Slasher
	proposals map[domain.Address]models.SlashProposal
	tickets   map[domain.Address]models.ProposalTicket
}

func newState() *state {
	return &state{
		configs:   make(map[domain.Address]models.Config),
		policies:  make(map[domain.Address]models.NcnPolicy),
		resolvers: make(map[domain.Address]models.Resolver),
		slashers:  make(map[domain.Address]models.Slasher),
		proposals: make(map[domain.Address]models.SlashProposal),
		tickets:   make(map[domain.Address]models.ProposalTicket),
	}
}

// clone copies the maps. Values are stored by value, so this is a full
// snapshot.
func (st *state) clone() *state {
	return &state{
		configs:   maps.Clone(st.configs),
		policies:  maps.Clone(st.policies),
		resolvers: maps.Clone(st.resolvers),
		slashers:  maps.Clone(st.slashers),
		proposals: maps.Clone(st.proposals),
		tickets:   maps.Clone(st.tickets),
	}
}

func create[T any](m map[domain.Address]T, address domain.Address, v T) error {
	if _, ok := m[address]; ok {
		return sentinel.ErrAlreadyUsed
	}
	m[address] = v
	return nil
}

func update[T any](m map[domain.Address]T, address domain.Address, v T) error {
	if _, ok := m[address]; !ok {
		return sentinel.ErrNotFound
	}
	m[address] = v
	return nil
}

func find[T any](m map[domain.Address]T, address domain.Address) (*T, error) {
	v, ok := m[address]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}

// view implements service.Store over one state without locking. InMemory
// guards it.
type view struct {
	st *state
}

func (v view) CreateConfig(_ context.Context, c *models.Config) error {
	return create(v.st.configs, c.Address, *c)
}

func (v view) FindConfig(_ context.Context, address domain.Address) (*models.Config, error) {
	return find(v.st.configs, address)
}

func (v view) CreatePolicy(_ context.Context, p *models.NcnPolicy) error {
	return create(v.st.policies, p.Address, *p)
}

func (v view) FindPolicy(_ context.Context, address domain.Address) (*models.NcnPolicy, error) {
	return find(v.st.policies, address)
}

func (v view) UpdatePolicy(_ context.Context, p *models.NcnPolicy) error {
	return update(v.st.policies, p.Address, *p)
}

func (v view) CreateResolver(_ context.Context, r *models.Resolver) error {
	return create(v.st.resolvers, r.Address, *r)
}

func (v view) FindResolver(_ context.Context, address domain.Address) (*models.Resolver, error) {
	return find(v.st.resolvers, address)
}

func (v view) ListResolvers(_ context.Context, ncn domain.Address) ([]*models.Resolver, error) {
	var out []*models.Resolver
	for _, r := range v.st.resolvers {
		if r.Ncn == ncn {
			out = append(out, &r)
		}
	}
	slices.SortFunc(out, func(a, b *models.Resolver) int { return cmp.Compare(a.Index, b.Index) })
	return out, nil
}

func (v view) CreateSlasher(_ context.Context, s *models.Slasher) error {
	return create(v.st.slashers, s.Address, *s)
}

func (v view) FindSlasher(_ context.Context, address domain.Address) (*models.Slasher, error) {
	return find(v.st.slashers, address)
}

func (v view) UpdateSlasher(_ context.Context, s *models.Slasher) error {
	return update(v.st.slashers, s.Address, *s)
}

func (v view) ListSlashers(_ context.Context, ncn domain.Address) ([]*models.Slasher, error) {
	var out []*models.Slasher
	for _, s := range v.st.slashers {
		if s.Ncn == ncn {
			out = append(out, &s)
		}
	}
	slices.SortFunc(out, func(a, b *models.Slasher) int { return cmp.Compare(a.Index, b.Index) })
	return out, nil
}

func (v view) CreateCase(_ context.Context, p *models.SlashProposal, t *models.ProposalTicket) error {
	if _, ok := v.st.proposals[p.Address]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := v.st.tickets[t.Address]; ok {
		return sentinel.ErrAlreadyUsed
	}
	v.st.proposals[p.Address] = *p
	v.st.tickets[t.Address] = *t
	return nil
}

func (v view) FindProposal(_ context.Context, address domain.Address) (*models.SlashProposal, error) {
	return find(v.st.proposals, address)
}

func (v view) FindTicket(_ context.Context, address domain.Address) (*models.ProposalTicket, error) {
	return find(v.st.tickets, address)
}

func (v view) UpdateProposal(_ context.Context, p *models.SlashProposal) error {
	return update(v.st.proposals, p.Address, *p)
}

func (v view) UpdateTicket(_ context.Context, t *models.ProposalTicket) error {
	return update(v.st.tickets, t.Address, *t)
}

func (v view) DeleteCase(_ context.Context, proposal, ticket domain.Address) error {
	if _, ok := v.st.proposals[proposal]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := v.st.tickets[ticket]; !ok {
		return sentinel.ErrNotFound
	}
	delete(v.st.proposals, proposal)
	delete(v.st.tickets, ticket)
	return nil
}

func (v view) ListProposals(_ context.Context, f models.ProposalFilter) ([]*models.SlashProposal, error) {
	var out []*models.SlashProposal
	for _, p := range v.st.proposals {
		if !f.Ncn.IsZero() && p.Ncn != f.Ncn {
			continue
		}
		if !f.Operator.IsZero() && p.Operator != f.Operator {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, p.Status) {
			continue
		}
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *models.SlashProposal) int {
		if c := cmp.Compare(a.CaptureSlot, b.CaptureSlot); c != 0 {
			return c
		}
		return cmp.Compare(a.Address.String(), b.Address.String())
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// InMemory is a service.Store and service.Tx held in process. A
// transaction runs against a snapshot that replaces the live state only when
// fn succeeds; transactions are serialized.
type InMemory struct {
	mu sync.RWMutex
	st *state
}

func NewInMemory() *InMemory {
	return &InMemory{st: newState()}
}

var (
	_ service.Store = (*InMemory)(nil)
	_ service.Tx    = (*InMemory)(nil)
)

func (s *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	txCtx, hooks := txcontext.WithHooks(ctx)
	snapshot := s.st.clone()
	if err := fn(txCtx, view{st: snapshot}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	s.st = snapshot
	hooks.Run(ctx)
	return nil
}

func (s *InMemory) read() view {
	return view{st: s.st}
}

func (s *InMemory) CreateConfig(ctx context.Context, c *models.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateConfig(ctx, c)
}

func (s *InMemory) FindConfig(ctx context.Context, address domain.Address) (*models.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindConfig(ctx, address)
}

func (s *InMemory) CreatePolicy(ctx context.Context, p *models.NcnPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreatePolicy(ctx, p)
}

func (s *InMemory) FindPolicy(ctx context.Context, address domain.Address) (*models.NcnPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindPolicy(ctx, address)
}

func (s *InMemory) UpdatePolicy(ctx context.Context, p *models.NcnPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdatePolicy(ctx, p)
}

func (s *InMemory) CreateResolver(ctx context.Context, r *models.Resolver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateResolver(ctx, r)
}

func (s *InMemory) FindResolver(ctx context.Context, address domain.Address) (*models.Resolver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindResolver(ctx, address)
}

func (s *InMemory) ListResolvers(ctx context.Context, ncn domain.Address) ([]*models.Resolver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListResolvers(ctx, ncn)
}

func (s *InMemory) CreateSlasher(ctx context.Context, sl *models.Slasher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateSlasher(ctx, sl)
}

func (s *InMemory) FindSlasher(ctx context.Context, address domain.Address) (*models.Slasher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindSlasher(ctx, address)
}

func (s *InMemory) UpdateSlasher(ctx context.Context, sl *models.Slasher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateSlasher(ctx, sl)
}

func (s *InMemory) ListSlashers(ctx context.Context, ncn domain.Address) ([]*models.Slasher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListSlashers(ctx, ncn)
}

func (s *InMemory) CreateCase(ctx context.Context, p *models.SlashProposal, t *models.ProposalTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateCase(ctx, p, t)
}

func (s *InMemory) FindProposal(ctx context.Context, address domain.Address) (*models.SlashProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindProposal(ctx, address)
}

func (s *InMemory) FindTicket(ctx context.Context, address domain.Address) (*models.ProposalTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindTicket(ctx, address)
}

func (s *InMemory) UpdateProposal(ctx context.Context, p *models.SlashProposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateProposal(ctx, p)
}

func (s *InMemory) UpdateTicket(ctx context.Context, t *models.ProposalTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateTicket(ctx, t)
}

func (s *InMemory) DeleteCase(ctx context.Context, proposal, ticket domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteCase(ctx, proposal, ticket)
}

func (s *InMemory) ListProposals(ctx context.Context, f models.ProposalFilter) ([]*models.SlashProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListProposals(ctx, f)
}
