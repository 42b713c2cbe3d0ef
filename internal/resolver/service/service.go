// Package service runs the slash dispute lifecycle: registration of the
// program accounts, then propose, reassign, veto, execute and delete.
//
// Every mutating operation reads the slot once, checks everything, and then
// applies its changes inside one store transaction. A returned error means
// nothing was written.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"arbiter/internal/resolver/metrics"
	"arbiter/internal/resolver/models"
	"arbiter/internal/restaking"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/sentinel"
	"arbiter/pkg/requestcontext"
)

const tracerName = "arbiter/internal/resolver/service"

type Service struct {
	program  domain.Address
	store    Store
	tx       Tx
	registry Registry
	vault    Vault
	clock    SlotClock

	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditor  AuditPublisher
	security AuditPublisher
	index    DeadlineIndex
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher sets the fail-closed publisher for state transitions.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithSecurityPublisher sets the best-effort publisher for rejected signers.
func WithSecurityPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.security = p
	}
}

func WithDeadlineIndex(index DeadlineIndex) Option {
	return func(s *Service) {
		s.index = index
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service for the resolver program at program.
func New(program domain.Address, store Store, tx Tx, registry Registry, vault Vault, clock SlotClock, opts ...Option) *Service {
	s := &Service{
		program:  program,
		store:    store,
		tx:       tx,
		registry: registry,
		vault:    vault,
		clock:    clock,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Program is the resolver program address accounts are derived under.
func (s *Service) Program() domain.Address { return s.program }

// -----------------------------------------------------------------------------
// Operation bookkeeping
// -----------------------------------------------------------------------------

func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	ctx, span := s.tracer.Start(ctx, "resolver."+op, trace.WithAttributes(attrs...))
	return ctx, span, time.Now()
}

// finish closes the span, records metrics, and reports rejected signers.
func (s *Service) finish(ctx context.Context, span trace.Span, op string, started time.Time, subject domain.Address, err error) {
	defer span.End()
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, started)
	}
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, dErrors.Message(err))

	code, ok := models.CodeOf(err)
	label := string(dErrors.CodeOf(err))
	if ok {
		label = strconv.FormatUint(uint64(code), 10)
		span.SetAttributes(attribute.Int64("resolver.error_code", int64(code)))
	}
	if s.metrics != nil {
		s.metrics.IncrementOperationError(op, label)
	}
	if ok && code.IsAuthorization() {
		s.rejectAuthorization(ctx, op, subject, err)
	}
}

func (s *Service) rejectAuthorization(ctx context.Context, op string, subject domain.Address, err error) {
	if s.metrics != nil {
		s.metrics.IncrementAuthorizationRejected(op)
	}
	signer := requestcontext.Signer(ctx)
	s.logger.WarnContext(ctx, string(audit.EventAuthorizationRejected),
		"operation", op,
		"subject", subject.String(),
		"signer", signer.String(),
		"reason", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
		"log_type", "security",
	)
	if s.security == nil {
		return
	}
	_ = s.security.Emit(ctx, audit.Event{
		Category:    audit.CategorySecurity,
		Timestamp:   requestcontext.Now(ctx),
		Action:      string(audit.EventAuthorizationRejected),
		Subject:     subject.String(),
		Actor:       signer.String(),
		Reason:      op + ": " + err.Error(),
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		ClientAgent: requestcontext.ClientAgent(ctx),
	})
}

// emit writes the compliance event inside the caller's transaction. A
// failure aborts the transition.
func (s *Service) emit(ctx context.Context, event audit.AuditEvent, subject, ncn domain.Address, slot uint64) error {
	if s.auditor == nil {
		return nil
	}
	e := audit.Event{
		Category:    event.Category(),
		Timestamp:   requestcontext.Now(ctx),
		Action:      string(event),
		Subject:     subject.String(),
		Actor:       actor(ctx),
		Ncn:         ncn.String(),
		Slot:        slot,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		ClientAgent: requestcontext.ClientAgent(ctx),
	}
	if err := s.auditor.Emit(ctx, e); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "audit trail unavailable")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
}

func actor(ctx context.Context) string {
	if signer := requestcontext.Signer(ctx); !signer.IsZero() {
		return signer.String()
	}
	return ""
}

// -----------------------------------------------------------------------------
// Shared loading
// -----------------------------------------------------------------------------

func requireSigner(ctx context.Context) (domain.Address, error) {
	signer := requestcontext.Signer(ctx)
	if signer.IsZero() {
		return domain.Address{}, dErrors.New(dErrors.CodeUnauthorized, "request is not signed")
	}
	return signer, nil
}

func (s *Service) currentSlot(ctx context.Context) (uint64, error) {
	slot, err := s.clock.CurrentSlot(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "slot clock unavailable")
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("resolver.slot", int64(slot)))
	return slot, nil
}

func (s *Service) loadConfig(ctx context.Context, store Store) (*models.Config, error) {
	at, err := models.ConfigAddress(s.program)
	if err != nil {
		return nil, err
	}
	cfg, err := store.FindConfig(ctx, at.Address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.ErrorConfigMissing.Err()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load config")
	}
	return cfg, nil
}

func (s *Service) loadPolicy(ctx context.Context, store Store, ncn domain.Address) (*models.NcnPolicy, error) {
	at, err := models.NcnPolicyAddress(s.program, ncn)
	if err != nil {
		return nil, err
	}
	policy, err := store.FindPolicy(ctx, at.Address)
	if err != nil {
		return nil, accountErr(err, "ncn policy", ncn)
	}
	return policy, nil
}

// loadNcn reads the NCN and checks it belongs to the configured restaking
// program.
func (s *Service) loadNcn(ctx context.Context, cfg *models.Config, address domain.Address) (*restaking.Ncn, error) {
	ncn, err := s.registry.Ncn(ctx, address)
	if err != nil {
		return nil, registryErr(err, "ncn", address)
	}
	if ncn.Owner != cfg.RestakingProgram {
		return nil, models.ErrorInvalidAccountOwner.Errorf("ncn %s owned by %s", address, ncn.Owner)
	}
	return ncn, nil
}

func (s *Service) loadOperator(ctx context.Context, cfg *models.Config, address domain.Address) (*restaking.Operator, error) {
	op, err := s.registry.Operator(ctx, address)
	if err != nil {
		return nil, registryErr(err, "operator", address)
	}
	if op.Owner != cfg.RestakingProgram {
		return nil, models.ErrorInvalidAccountOwner.Errorf("operator %s owned by %s", address, op.Owner)
	}
	return op, nil
}

// loadSlasher reads a slasher registered under ncn.
func loadSlasher(ctx context.Context, store Store, address, ncn domain.Address) (*models.Slasher, error) {
	slasher, err := store.FindSlasher(ctx, address)
	if err != nil {
		return nil, accountErr(err, "slasher", address)
	}
	if slasher.Ncn != ncn {
		return nil, models.ErrorLinkageInvalid.Errorf("slasher %s registered under ncn %s", address, slasher.Ncn)
	}
	return slasher, nil
}

func loadResolver(ctx context.Context, store Store, address, ncn domain.Address) (*models.Resolver, error) {
	resolver, err := store.FindResolver(ctx, address)
	if err != nil {
		return nil, accountErr(err, "resolver", address)
	}
	if resolver.Ncn != ncn {
		return nil, models.ErrorLinkageInvalid.Errorf("resolver %s registered under ncn %s", address, resolver.Ncn)
	}
	return resolver, nil
}

// loadCase reads the proposal and ticket at their derived addresses and
// checks the ticket points back at the proposal.
func loadCase(ctx context.Context, store Store, at caseAddresses) (*models.Case, error) {
	proposal, err := store.FindProposal(ctx, at.proposal.Address)
	if err != nil {
		return nil, accountErr(err, "slash proposal", at.proposal.Address)
	}
	ticket, err := store.FindTicket(ctx, at.ticket.Address)
	if err != nil {
		return nil, accountErr(err, "proposal ticket", at.ticket.Address)
	}
	return &models.Case{Proposal: proposal, Ticket: ticket}, nil
}

func accountErr(err error, kind string, address domain.Address) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return models.ErrorAccountNotFound.Errorf("%s %s", kind, address)
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return models.ErrorAccountAlreadyInUse.Errorf("%s %s", kind, address)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access "+kind)
	}
}

func registryErr(err error, kind string, address domain.Address) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.ErrorAccountNotFound.Errorf("%s %s", kind, address)
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read "+kind)
}

// schedule updates the janitor index after commit. The index is rebuilt from the
// store at startup, so a failure here is logged and not returned.
func (s *Service) schedule(ctx context.Context, p *models.SlashProposal) {
	if s.index == nil {
		return
	}
	if err := s.index.Schedule(ctx, p.Address, p.DeleteDeadlineSlot); err != nil {
		s.logger.WarnContext(ctx, "deadline index update failed", "proposal", p.Address.String(), "error", err)
	}
}

func (s *Service) unschedule(ctx context.Context, proposal domain.Address) {
	if s.index == nil {
		return
	}
	if err := s.index.Remove(ctx, proposal); err != nil {
		s.logger.WarnContext(ctx, "deadline index removal failed", "proposal", proposal.String(), "error", err)
	}
}
