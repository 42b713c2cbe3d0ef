// Package handler exposes the resolver program over HTTP. Mutations require
// a signer token, except delete, which anyone may call once the deadline has
// passed. Reads are public.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"arbiter/internal/platform/metrics"
	"arbiter/internal/platform/middleware"
	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
	"arbiter/pkg/platform/httputil"
	"arbiter/pkg/platform/middleware/auth"
	"arbiter/pkg/platform/middleware/metadata"
	"arbiter/pkg/platform/middleware/requesttime"
	"arbiter/pkg/platform/middleware/version"
	"arbiter/pkg/requestcontext"
)

// Service is the resolver program as the handler uses it.
type Service interface {
	InitializeConfig(ctx context.Context, cmd service.InitializeConfigCommand) (*models.Config, error)
	InitializeNcnPolicy(ctx context.Context, cmd service.InitializePolicyCommand) (*models.NcnPolicy, error)
	InitializeResolver(ctx context.Context, cmd service.RegisterCommand) (*models.Resolver, error)
	InitializeSlasher(ctx context.Context, cmd service.RegisterCommand) (*models.Slasher, error)
	SlasherSetAdmin(ctx context.Context, slasher, admin domain.Address) (*models.Slasher, error)
	SlasherSetSecondaryAdmin(ctx context.Context, slasher, delegate domain.Address) (*models.Slasher, error)

	ProposeSlash(ctx context.Context, cmd service.ProposeCommand) (*models.Case, error)
	SetResolver(ctx context.Context, key service.CaseKey, resolver domain.Address) (*models.Case, error)
	VetoSlash(ctx context.Context, key service.CaseKey, resolver domain.Address) (*models.Case, error)
	ExecuteSlash(ctx context.Context, cmd service.ExecuteCommand) (*models.Case, error)
	DeleteSlashProposalAt(ctx context.Context, proposal domain.Address) error

	GetConfig(ctx context.Context) (*models.Config, error)
	GetPolicy(ctx context.Context, ncn domain.Address) (*models.NcnPolicy, error)
	GetResolver(ctx context.Context, address domain.Address) (*models.Resolver, error)
	GetSlasher(ctx context.Context, address domain.Address) (*models.Slasher, error)
	ListResolvers(ctx context.Context, ncn domain.Address) ([]*models.Resolver, error)
	ListSlashers(ctx context.Context, ncn domain.Address) ([]*models.Slasher, error)
	GetCaseAt(ctx context.Context, proposal domain.Address) (*models.Case, error)
	ListProposals(ctx context.Context, filter models.ProposalFilter) ([]*models.SlashProposal, error)
}

type Handler struct {
	logger    *slog.Logger
	resolver  Service
	metrics   *metrics.Metrics
	validator auth.TokenValidator
	timeout   time.Duration
}

func New(resolver Service, logger *slog.Logger, metrics *metrics.Metrics, validator auth.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		resolver:  resolver,
		metrics:   metrics,
		validator: validator,
		timeout:   30 * time.Second,
	}
}

// Register mounts /v1 on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.Recovery(h.logger))
		v1.Use(middleware.RequestID)
		v1.Use(requesttime.Middleware)
		v1.Use(metadata.ClientMetadata)
		v1.Use(middleware.Logger(h.logger))
		v1.Use(middleware.Timeout(h.timeout))
		v1.Use(middleware.ContentTypeJSON)
		v1.Use(middleware.LatencyMiddleware(h.metrics))
		v1.Use(version.ExtractVersion(domain.APIVersionV1))

		v1.Get("/config", h.handleGetConfig)
		v1.Get("/ncns/{ncn}/policy", h.handleGetPolicy)
		v1.Get("/ncns/{ncn}/resolvers", h.handleListResolvers)
		v1.Get("/ncns/{ncn}/slashers", h.handleListSlashers)
		v1.Get("/resolvers/{resolver}", h.handleGetResolver)
		v1.Get("/slashers/{slasher}", h.handleGetSlasher)
		v1.Get("/proposals", h.handleListProposals)
		v1.Get("/proposals/{proposal}", h.handleGetProposal)
		v1.Delete("/proposals/{proposal}", h.handleDeleteProposal)

		v1.Group(func(signed chi.Router) {
			signed.Use(auth.RequireSigner(h.validator, h.logger))
			signed.Use(version.ValidateTokenVersion(h.logger))

			signed.Post("/config", h.handleInitializeConfig)
			signed.Post("/ncns/{ncn}/policy", h.handleInitializePolicy)
			signed.Post("/ncns/{ncn}/resolvers", h.handleInitializeResolver)
			signed.Post("/ncns/{ncn}/slashers", h.handleInitializeSlasher)
			signed.Put("/slashers/{slasher}/admin", h.handleSetSlasherAdmin)
			signed.Put("/slashers/{slasher}/delegate-admin", h.handleSetSlasherDelegate)

			signed.Post("/proposals", h.handlePropose)
			signed.Put("/proposals/{proposal}/resolver", h.handleSetResolver)
			signed.Post("/proposals/{proposal}/veto", h.handleVeto)
			signed.Post("/proposals/{proposal}/execute", h.handleExecute)
		})
	})
}

// -----------------------------------------------------------------------------
// Registration
// -----------------------------------------------------------------------------

func (h *Handler) handleInitializeConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[InitializeConfigRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	cfg, err := h.resolver.InitializeConfig(ctx, service.InitializeConfigCommand{
		RestakingProgram: req.RestakingProgram,
		VaultProgram:     req.VaultProgram,
		EpochLength:      req.EpochLength,
	})
	h.respond(w, r, "initialize config", http.StatusCreated, cfg, err)
}

func (h *Handler) handleInitializePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ncn, ok := h.pathAddress(w, r, "ncn")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[InitializePolicyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	policy, err := h.resolver.InitializeNcnPolicy(ctx, service.InitializePolicyCommand{
		Ncn:                         ncn,
		VetoDuration:                req.VetoDuration,
		DeleteSlashProposalDuration: req.DeleteSlashProposalDuration,
		ResolverAdmin:               req.ResolverAdmin,
	})
	h.respond(w, r, "initialize policy", http.StatusCreated, policy, err)
}

func (h *Handler) handleInitializeResolver(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.registerCommand(w, r)
	if !ok {
		return
	}
	resolver, err := h.resolver.InitializeResolver(r.Context(), cmd)
	h.respond(w, r, "initialize resolver", http.StatusCreated, resolver, err)
}

func (h *Handler) handleInitializeSlasher(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.registerCommand(w, r)
	if !ok {
		return
	}
	slasher, err := h.resolver.InitializeSlasher(r.Context(), cmd)
	h.respond(w, r, "initialize slasher", http.StatusCreated, slasher, err)
}

func (h *Handler) registerCommand(w http.ResponseWriter, r *http.Request) (service.RegisterCommand, bool) {
	ctx := r.Context()
	ncn, ok := h.pathAddress(w, r, "ncn")
	if !ok {
		return service.RegisterCommand{}, false
	}
	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return service.RegisterCommand{}, false
	}
	return service.RegisterCommand{Ncn: ncn, Base: req.Base, Admin: req.Admin}, true
}

func (h *Handler) handleSetSlasherAdmin(w http.ResponseWriter, r *http.Request) {
	h.setSlasherAdmin(w, r, "set slasher admin", h.resolver.SlasherSetAdmin)
}

func (h *Handler) handleSetSlasherDelegate(w http.ResponseWriter, r *http.Request) {
	h.setSlasherAdmin(w, r, "set slasher delegate admin", h.resolver.SlasherSetSecondaryAdmin)
}

func (h *Handler) setSlasherAdmin(w http.ResponseWriter, r *http.Request, op string,
	apply func(context.Context, domain.Address, domain.Address) (*models.Slasher, error)) {
	ctx := r.Context()
	slasher, ok := h.pathAddress(w, r, "slasher")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetAdminRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	updated, err := apply(ctx, slasher, req.Admin)
	h.respond(w, r, op, http.StatusOK, updated, err)
}

// -----------------------------------------------------------------------------
// Dispute lifecycle
// -----------------------------------------------------------------------------

func (h *Handler) handlePropose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ProposeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.resolver.ProposeSlash(ctx, req.command())
	h.respond(w, r, "propose slash", http.StatusCreated, c, err)
}

func (h *Handler) handleSetResolver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.caseKey(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResolverRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.resolver.SetResolver(ctx, key, req.Resolver)
	h.respond(w, r, "set resolver", http.StatusOK, c, err)
}

func (h *Handler) handleVeto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.caseKey(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResolverRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.resolver.VetoSlash(ctx, key, req.Resolver)
	h.respond(w, r, "veto slash", http.StatusOK, c, err)
}

func (h *Handler) handleExecute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.caseKey(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ExecuteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.resolver.ExecuteSlash(ctx, req.command(key))
	h.respond(w, r, "execute slash", http.StatusOK, c, err)
}

func (h *Handler) handleDeleteProposal(w http.ResponseWriter, r *http.Request) {
	proposal, ok := h.pathAddress(w, r, "proposal")
	if !ok {
		return
	}
	if err := h.resolver.DeleteSlashProposalAt(r.Context(), proposal); err != nil {
		h.fail(w, r, "delete slash proposal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// caseKey resolves the (ncn, operator, slasher) key of the proposal in the
// path. The service re-derives the address from the key, so a stored
// proposal under a foreign derivation fails there.
func (h *Handler) caseKey(w http.ResponseWriter, r *http.Request) (service.CaseKey, bool) {
	proposal, ok := h.pathAddress(w, r, "proposal")
	if !ok {
		return service.CaseKey{}, false
	}
	c, err := h.resolver.GetCaseAt(r.Context(), proposal)
	if err != nil {
		h.fail(w, r, "load slash proposal", err)
		return service.CaseKey{}, false
	}
	return service.CaseKey{
		Ncn:      c.Proposal.Ncn,
		Operator: c.Proposal.Operator,
		Slasher:  c.Proposal.Slasher,
		Proposal: proposal,
	}, true
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.resolver.GetConfig(r.Context())
	h.respond(w, r, "get config", http.StatusOK, cfg, err)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	ncn, ok := h.pathAddress(w, r, "ncn")
	if !ok {
		return
	}
	policy, err := h.resolver.GetPolicy(r.Context(), ncn)
	h.respond(w, r, "get policy", http.StatusOK, policy, err)
}

func (h *Handler) handleListResolvers(w http.ResponseWriter, r *http.Request) {
	ncn, ok := h.pathAddress(w, r, "ncn")
	if !ok {
		return
	}
	out, err := h.resolver.ListResolvers(r.Context(), ncn)
	h.respond(w, r, "list resolvers", http.StatusOK, map[string]any{"resolvers": nonNil(out)}, err)
}

func (h *Handler) handleListSlashers(w http.ResponseWriter, r *http.Request) {
	ncn, ok := h.pathAddress(w, r, "ncn")
	if !ok {
		return
	}
	out, err := h.resolver.ListSlashers(r.Context(), ncn)
	h.respond(w, r, "list slashers", http.StatusOK, map[string]any{"slashers": nonNil(out)}, err)
}

func (h *Handler) handleGetResolver(w http.ResponseWriter, r *http.Request) {
	address, ok := h.pathAddress(w, r, "resolver")
	if !ok {
		return
	}
	resolver, err := h.resolver.GetResolver(r.Context(), address)
	h.respond(w, r, "get resolver", http.StatusOK, resolver, err)
}

func (h *Handler) handleGetSlasher(w http.ResponseWriter, r *http.Request) {
	address, ok := h.pathAddress(w, r, "slasher")
	if !ok {
		return
	}
	slasher, err := h.resolver.GetSlasher(r.Context(), address)
	h.respond(w, r, "get slasher", http.StatusOK, slasher, err)
}

func (h *Handler) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	proposal, ok := h.pathAddress(w, r, "proposal")
	if !ok {
		return
	}
	c, err := h.resolver.GetCaseAt(r.Context(), proposal)
	h.respond(w, r, "get slash proposal", http.StatusOK, c, err)
}

// handleListProposals accepts ncn, operator, status (repeatable or comma
// separated) and limit query parameters.
func (h *Handler) handleListProposals(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProposalFilter(r)
	if err != nil {
		h.fail(w, r, "list slash proposals", err)
		return
	}
	out, err := h.resolver.ListProposals(r.Context(), filter)
	h.respond(w, r, "list slash proposals", http.StatusOK, map[string]any{"proposals": nonNil(out)}, err)
}

func parseProposalFilter(r *http.Request) (models.ProposalFilter, error) {
	q := r.URL.Query()
	var filter models.ProposalFilter
	var err error
	if v := q.Get("ncn"); v != "" {
		if filter.Ncn, err = domain.ParseAddress(v); err != nil {
			return filter, err
		}
	}
	if v := q.Get("operator"); v != "" {
		if filter.Operator, err = domain.ParseAddress(v); err != nil {
			return filter, err
		}
	}
	for _, raw := range q["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, models.ProposalStatus(s))
			}
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, dErrors.New(dErrors.CodeValidation, "limit must be a non-negative integer")
		}
		filter.Limit = n
	}
	return filter, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (h *Handler) pathAddress(w http.ResponseWriter, r *http.Request, param string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, param))
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid path address",
			"request_id", requestcontext.RequestID(r.Context()),
			"param", param,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return domain.Address{}, false
	}
	return addr, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, status int, body any, err error) {
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	httputil.WriteJSON(w, status, body)
}

// fail logs at warn for client errors and error for everything else, then
// writes the envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err.Error(),
	}
	if code, ok := models.CodeOf(err); ok {
		attrs = append(attrs, "program_code", uint32(code))
	}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
