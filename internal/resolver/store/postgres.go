package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/pkg/domain"
	"arbiter/pkg/platform/sentinel"
	txcontext "arbiter/pkg/platform/tx"
)

const uniqueViolation = "23505"

// u64 carries a uint64 through a NUMERIC(20,0) column. database/sql rejects
// uint64 values with the high bit set, so it travels as text.
type u64 uint64

func (v u64) Value() (driver.Value, error) {
	return strconv.FormatUint(uint64(v), 10), nil
}

func (v *u64) Scan(src any) error {
	var text string
	switch s := src.(type) {
	case string:
		text = s
	case []byte:
		text = string(s)
	case int64:
		if s < 0 {
			return fmt.Errorf("scan u64: negative value %d", s)
		}
		*v = u64(s)
		return nil
	case float64:
		if s < 0 {
			return fmt.Errorf("scan u64: negative value %v", s)
		}
		*v = u64(s)
		return nil
	default:
		return fmt.Errorf("scan u64: unsupported type %T", src)
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("scan u64: %w", err)
	}
	*v = u64(n)
	return nil
}

// Postgres implements service.Store. Inside a transaction opened with
// txcontext.WithTx it joins that transaction and locks rows it reads.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ service.Store = (*Postgres)(nil)

func (s *Postgres) q(ctx context.Context) txcontext.Querier {
	return txcontext.Executor(ctx, s.db)
}

// lock appends FOR UPDATE when a transaction is open.
func lock(ctx context.Context, query string) string {
	if _, ok := txcontext.From(ctx); ok {
		return query + " FOR UPDATE"
	}
	return query
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", sentinel.ErrAlreadyUsed, pgErr.ConstraintName)
	}
	return err
}

func expectOne(res sql.Result, err error) error {
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Config
// -----------------------------------------------------------------------------

func (s *Postgres) CreateConfig(ctx context.Context, c *models.Config) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO resolver_configs (address, admin, restaking_program, vault_program, epoch_length, bump, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.Address, c.Admin, c.RestakingProgram, c.VaultProgram, u64(c.EpochLength), int16(c.Bump), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert config: %w", translate(err))
	}
	return nil
}

func (s *Postgres) FindConfig(ctx context.Context, address domain.Address) (*models.Config, error) {
	var (
		c     models.Config
		epoch u64
		bump  int16
	)
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT address, admin, restaking_program, vault_program, epoch_length, bump, created_at
		FROM resolver_configs WHERE address = $1`, address,
	).Scan(&c.Address, &c.Admin, &c.RestakingProgram, &c.VaultProgram, &epoch, &bump, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	c.EpochLength, c.Bump = uint64(epoch), uint8(bump)
	return &c, nil
}

// -----------------------------------------------------------------------------
// Policy
// -----------------------------------------------------------------------------

const selectPolicy = `
	SELECT address, ncn, veto_duration, delete_slash_proposal_duration, resolver_count,
	       slasher_count, resolver_admin, bump, created_at, updated_at
	FROM ncn_policies WHERE address = $1`

func (s *Postgres) CreatePolicy(ctx context.Context, p *models.NcnPolicy) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO ncn_policies (address, ncn, veto_duration, delete_slash_proposal_duration,
			resolver_count, slasher_count, resolver_admin, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.Address, p.Ncn, u64(p.VetoDuration), u64(p.DeleteSlashProposalDuration),
		u64(p.ResolverCount), u64(p.SlasherCount), p.ResolverAdmin, int16(p.Bump), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ncn policy: %w", translate(err))
	}
	return nil
}

func (s *Postgres) FindPolicy(ctx context.Context, address domain.Address) (*models.NcnPolicy, error) {
	var (
		p                               models.NcnPolicy
		veto, grace, resolvers, slashers u64
		bump                            int16
	)
	err := s.q(ctx).QueryRowContext(ctx, lock(ctx, selectPolicy), address).Scan(
		&p.Address, &p.Ncn, &veto, &grace, &resolvers, &slashers, &p.ResolverAdmin, &bump, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	p.VetoDuration, p.DeleteSlashProposalDuration = uint64(veto), uint64(grace)
	p.ResolverCount, p.SlasherCount, p.Bump = uint64(resolvers), uint64(slashers), uint8(bump)
	return &p, nil
}

func (s *Postgres) UpdatePolicy(ctx context.Context, p *models.NcnPolicy) error {
	err := expectOne(s.q(ctx).ExecContext(ctx, `
		UPDATE ncn_policies
		SET resolver_count = $2, slasher_count = $3, resolver_admin = $4, updated_at = $5
		WHERE address = $1`,
		p.Address, u64(p.ResolverCount), u64(p.SlasherCount), p.ResolverAdmin, p.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("update ncn policy: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Resolver and slasher
// -----------------------------------------------------------------------------

const selectResolver = `SELECT address, base, ncn, admin, idx, bump, created_at FROM resolvers`

func scanResolver(row interface{ Scan(...any) error }) (*models.Resolver, error) {
	var (
		r    models.Resolver
		idx  u64
		bump int16
	)
	if err := row.Scan(&r.Address, &r.Base, &r.Ncn, &r.Admin, &idx, &bump, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Index, r.Bump = uint64(idx), uint8(bump)
	return &r, nil
}

func (s *Postgres) CreateResolver(ctx context.Context, r *models.Resolver) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO resolvers (address, base, ncn, admin, idx, bump, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.Address, r.Base, r.Ncn, r.Admin, u64(r.Index), int16(r.Bump), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resolver: %w", translate(err))
	}
	return nil
}

func (s *Postgres) FindResolver(ctx context.Context, address domain.Address) (*models.Resolver, error) {
	r, err := scanResolver(s.q(ctx).QueryRowContext(ctx, selectResolver+` WHERE address = $1`, address))
	if err != nil {
		return nil, translate(err)
	}
	return r, nil
}

func (s *Postgres) ListResolvers(ctx context.Context, ncn domain.Address) ([]*models.Resolver, error) {
	rows, err := s.q(ctx).QueryContext(ctx, selectResolver+` WHERE ncn = $1 ORDER BY idx`, ncn)
	if err != nil {
		return nil, fmt.Errorf("query resolvers: %w", err)
	}
	defer rows.Close()
	var out []*models.Resolver
	for rows.Next() {
		r, err := scanResolver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resolver: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const selectSlasher = `SELECT address, base, ncn, admin, delegate_admin, idx, bump, created_at, updated_at FROM slashers`

func scanSlasher(row interface{ Scan(...any) error }) (*models.Slasher, error) {
	var (
		sl   models.Slasher
		idx  u64
		bump int16
	)
	if err := row.Scan(&sl.Address, &sl.Base, &sl.Ncn, &sl.Admin, &sl.DelegateAdmin, &idx, &bump, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
		return nil, err
	}
	sl.Index, sl.Bump = uint64(idx), uint8(bump)
	return &sl, nil
}

func (s *Postgres) CreateSlasher(ctx context.Context, sl *models.Slasher) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO slashers (address, base, ncn, admin, delegate_admin, idx, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sl.Address, sl.Base, sl.Ncn, sl.Admin, sl.DelegateAdmin, u64(sl.Index), int16(sl.Bump), sl.CreatedAt, sl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert slasher: %w", translate(err))
	}
	return nil
}

func (s *Postgres) FindSlasher(ctx context.Context, address domain.Address) (*models.Slasher, error) {
	sl, err := scanSlasher(s.q(ctx).QueryRowContext(ctx, lock(ctx, selectSlasher+` WHERE address = $1`), address))
	if err != nil {
		return nil, translate(err)
	}
	return sl, nil
}

func (s *Postgres) UpdateSlasher(ctx context.Context, sl *models.Slasher) error {
	err := expectOne(s.q(ctx).ExecContext(ctx, `
		UPDATE slashers SET admin = $2, delegate_admin = $3, updated_at = $4 WHERE address = $1`,
		sl.Address, sl.Admin, sl.DelegateAdmin, sl.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("update slasher: %w", err)
	}
	return nil
}

func (s *Postgres) ListSlashers(ctx context.Context, ncn domain.Address) ([]*models.Slasher, error) {
	rows, err := s.q(ctx).QueryContext(ctx, selectSlasher+` WHERE ncn = $1 ORDER BY idx`, ncn)
	if err != nil {
		return nil, fmt.Errorf("query slashers: %w", err)
	}
	defer rows.Close()
	var out []*models.Slasher
	for rows.Next() {
		sl, err := scanSlasher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slasher: %w", err)
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Proposal and ticket
// -----------------------------------------------------------------------------

const selectProposal = `
	SELECT address, ncn, operator, slasher, amount, capture_slot, veto_deadline_slot,
	       delete_deadline_slot, status, bump, created_at, updated_at
	FROM slash_proposals`

func scanProposal(row interface{ Scan(...any) error }) (*models.SlashProposal, error) {
	var (
		p                                      models.SlashProposal
		amount, capture, vetoDeadline, deleteAt u64
		status                                 string
		bump                                   int16
	)
	err := row.Scan(&p.Address, &p.Ncn, &p.Operator, &p.Slasher, &amount, &capture, &vetoDeadline,
		&deleteAt, &status, &bump, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Amount, p.CaptureSlot = uint64(amount), uint64(capture)
	p.VetoDeadlineSlot, p.DeleteDeadlineSlot = uint64(vetoDeadline), uint64(deleteAt)
	p.Status, p.Bump = models.ProposalStatus(status), uint8(bump)
	return &p, nil
}

// CreateCase needs both rows to land together. Outside a transaction it
// opens one.
func (s *Postgres) CreateCase(ctx context.Context, p *models.SlashProposal, t *models.ProposalTicket) error {
	if _, ok := txcontext.From(ctx); !ok {
		return s.within(ctx, func(ctx context.Context) error { return s.CreateCase(ctx, p, t) })
	}
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO slash_proposals (address, ncn, operator, slasher, amount, capture_slot,
			veto_deadline_slot, delete_deadline_slot, status, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.Address, p.Ncn, p.Operator, p.Slasher, u64(p.Amount), u64(p.CaptureSlot),
		u64(p.VetoDeadlineSlot), u64(p.DeleteDeadlineSlot), string(p.Status), int16(p.Bump), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert slash proposal: %w", translate(err))
	}
	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO proposal_tickets (address, ncn, slash_proposal, resolver, bump, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.Address, t.Ncn, t.SlashProposal, t.Resolver, int16(t.Bump), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal ticket: %w", translate(err))
	}
	return nil
}

func (s *Postgres) FindProposal(ctx context.Context, address domain.Address) (*models.SlashProposal, error) {
	p, err := scanProposal(s.q(ctx).QueryRowContext(ctx, lock(ctx, selectProposal+` WHERE address = $1`), address))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *Postgres) FindTicket(ctx context.Context, address domain.Address) (*models.ProposalTicket, error) {
	var (
		t    models.ProposalTicket
		bump int16
	)
	err := s.q(ctx).QueryRowContext(ctx, lock(ctx, `
		SELECT address, ncn, slash_proposal, resolver, bump, created_at, updated_at
		FROM proposal_tickets WHERE address = $1`), address,
	).Scan(&t.Address, &t.Ncn, &t.SlashProposal, &t.Resolver, &bump, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	t.Bump = uint8(bump)
	return &t, nil
}

func (s *Postgres) UpdateProposal(ctx context.Context, p *models.SlashProposal) error {
	err := expectOne(s.q(ctx).ExecContext(ctx, `
		UPDATE slash_proposals SET status = $2, delete_deadline_slot = $3, updated_at = $4 WHERE address = $1`,
		p.Address, string(p.Status), u64(p.DeleteDeadlineSlot), p.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("update slash proposal: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateTicket(ctx context.Context, t *models.ProposalTicket) error {
	err := expectOne(s.q(ctx).ExecContext(ctx, `
		UPDATE proposal_tickets SET resolver = $2, updated_at = $3 WHERE address = $1`,
		t.Address, t.Resolver, t.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("update proposal ticket: %w", err)
	}
	return nil
}

// DeleteCase removes the ticket, which must reference proposal, and then the
// proposal.
func (s *Postgres) DeleteCase(ctx context.Context, proposal, ticket domain.Address) error {
	if _, ok := txcontext.From(ctx); !ok {
		return s.within(ctx, func(ctx context.Context) error { return s.DeleteCase(ctx, proposal, ticket) })
	}
	if err := expectOne(s.q(ctx).ExecContext(ctx, `
		DELETE FROM proposal_tickets WHERE address = $1 AND slash_proposal = $2`, ticket, proposal,
	)); err != nil {
		return fmt.Errorf("delete proposal ticket: %w", err)
	}
	if err := expectOne(s.q(ctx).ExecContext(ctx, `DELETE FROM slash_proposals WHERE address = $1`, proposal)); err != nil {
		return fmt.Errorf("delete slash proposal: %w", err)
	}
	return nil
}

func (s *Postgres) ListProposals(ctx context.Context, f models.ProposalFilter) ([]*models.SlashProposal, error) {
	var (
		where []string
		args  []any
	)
	if !f.Ncn.IsZero() {
		args = append(args, f.Ncn)
		where = append(where, fmt.Sprintf("ncn = $%d", len(args)))
	}
	if !f.Operator.IsZero() {
		args = append(args, f.Operator)
		where = append(where, fmt.Sprintf("operator = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("status = ANY($%d::text[])", len(args)))
	}

	query := selectProposal
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY capture_slot, address"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query slash proposals: %w", err)
	}
	defer rows.Close()
	var out []*models.SlashProposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slash proposal: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Postgres) within(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
