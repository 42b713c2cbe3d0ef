package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arbiter/internal/clock"
	"arbiter/internal/platform/config"
	"arbiter/internal/platform/kafka"
	kafkaconsumer "arbiter/internal/platform/kafka/consumer"
	httpmetrics "arbiter/internal/platform/metrics"
	"arbiter/internal/platform/redis"
	"arbiter/internal/resolver/handler"
	"arbiter/internal/resolver/janitor"
	resolvermetrics "arbiter/internal/resolver/metrics"
	"arbiter/internal/resolver/service"
	resolverstore "arbiter/internal/resolver/store"
	"arbiter/internal/restaking"
	"arbiter/internal/seed"
	"arbiter/internal/signer"
	"arbiter/internal/vault"
	audit "arbiter/pkg/platform/audit"
	auditconsumer "arbiter/pkg/platform/audit/consumer"
	"arbiter/pkg/platform/audit/publishers/compliance"
	"arbiter/pkg/platform/audit/publishers/security"
	auditmemory "arbiter/pkg/platform/audit/store/memory"
	auditpostgres "arbiter/pkg/platform/audit/store/postgres"
	"arbiter/pkg/platform/audit/worker"
	"arbiter/pkg/platform/httputil"
)

type app struct {
	router    http.Handler
	storeKind string
	workers   []func(context.Context) error
	closers   []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type persistence struct {
	store  service.Store
	lister janitor.Lister
	tx     service.Tx
	audit  audit.Store
	outbox *auditpostgres.Store
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	a := &app{}
	reg := prometheus.DefaultRegisterer

	registry := restaking.NewInMemory(cfg.RestakingProgramID)
	vaults := vault.NewInMemory(cfg.VaultProgramID)
	if cfg.RegistrySeedFile != "" {
		f, err := seed.Load(cfg.RegistrySeedFile)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(registry, vaults); err != nil {
			return nil, fmt.Errorf("apply seed: %w", err)
		}
		log.Info("registry seeded", "file", cfg.RegistrySeedFile, "ncns", len(f.Ncns), "vaults", len(f.Vaults))
	}

	p, err := a.openPersistence(ctx, cfg, log)
	if err != nil {
		a.close()
		return nil, err
	}

	index, err := a.deadlineIndex(ctx, cfg, log)
	if err != nil {
		a.close()
		return nil, err
	}

	slots := clock.NewWall(cfg.SlotGenesis, cfg.SlotDuration)
	m := resolvermetrics.New(reg)
	securityPublisher := security.New(p.audit, security.WithLogger(log))
	svc := service.New(cfg.ProgramID, p.store, p.tx, registry, vaults, slots,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(compliance.New(p.audit,
			compliance.WithLogger(log),
			compliance.WithMetrics(compliance.NewMetrics(reg)))),
		service.WithSecurityPublisher(securityPublisher),
		service.WithDeadlineIndex(index),
	)

	sweeper := janitor.NewWorker(index, svc, p.lister, slots,
		janitor.WithInterval(cfg.JanitorInterval),
		janitor.WithLogger(log),
		janitor.WithMetrics(m),
	)
	a.workers = append(a.workers, sweeper.Run, securityPublisher.Run)

	if err := a.auditRelay(ctx, cfg, log, p.outbox); err != nil {
		a.close()
		return nil, err
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log, httpmetrics.New(reg), signer.NewVerifier(cfg.SignerTokenMaxAge)).Register(r)
	a.router = r
	return a, nil
}

// openPersistence picks Postgres when DATABASE_URL is set and in-memory
// stores otherwise.
func (a *app) openPersistence(ctx context.Context, cfg config.Server, log *slog.Logger) (persistence, error) {
	if cfg.DatabaseURL == "" {
		a.storeKind = "memory"
		mem := resolverstore.NewInMemory()
		log.Warn("DATABASE_URL not set; using in-memory stores, state is lost on restart")
		return persistence{store: mem, lister: mem, tx: mem, audit: auditmemory.NewInMemoryStore()}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return persistence{}, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	if err := db.PingContext(ctx); err != nil {
		return persistence{}, fmt.Errorf("ping database: %w", err)
	}
	if err := resolverstore.Migrate(ctx, db); err != nil {
		return persistence{}, err
	}

	a.storeKind = "postgres"
	pg := resolverstore.NewPostgres(db)
	outbox := auditpostgres.New(db)
	return persistence{
		store:  pg,
		lister: pg,
		tx:     newResolverPostgresTx(db, pg, cfg.TxTimeout),
		audit:  outbox,
		outbox: outbox,
	}, nil
}

func (a *app) deadlineIndex(ctx context.Context, cfg config.Server, log *slog.Logger) (janitor.Index, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return janitor.NewMemoryIndex(), nil
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	log.Info("janitor deadline index on redis")
	return janitor.NewRedisIndex(client.Client, ""), nil
}

// auditRelay publishes the outbox to Kafka and materializes it back into
// audit_events. It needs both Postgres and brokers.
func (a *app) auditRelay(ctx context.Context, cfg config.Server, log *slog.Logger, outbox *auditpostgres.Store) error {
	if outbox == nil || len(cfg.Kafka.Brokers) == 0 {
		if outbox != nil {
			log.Warn("KAFKA_BROKERS not set; audit outbox rows stay pending")
		}
		return nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka.Brokers)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, producer.Close)
	if err := kafka.EnsureTopic(ctx, producer.Client(), cfg.Kafka.AuditTopic, 3, 1); err != nil {
		return err
	}

	relay := worker.NewRelay(outbox, producer, cfg.Kafka.AuditTopic, 0, log)
	router := auditconsumer.NewRouter(log, nil)
	router.Register(cfg.Kafka.AuditTopic, auditconsumer.NewEventHandler(outbox, log))
	materializer, err := kafkaconsumer.New(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup,
		[]string{cfg.Kafka.AuditTopic}, router, log)
	if err != nil {
		return err
	}
	a.workers = append(a.workers, relay.Run, materializer.Run)
	return nil
}
