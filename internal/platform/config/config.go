package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"arbiter/pkg/domain"
)

// Default program addresses, so local runs derive stable accounts.
const (
	DefaultProgramID          = "ArbiterResoLver1111111111111111111111111111"
	DefaultRestakingProgramID = "RestakingProgram111111111111111111111111111"
	DefaultVaultProgramID     = "VauLtProgram1111111111111111111111111111111"
)

// Server captures process level configuration.
type Server struct {
	Addr      string
	ProgramID domain.Address

	// RestakingProgramID and VaultProgramID own the seeded registry and
	// vault accounts.
	RestakingProgramID domain.Address
	VaultProgramID     domain.Address

	DatabaseURL string
	TxTimeout   time.Duration
	Redis       RedisConfig
	Kafka       KafkaConfig

	SlotGenesis  time.Time
	SlotDuration time.Duration

	JanitorInterval   time.Duration
	RegistrySeedFile  string
	SignerTokenMaxAge time.Duration
	LogLevel          slog.Level
}

// RedisConfig configures the deadline index client. An empty URL keeps the
// index in process.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit relay. No brokers disables it.
type KafkaConfig struct {
	Brokers       []string
	AuditTopic    string
	ConsumerGroup string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Malformed values are errors rather than silent defaults.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        getEnv("ARBITER_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:    getEnv("AUDIT_TOPIC", "arbiter.audit"),
			ConsumerGroup: getEnv("AUDIT_CONSUMER_GROUP", "arbiter-audit-materializer"),
		},
		RegistrySeedFile: os.Getenv("REGISTRY_SEED_FILE"),
	}

	var err error
	if cfg.ProgramID, err = domain.ParseAddress(getEnv("RESOLVER_PROGRAM_ID", DefaultProgramID)); err != nil {
		return Server{}, fmt.Errorf("RESOLVER_PROGRAM_ID: %w", err)
	}
	if cfg.RestakingProgramID, err = domain.ParseAddress(getEnv("RESTAKING_PROGRAM_ID", DefaultRestakingProgramID)); err != nil {
		return Server{}, fmt.Errorf("RESTAKING_PROGRAM_ID: %w", err)
	}
	if cfg.VaultProgramID, err = domain.ParseAddress(getEnv("VAULT_PROGRAM_ID", DefaultVaultProgramID)); err != nil {
		return Server{}, fmt.Errorf("VAULT_PROGRAM_ID: %w", err)
	}
	if cfg.TxTimeout, err = durationEnv("DB_TX_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = intEnv("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = intEnv("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationEnv("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}

	cfg.SlotGenesis = time.Unix(0, 0).UTC()
	if raw := os.Getenv("SLOT_GENESIS"); raw != "" {
		if cfg.SlotGenesis, err = time.Parse(time.RFC3339, raw); err != nil {
			return Server{}, fmt.Errorf("SLOT_GENESIS: %w", err)
		}
	}
	if cfg.SlotDuration, err = durationEnv("SLOT_DURATION", 400*time.Millisecond); err != nil {
		return Server{}, err
	}
	if cfg.JanitorInterval, err = durationEnv("JANITOR_INTERVAL", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.SignerTokenMaxAge, err = durationEnv("SIGNER_TOKEN_MAX_AGE", 5*time.Minute); err != nil {
		return Server{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Server{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
