//go:build e2e

// Package e2e drives the HTTP API end to end with godog. Each scenario gets
// its own in-process server over in-memory stores and a manual slot clock.
package e2e

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"arbiter/internal/clock"
	httpmetrics "arbiter/internal/platform/metrics"
	"arbiter/internal/resolver/handler"
	"arbiter/internal/resolver/metrics"
	"arbiter/internal/resolver/service"
	"arbiter/internal/resolver/store"
	"arbiter/internal/restaking"
	"arbiter/internal/signer"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
	"arbiter/pkg/platform/audit/publishers/compliance"
	auditmemory "arbiter/pkg/platform/audit/store/memory"
)

var (
	program          = domain.Address{0xF0}
	restakingProgram = domain.Address{0xF1}
	vaultProgram     = domain.Address{0xF2}
)

// World is the per-scenario deployment and the last HTTP exchange.
type World struct {
	server   *httptest.Server
	registry *restaking.InMemory
	vaults   *vault.InMemory
	clock    *clock.Manual
	audit    *auditmemory.InMemoryStore

	keys     map[string]ed25519.PrivateKey
	accounts map[string]domain.Address

	status int
	body   []byte
}

func NewWorld() *World {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	st := store.NewInMemory()

	w := &World{
		registry: restaking.NewInMemory(restakingProgram),
		vaults:   vault.NewInMemory(vaultProgram),
		clock:    clock.NewManual(0),
		audit:    auditmemory.NewInMemoryStore(),
		keys:     make(map[string]ed25519.PrivateKey),
		accounts: make(map[string]domain.Address),
	}
	svc := service.New(program, st, st, w.registry, w.vaults, w.clock,
		service.WithLogger(logger),
		service.WithMetrics(metrics.New(reg)),
		service.WithAuditPublisher(compliance.New(w.audit)),
	)

	r := chi.NewRouter()
	handler.New(svc, logger, httpmetrics.New(reg), signer.NewVerifier(time.Minute)).Register(r)
	w.server = httptest.NewServer(r)
	return w
}

func (w *World) Close() { w.server.Close() }

func (w *World) Registry() *restaking.InMemory { return w.registry }
func (w *World) Vaults() *vault.InMemory       { return w.vaults }
func (w *World) Clock() *clock.Manual          { return w.clock }
func (w *World) Program() domain.Address       { return program }

func (w *World) RestakingProgram() domain.Address { return restakingProgram }
func (w *World) VaultProgram() domain.Address     { return vaultProgram }

// Signer returns the address of role's key, generating the key on first use.
func (w *World) Signer(role string) domain.Address {
	key, ok := w.keys[role]
	if !ok {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			panic(err)
		}
		key = priv
		w.keys[role] = key
	}
	return domain.AddressFromPublicKey(key.Public().(ed25519.PublicKey))
}

// Account returns the address recorded under name, or a fresh random one.
func (w *World) Account(name string) domain.Address {
	if a, ok := w.accounts[name]; ok {
		return a
	}
	var a domain.Address
	if _, err := rand.Read(a[:]); err != nil {
		panic(err)
	}
	w.accounts[name] = a
	return a
}

func (w *World) SetAccount(name string, a domain.Address) { w.accounts[name] = a }

// Request sends body as JSON. An empty role sends the request unsigned.
func (w *World) Request(ctx context.Context, method, path, role string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, w.server.URL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		w.Signer(role)
		token, err := signer.Issue(w.keys[role], domain.APIVersionV1, 30*time.Second, time.Now())
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := w.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	w.status = resp.StatusCode
	w.body, err = io.ReadAll(resp.Body)
	return err
}

func (w *World) Status() int { return w.status }

// Field reads a dotted path such as "proposal.status" from the last JSON
// response.
func (w *World) Field(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(w.body, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w (body %q)", err, w.body)
	}
	cur := doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", path, part)
		}
		cur, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q missing in %s", path, w.body)
		}
	}
	return cur, nil
}

func (w *World) Body() string { return string(w.body) }

func (w *World) AuditActions() []string { return w.audit.Actions() }
