// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values and services read them, so services never
// import net/http.
//
// Usage in services (read values):
//
//	signer := requestcontext.Signer(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithSigner(ctx, admin)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"arbiter/pkg/domain"
)

type (
	signerKey          struct{}
	clientIPKey        struct{}
	clientAgentKey     struct{}
	requestIDKey       struct{}
	requestTimeKey     struct{}
	apiVersionKey      struct{}
	tokenAPIVersionKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeySigner          = signerKey{}
	ContextKeyClientIP        = clientIPKey{}
	ContextKeyClientAgent     = clientAgentKey{}
	ContextKeyRequestID       = requestIDKey{}
	ContextKeyRequestTime     = requestTimeKey{}
	ContextKeyAPIVersion      = apiVersionKey{}
	ContextKeyTokenAPIVersion = tokenAPIVersionKey{}
)

// -----------------------------------------------------------------------------
// Signer
// -----------------------------------------------------------------------------

// Signer returns the address whose key signed the request's bearer token.
// Returns the zero address if the request was not signed.
func Signer(ctx context.Context) domain.Address {
	if signer, ok := ctx.Value(ContextKeySigner).(domain.Address); ok {
		return signer
	}
	return domain.Address{}
}

// WithSigner injects a verified signer.
func WithSigner(ctx context.Context, signer domain.Address) context.Context {
	return context.WithValue(ctx, ContextKeySigner, signer)
}

// -----------------------------------------------------------------------------
// Client metadata
// -----------------------------------------------------------------------------

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// ClientAgent is the parsed client identity, e.g. "resolverctl/1.0" or
// "Firefox 120.0".
func ClientAgent(ctx context.Context) string {
	if agent, ok := ctx.Value(ContextKeyClientAgent).(string); ok {
		return agent
	}
	return ""
}

// WithClientMetadata injects client IP and agent.
func WithClientMetadata(ctx context.Context, clientIP, agent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	return context.WithValue(ctx, ContextKeyClientAgent, agent)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// APIVersion is the version of the matched route.
func APIVersion(ctx context.Context) domain.APIVersion {
	if v, ok := ctx.Value(ContextKeyAPIVersion).(domain.APIVersion); ok {
		return v
	}
	return ""
}

func WithAPIVersion(ctx context.Context, v domain.APIVersion) context.Context {
	return context.WithValue(ctx, ContextKeyAPIVersion, v)
}

// TokenAPIVersion is the version claimed by the signer token.
func TokenAPIVersion(ctx context.Context) domain.APIVersion {
	if v, ok := ctx.Value(ContextKeyTokenAPIVersion).(domain.APIVersion); ok {
		return v
	}
	return ""
}

func WithTokenAPIVersion(ctx context.Context, v domain.APIVersion) context.Context {
	return context.WithValue(ctx, ContextKeyTokenAPIVersion, v)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now returns the wall time captured when the request started, for audit
// timestamps. Slot arithmetic never uses it; see the clock package.
// Falls back to time.Now() outside HTTP (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
