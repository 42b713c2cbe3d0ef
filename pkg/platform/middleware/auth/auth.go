// Package auth authenticates the request signer from its bearer token.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"arbiter/internal/signer"
	dErrors "arbiter/pkg/domain-errors"
	"arbiter/pkg/platform/httputil"
	"arbiter/pkg/requestcontext"
)

// TokenValidator verifies a bearer token and reports its signer.
type TokenValidator interface {
	ValidateToken(token string) (*signer.Verified, error)
}

// RequireSigner rejects requests without a valid signer token and stores the
// verified signer and token version on the context.
func RequireSigner(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			verified, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = requestcontext.WithSigner(ctx, verified.Signer)
			if !verified.APIVersion.IsNil() {
				ctx = requestcontext.WithTokenAPIVersion(ctx, verified.APIVersion)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
