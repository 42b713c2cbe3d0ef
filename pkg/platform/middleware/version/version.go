// Package version stamps the route API version and checks signer tokens
// against it.
package version

import (
	"net/http"

	"arbiter/pkg/domain"
	"arbiter/pkg/requestcontext"
)

// ExtractVersion records the version of the chi subrouter it is mounted on.
//
//	r.Route("/v1", func(v1 chi.Router) {
//	    v1.Use(version.ExtractVersion(domain.APIVersionV1))
//	})
func ExtractVersion(v domain.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithAPIVersion(r.Context(), v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
