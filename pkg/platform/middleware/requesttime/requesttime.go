// Package requesttime captures one wall time per request so audit events of
// the same request share a timestamp.
package requesttime

import (
	"net/http"
	"time"

	"arbiter/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
