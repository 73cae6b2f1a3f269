// Package requesttime pins a single "now" per request so issuance dates,
// expiry checks and DID document timestamps agree within one call.
package requesttime

import (
	"net/http"
	"time"

	"did-ecosystem/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
