package middleware

import (
	"net/http"
	"time"

	"procure/pkg/requestcontext"
)

// RequestTime captures one timestamp when the request arrives so every record
// created while serving it carries the same creation time. The five records
// of a generation batch share their timestamp through this.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
