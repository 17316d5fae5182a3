package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"procure/pkg/requestcontext"
)

// RequestID assigns each request a correlation id, honoring an inbound
// X-Request-Id so ids survive the vendor-service -> procurement-service hop.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
