package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contextKey string

const idempotencyKeyKey contextKey = "idempotency_key"

// IdempotencyKey extracts the optional X-Idempotency-Key header. The header
// guards against duplicate certificate submissions; when absent the request
// proceeds unguarded.
func IdempotencyKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Idempotency-Key")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		key, err := uuid.Parse(raw)
		if err != nil {
			log.Warn().Str("idempotency_key", raw).Msg("Invalid idempotency key")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "X-Idempotency-Key must be a UUID"}`))
			return
		}

		ctx := context.WithValue(r.Context(), idempotencyKeyKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdempotencyKey returns the parsed idempotency key, if one was sent
func GetIdempotencyKey(ctx context.Context) (uuid.UUID, bool) {
	key, ok := ctx.Value(idempotencyKeyKey).(uuid.UUID)
	return key, ok
}
