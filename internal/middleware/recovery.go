package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Recovery converts panics into 500 responses
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail": "Internal Server Error"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
