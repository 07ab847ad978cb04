package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{"*"}

// CORS returns middleware that applies the configured origin policy. An empty
// list or a "*" entry allows every origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(origins))
	wildcard := false
	for _, origin := range origins {
		if origin == "" {
			continue
		}
		if origin == "*" {
			wildcard = true
		}
		allowed = append(allowed, origin)
	}
	if len(allowed) == 0 {
		allowed = defaultCORSOrigins
		wildcard = true
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}).Handler
}
