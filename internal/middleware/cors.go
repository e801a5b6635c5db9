package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware configures cross-origin access to the API. The GraphQL
// endpoint only ever sees GET (GraphiQL) and POST, so the allowed surface
// stays narrow. Development allows any origin so local frontends and
// GraphiQL can connect without extra setup.
func CORSMiddleware(allowedOrigins []string, isDevelopment bool) func(http.Handler) http.Handler {
	if isDevelopment {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	})
}
