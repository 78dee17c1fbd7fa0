package middleware

import (
	"net/http"

	"pawn-backend/internal/config"

	"github.com/rs/cors"
)

// NewCORS builds the CORS wrapper from server config. Credentials are never
// allowed alongside a wildcard origin.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.Server.CorsAllowedOrigins
	credentials := cfg.Server.CorsCredentials && !hasWildcard(origins)

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: credentials,
		MaxAge:           cfg.Server.CorsMaxAge,
	})

	return c.Handler
}

func hasWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
