package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/Shoaib-Asghar/electronics-store-api/pkg/correlationid"
)

// Cors allows cross-origin requests from the storefront SPA.
func Cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", correlationid.Header},
		MaxAge:         300,
	})
}
