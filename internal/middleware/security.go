package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/unrolled/secure"
)

// contentSecurityPolicy allows the site's own assets plus the icon CDN
// and placeholder images.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com",
	"script-src 'self' 'unsafe-inline'",
	"img-src 'self' data: https: https://via.placeholder.com",
	"font-src 'self' https://cdnjs.cloudflare.com",
	"connect-src 'self'",
}, "; ")

// SecurityHeaders sets the content security policy and the usual
// hardening headers on every response.
func SecurityHeaders() func(http.Handler) http.Handler {
	s := secure.New(secure.Options{
		ContentSecurityPolicy: contentSecurityPolicy,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
	})
	return s.Handler
}

// CORS allows cross-origin calls from any origin.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	})
}
