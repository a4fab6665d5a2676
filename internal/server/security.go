package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the HTTP hardening applied to every request.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists the origins granted access. "*" matches any.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised in CORS responses.
	AllowedMethods []string
	// MaxPrec is the largest precision in bits a request may ask for.
	MaxPrec uint
	// MaxInputLen is the largest accepted operand text in bytes.
	MaxInputLen int
}

// DefaultSecurityConfig returns the hardening defaults: permissive CORS for
// the JSON API and bounds that keep a single request from monopolizing the
// process.
//
// Returns:
//   - SecurityConfig: The default configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		MaxPrec:        1 << 20,
		MaxInputLen:    1 << 16,
	}
}

// SecurityMiddleware wraps next with security response headers, CORS
// handling and OPTIONS preflight short-circuiting.
//
// Parameters:
//   - config: The security configuration to enforce.
//   - next: The handler to invoke for non-preflight requests.
//
// Returns:
//   - http.HandlerFunc: The wrapped handler.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)

		if config.EnableCORS {
			setCORSHeaders(w, r, config)
		}

		// Preflight requests stop here.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setSecurityHeaders applies the standard hardening headers.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// setCORSHeaders emits CORS headers when the request origin is allowed.
func setCORSHeaders(w http.ResponseWriter, r *http.Request, config SecurityConfig) {
	origin := r.Header.Get("Origin")
	allowed := ""
	for _, o := range config.AllowedOrigins {
		if o == "*" {
			allowed = "*"
			break
		}
		if o == origin && origin != "" {
			allowed = origin
			break
		}
	}
	if allowed == "" {
		return
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", allowed)
	h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}
