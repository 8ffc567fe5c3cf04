package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tair/stock-tracker/pkg/logger"
)

// MiddlewareConfig holds configuration for middlewares
type MiddlewareConfig struct {
	EnableLogging   bool
	EnableTracing   bool
	EnableCORS      bool
	EnableRecovery  bool
	EnableTimeout   bool
	TimeoutDuration time.Duration
	CORSOptions     cors.Options
}

// DefaultMiddlewareConfig returns default middleware configuration
func DefaultMiddlewareConfig(timeout time.Duration) *MiddlewareConfig {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MiddlewareConfig{
		EnableLogging:   true,
		EnableTracing:   true,
		EnableCORS:      true,
		EnableRecovery:  true,
		EnableTimeout:   true,
		TimeoutDuration: timeout,
		CORSOptions: cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", SessionHeader, "X-Request-ID"},
			ExposedHeaders: []string{SessionHeader, "X-Request-ID"},
		},
	}
}

// RegisterMiddlewares registers all configured middlewares to the router
func RegisterMiddlewares(router *mux.Router, config *MiddlewareConfig) {
	logger.Logger.Info().
		Bool("logging", config.EnableLogging).
		Bool("tracing", config.EnableTracing).
		Bool("cors", config.EnableCORS).
		Bool("recovery", config.EnableRecovery).
		Bool("timeout", config.EnableTimeout).
		Dur("timeout_duration", config.TimeoutDuration).
		Msg("Registering middlewares")

	// Recovery middleware (first - catches panics)
	if config.EnableRecovery {
		router.Use(RecoveryMiddleware())
	}

	// Timeout middleware (early - sets request timeout)
	if config.EnableTimeout {
		router.Use(TimeoutMiddleware(config.TimeoutDuration))
	}

	// Request ID middleware (for correlation)
	router.Use(RequestIDMiddleware())

	// Tracing before logging so request logs carry the trace id
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("inventory-http-request", next)
		})
	}

	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	// Security headers middleware
	router.Use(SecurityHeadersMiddleware())

	logger.Logger.Info().Msg("All middlewares registered successfully")
}

// RecoveryMiddleware recovers from panics and returns 500 error
func RecoveryMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("Panic recovered")

					respondJSON(w, http.StatusInternalServerError, Response{
						Success: false,
						Error:   "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutMiddleware sets a timeout for HTTP requests
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", requestID)
			r.Header.Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Swagger UI loads inline scripts
			if !strings.HasPrefix(r.URL.Path, "/swagger/") {
				w.Header().Set("Content-Security-Policy", "default-src 'self'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SetupCORS creates and configures CORS middleware
func SetupCORS(config *MiddlewareConfig) func(http.Handler) http.Handler {
	if !config.EnableCORS {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(config.CORSOptions)
	return c.Handler
}
