package middleware

import (
	"computer-maintenance-api/internal/config"
	"computer-maintenance-api/internal/logger"
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Idle clients are evicted from the limiter registry after clientTTL.
const (
	clientTTL     = 10 * time.Minute
	clientCleanup = time.Minute
)

// SecurityMiddleware groups the transport guards mounted in front of the API.
type SecurityMiddleware struct {
	config  *config.SecurityConfig
	logger  *zap.Logger
	clients *cache.Cache
}

// NewSecurityMiddleware builds the middleware set from the security section of the config.
func NewSecurityMiddleware(cfg *config.SecurityConfig, log *zap.Logger) *SecurityMiddleware {
	return &SecurityMiddleware{
		config:  cfg,
		logger:  logger.OrNop(log).Named("security"),
		clients: cache.New(clientTTL, clientCleanup),
	}
}

// RateLimit rejects clients that exceed their token bucket with 429.
func (sm *SecurityMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := sm.getClientIP(r)

		if !sm.limiterFor(clientIP).Allow() {
			sm.logger.Warn("rate limit exceeded", zap.String("client_ip", clientIP))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded", "RATE_LIMIT_EXCEEDED")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiterFor returns the client's limiter, creating it on first use. Every hit
// refreshes the expiry so only idle clients are evicted.
func (sm *SecurityMiddleware) limiterFor(clientIP string) *rate.Limiter {
	if v, ok := sm.clients.Get(clientIP); ok {
		limiter := v.(*rate.Limiter)
		sm.clients.SetDefault(clientIP, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(sm.config.RateLimitRPS), sm.config.RateLimitBurst)
	if err := sm.clients.Add(clientIP, limiter, cache.DefaultExpiration); err != nil {
		// Another request registered this client first.
		if v, ok := sm.clients.Get(clientIP); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// CORS answers preflight requests and echoes allowed origins.
func (sm *SecurityMiddleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sm.config.EnableCORS {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")

		if sm.isOriginAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestTimeout puts the configured deadline on the request context. Repositories
// derive their query timeouts from it, so an expired request surfaces as a
// TIMEOUT_ERROR from the service layer.
func (sm *SecurityMiddleware) RequestTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), sm.config.RequestTimeout)
		defer cancel()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TrustedProxy resolves the client IP once and stores it in the request context.
func (sm *SecurityMiddleware) TrustedProxy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPKey, sm.getClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SecurityHeaders sets the browser hardening headers on every response.
func (sm *SecurityMiddleware) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")

		next.ServeHTTP(w, r)
	})
}

func (sm *SecurityMiddleware) getClientIP(r *http.Request) string {
	remoteAddr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		remoteAddr = host
	}

	// Forwarded headers are only honoured from a trusted proxy.
	if sm.isTrustedProxy(remoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			return strings.TrimSpace(ips[0])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	return remoteAddr
}

func (sm *SecurityMiddleware) isTrustedProxy(ip string) bool {
	for _, trustedIP := range sm.config.TrustedProxies {
		if ip == trustedIP {
			return true
		}
	}
	return false
}

func (sm *SecurityMiddleware) isOriginAllowed(origin string) bool {
	for _, allowedOrigin := range sm.config.AllowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}
