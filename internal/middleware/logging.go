package middleware

import (
	"computer-maintenance-api/internal/logger"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggingMiddleware provides request logging with security context
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger.OrNop(log).Named("http"),
	}
}

// LogRequests logs one line per request. Server errors log at error level, client
// errors at warn.
func (lm *LoggingMiddleware) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := ClientIPFromContext(r.Context())
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", clientIP),
			zap.String("user_agent", r.UserAgent()),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		}

		switch {
		case wrapped.statusCode >= http.StatusInternalServerError:
			lm.logger.Error("request", fields...)
		case wrapped.statusCode == http.StatusTooManyRequests || wrapped.statusCode == http.StatusRequestTimeout:
			lm.logger.Warn("request rejected", fields...)
		case wrapped.statusCode >= http.StatusBadRequest:
			lm.logger.Warn("request", fields...)
		default:
			lm.logger.Info("request", fields...)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}
