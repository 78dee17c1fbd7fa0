package middleware

import (
	"net/http"
	"strings"
	"time"

	"pawn-backend/internal/logger"

	"github.com/sirupsen/logrus"
)

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// APILogging writes one structured log line per request
func APILogging(next http.Handler) http.Handler {
	log := logger.Component("http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		entry := log.WithFields(logrus.Fields{
			"method":       r.Method,
			"path":         sanitizePath(r.URL.Path),
			"status":       wrapped.statusCode,
			"durationMs":   float64(time.Since(start).Microseconds()) / 1000.0,
			"responseSize": wrapped.bytesWritten,
			"ip":           getClientIP(r),
			"userAgent":    r.UserAgent(),
		})

		switch {
		case wrapped.statusCode >= 500:
			entry.Error(http.StatusText(wrapped.statusCode))
		case wrapped.statusCode >= 400:
			entry.Warn(http.StatusText(wrapped.statusCode))
		default:
			entry.Info("request completed")
		}
	})
}

// shouldSkipLogging returns true for probe and scrape paths
func shouldSkipLogging(path string) bool {
	skipPaths := []string{
		"/health",
		"/metrics",
		"/favicon.ico",
	}

	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}

	return false
}

func sanitizePath(path string) string {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 500 {
		path = path[:500]
	}
	return path
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (for proxies/load balancers)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
