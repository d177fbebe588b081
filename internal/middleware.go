package internal

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionIDKey is the context key for the chat session id
	SessionIDKey contextKey = "sessionID"

	// SessionHeader selects the chat session of a request
	SessionHeader = "X-Session-ID"

	// DefaultSessionID is used when no session header is sent
	DefaultSessionID = "default"

	maxSessionIDLen = 128
)

// SessionIDFromContext extracts the chat session id from the request context.
// Returns DefaultSessionID if not found.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(SessionIDKey).(string); ok && v != "" {
		return v
	}
	return DefaultSessionID
}

// SessionMiddleware reads the X-Session-ID header and stores the session id
// in the request context. Missing or oversized ids fall back to the default.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(SessionHeader))
		if id == "" || len(id) > maxSessionIDLen {
			id = DefaultSessionID
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request with the chi route pattern
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if status >= http.StatusInternalServerError {
				logger.Error("request", fields...)
				return
			}
			logger.Info("request", fields...)
		})
	}
}
