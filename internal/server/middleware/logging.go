package middleware

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"washplane/internal/logger"
	"washplane/internal/store"
)

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack delegates to the underlying writer so websocket upgrades work
// through the logging middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// authRecord is a mutable slot the auth middleware fills in after it
// resolves the business. The logging middleware runs outside auth, so it
// cannot see auth's derived context; it reads this slot instead once the
// request has been served.
type authRecord struct {
	business *store.Business
}

type authRecordKey struct{}

func recordBusiness(ctx context.Context, business *store.Business) {
	if rec, ok := ctx.Value(authRecordKey{}).(*authRecord); ok {
		rec.business = business
	}
}

// RequestLogging attaches a request ID to the context and writes one access
// log line per request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			rec := &authRecord{}
			ctx := logger.WithRequestID(r.Context(), requestID)
			ctx = context.WithValue(ctx, authRecordKey{}, rec)
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r.WithContext(ctx))

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if rec.business != nil {
				attrs = append(attrs, "business_id", rec.business.ID)
			}
			log.Info("request", attrs...)
		})
	}
}
