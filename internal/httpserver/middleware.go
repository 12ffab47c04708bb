package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/google/uuid"
)

type (
	statusWriter struct {
		http.ResponseWriter
		status int
	}
)

const (
	RequestIDHeader = "X-Request-Id"
)

// WithRequestLog tags every request with an id and places a logger carrying
// that id in the request context.
func WithRequestLog(ctx context.Context, next http.Handler) http.Handler {
	base := logutil.GetOrDefault(ctx)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		log := base.With().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		w.Header().Set(RequestIDHeader, id)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(logutil.WithLogger(r.Context(), log)))
		log.Info().Int("status", sw.status).Dur("took", time.Since(start)).Msg("Request served")
	})
}

func (s *statusWriter) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
