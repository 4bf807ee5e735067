package middleware

import (
	"net/http"
	"time"

	"github.com/pitlanehq/garage-backend/pkg/logger"
)

// responseMeta captures what the handler wrote so the access log can report
// it after the fact.
type responseMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeta) WriteHeader(status int) {
	if m.status == 0 {
		m.status = status
	}
	m.ResponseWriter.WriteHeader(status)
}

func (m *responseMeta) Write(p []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(p)
	m.bytes += n
	return n, err
}

// Logging emits one structured access-log line per request.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			meta := &responseMeta{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(meta, r.WithContext(ctx))

			if meta.status == 0 {
				meta.status = http.StatusOK
			}
			logg.Info(logg.WithFields(ctx, map[string]any{
				"status":      meta.status,
				"bytes":       meta.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
			}), "request.complete")
		})
	}
}
