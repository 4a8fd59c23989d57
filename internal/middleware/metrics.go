package middleware

import (
	"net/http"
	"time"

	"github.com/sakif/student-records/internal/metrics"
)

// Metrics records request duration and count for each request, except
// scrapes of /metrics itself.
// Stack it after Recoverer so a recovered panic is counted as the 500 it became.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)

		next.ServeHTTP(wrapped, r)

		if r.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start).Seconds())
	})
}
