// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "student_records",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "student_records",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// StudentChanges counts successful student writes by action (created, updated, deleted).
	StudentChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "student_records",
			Name:      "student_changes_total",
			Help:      "Student records written, by action",
		},
		[]string{"action"},
	)

	// Logins counts login attempts by result (success, failure).
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "student_records",
			Name:      "logins_total",
			Help:      "Login attempts, by result",
		},
		[]string{"result"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	registerOnce       sync.Once
)

func init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, StudentChanges, Logins)
	})
}

// NormalizePath replaces numeric path segments with {id} to keep label
// cardinality bounded: /edit/17 -> /edit/{id}.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// StudentChanged counts a successful create, update or delete.
func StudentChanged(action string) {
	StudentChanges.WithLabelValues(action).Inc()
}

// LoginAttempt counts a login by outcome.
func LoginAttempt(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	Logins.WithLabelValues(result).Inc()
}
