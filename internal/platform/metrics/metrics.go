// Package metrics expone los collectors Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry tiene solo los collectors de esta app (+ runtime de Go).
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pet_adoption",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pet_adoption",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	signups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "accounts",
			Name:      "signups_total",
			Help:      "Signup attempts by result.",
		},
		[]string{"result"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "accounts",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		},
		[]string{"result"},
	)

	likes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "ratings",
			Name:      "changes_total",
			Help:      "Likes and unlikes by target kind.",
		},
		[]string{"kind", "action"},
	)

	transfers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pet_adoption",
			Subsystem: "pets",
			Name:      "transfers_total",
			Help:      "Pet ownership transfers by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		httpInFlight,
		httpRequests,
		httpDuration,
		signups,
		logins,
		likes,
		transfers,
	)
}

// Handler sirve el registry en formato Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler cuenta requests por método, patrón de ruta chi y status.
// Usa el patrón (/pets/{petID}) y no el path crudo para no explotar cardinalidad.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func RecordSignup(result string)       { signups.WithLabelValues(result).Inc() }
func RecordLogin(result string)        { logins.WithLabelValues(result).Inc() }
func RecordRating(kind, action string) { likes.WithLabelValues(kind, action).Inc() }
func RecordTransfer(result string)     { transfers.WithLabelValues(result).Inc() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
