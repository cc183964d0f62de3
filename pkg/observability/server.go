package observability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mount registers /metrics, /health and /ready on r
func Mount(r chi.Router, healthChecker *HealthChecker) {
	r.Handle("/metrics", promhttp.Handler())

	if healthChecker != nil {
		r.Get("/health", healthChecker.HealthHandler())
	}

	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		if healthChecker != nil && !healthChecker.Healthy(req.Context()) {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}
