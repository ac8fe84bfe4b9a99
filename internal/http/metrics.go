package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMetrics exposes gatherer on path for Prometheus scrapes.
func RegisterMetrics(mux *http.ServeMux, path string, gatherer prometheus.Gatherer) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if gatherer == nil {
		return fmt.Errorf("http: metrics gatherer is required")
	}
	if strings.TrimSpace(path) == "" {
		path = "/metrics"
	}
	mux.Handle("GET "+joinPath(path, ""), promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return nil
}
