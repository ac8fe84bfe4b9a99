package metrics_test

import (
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	recorder := metrics.NewPrometheus("test")
	recorder.Register(prometheus.NewRegistry())

	recorder.ResolveOutcome(metrics.ResolvedBySlug)
	recorder.ResolveOutcome(metrics.ResolvedBySlug)
	recorder.ResolveOutcome(metrics.ResolveMiss)
	recorder.CommandOutcome("pages.save", nil)
	recorder.CommandOutcome("pages.save", errors.New("boom"))
	recorder.SectionSkipped("")

	if got := testutil.ToFloat64(recorder.Resolves.WithLabelValues(metrics.ResolvedBySlug)); got != 2 {
		t.Fatalf("expected 2 slug resolutions, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.Commands.WithLabelValues("pages.save", "error")); got != 1 {
		t.Fatalf("expected 1 failed save, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.Skipped.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected unknown skip to be counted, got %v", got)
	}
}
