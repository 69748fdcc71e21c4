package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewManagerWithCustomRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(
		WithPrometheusRegistry(registry),
		WithNamespace("testns"),
		WithSubsystem("testsub"),
	)
	if m == nil {
		t.Fatal("manager is nil")
	}

	m.snapshotsBuilt.Inc()
	m.fitFailures.Inc()
	m.activeStreams.Set(3)

	if got := testutil.ToFloat64(m.snapshotsBuilt); got != 1 {
		t.Errorf("snapshotsBuilt = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fitFailures); got != 1 {
		t.Errorf("fitFailures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.activeStreams); got != 3 {
		t.Errorf("activeStreams = %v, want 3", got)
	}
}

func TestGlobalHelpers(t *testing.T) {
	before := testutil.ToFloat64(globalManager.snapshotsBuilt)
	RecordSnapshotBuilt()
	RecordMutationTick()
	RecordFrameSent()
	RecordStreamClient()
	RecordStreamError("degenerate_input")
	RecordHTTPRequest("curves_stream", "GET", "200")
	RecordHTTPRequestDuration("curves_stream", "GET", "200", 1.5)
	UpdateActiveStreams(2)
	UpdateSystemMemoryUsage(1024)
	UpdateSystemGoroutineCount(10)
	RecordSystemGCPauseTime(0.2)
	RecordFitDuration(0.8)

	after := testutil.ToFloat64(globalManager.snapshotsBuilt)
	if after != before+1 {
		t.Errorf("snapshotsBuilt = %v, want %v", after, before+1)
	}
}

func TestMetricNames(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithPrometheusRegistry(registry))
	m.snapshotsBuilt.Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "curvecast_stream_") {
			found = true
		}
	}
	if !found {
		t.Error("expected metrics under the curvecast_stream prefix")
	}
}

func TestGetRegistry(t *testing.T) {
	if GetRegistry() == nil {
		t.Fatal("custom registry is nil")
	}
}
