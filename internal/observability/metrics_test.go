package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/data/shipments/:id", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/data/shipments/:id", "GET", 200, 7*time.Millisecond)
	m.RecordError("/api/admin/clients", "POST", "CONFLICT")

	requests, errors := m.Snapshot()
	if requests["GET /api/data/shipments/:id 200"] != 2 {
		t.Errorf("unexpected request counters: %v", requests)
	}
	if errors["POST /api/admin/clients CONFLICT"] != 1 {
		t.Errorf("unexpected error counters: %v", errors)
	}

	// Snapshots are copies, mutating one must not leak back.
	requests["GET /api/data/shipments/:id 200"] = 99
	fresh, _ := m.Snapshot()
	if fresh["GET /api/data/shipments/:id 200"] != 2 {
		t.Error("snapshot must not alias internal storage")
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/health/live", "GET", 200, time.Millisecond)
	m.RecordError("/health/live", "GET", "INTERNAL_ERROR")
}
