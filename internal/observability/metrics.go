package observability

import (
	"fmt"
	"sync"
	"time"
)

// Metrics keeps in-process counters for the dashboard API. Nothing ships
// them anywhere; they are exposed on the health surface for ad-hoc
// inspection.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one handled request by method, route and status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %d", method, path, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
}

// RecordError counts one enveloped error by method, route and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %s", method, path, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// Snapshot returns copies of the counters.
func (m *Metrics) Snapshot() (requests, errors map[string]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests = make(map[string]int64, len(m.requests))
	for k, v := range m.requests {
		requests[k] = v
	}
	errors = make(map[string]int64, len(m.errors))
	for k, v := range m.errors {
		errors[k] = v
	}
	return requests, errors
}
