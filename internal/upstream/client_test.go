package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	client, err := Open(*base, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}
	return client, server
}

func TestGetShipment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/shipments/ship-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ship-1","brand_id":"brand-1","tracking_number":"1Z999AA10123456784"}`))
	}))

	snapshot, err := client.GetShipment(context.Background(), "ship-1")
	if err != nil {
		t.Fatalf("GetShipment: %v", err)
	}
	if snapshot.ID != "ship-1" || snapshot.TrackingNumber != "1Z999AA10123456784" {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}
}

func TestErrorEnvelopePassedThrough(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"shipment not synced yet"}`))
	}))

	_, err := client.GetShipment(context.Background(), "ship-2")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsStatus(err, http.StatusUnprocessableEntity) {
		t.Errorf("expected 422 status error, got %v", err)
	}
	if msg := ErrorMessage(err); msg != "shipment not synced yet" {
		t.Errorf("upstream message should pass through verbatim, got %q", msg)
	}
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"ship-3"}`))
	}))

	snapshot, err := client.GetShipment(context.Background(), "ship-3")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if snapshot.ID != "ship-3" {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestGetStopsAfterExhaustedRetries(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	start := time.Now()
	_, err := client.GetShipment(context.Background(), "ship-4")
	if !IsStatus(err, http.StatusBadGateway) {
		t.Fatalf("expected the last 502 to surface, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, got)
	}
	// Two waits between three attempts, none after the last one.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("exhausted retries should fail promptly, took %v", elapsed)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetShipment(context.Background(), "missing")
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("4xx must not be retried, got %d calls", calls)
	}
}

func TestVerifyToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tokens/verify" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.VerifyToken(context.Background(), "tok"); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
}
