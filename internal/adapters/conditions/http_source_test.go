package conditions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestHTTPSourceSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/conditions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("region"); got != "berlin" {
			t.Errorf("region = %q, want berlin", got)
		}
		if got := r.Header.Get("Authorization"); got != "secret" {
			t.Errorf("authorization = %q, want secret", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"observed_at": "2026-01-01T08:00:00Z",
			"traffic_multiplier": 1.4,
			"weather_multiplier": 1.1,
			"edge_multipliers": {"a|b": 2.0}
		}`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	snap, err := src.Snapshot(context.Background(), "berlin")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.TrafficMultiplier != 1.4 || snap.WeatherMultiplier != 1.1 {
		t.Fatalf("multipliers = %v/%v, want 1.4/1.1", snap.TrafficMultiplier, snap.WeatherMultiplier)
	}
	if snap.EdgeMultipliers["a|b"] != 2.0 {
		t.Fatalf("edge multipliers = %v", snap.EdgeMultipliers)
	}
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"traffic_multiplier": 1.0, "weather_multiplier": 1.0}`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, "")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	snap, err := src.Snapshot(context.Background(), "berlin")
	if err != nil {
		t.Fatalf("snapshot after retries: %v", err)
	}
	if snap.TrafficMultiplier != 1.0 {
		t.Fatalf("traffic = %v, want 1.0", snap.TrafficMultiplier)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server called %d times, want 3", got)
	}
}

func TestHTTPSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, "")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	if _, err := src.Snapshot(context.Background(), "nowhere"); err == nil {
		t.Fatal("expected an error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server called %d times, want 1", got)
	}
}

func TestHTTPSourceRejectsInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"traffic_multiplier": -1, "weather_multiplier": 1.0}`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, "")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	if _, err := src.Snapshot(context.Background(), "berlin"); err == nil {
		t.Fatal("expected an error for invalid multipliers")
	}
}

func TestHTTPSourceEmptyRegion(t *testing.T) {
	src, err := NewHTTPSource("http://example.invalid", "")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if _, err := src.Snapshot(context.Background(), "  "); err == nil {
		t.Fatal("expected an error for an empty region")
	}
}
