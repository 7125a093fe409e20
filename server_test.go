package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cleanride/realtime/arrivals"
	"github.com/cleanride/realtime/config"
	"github.com/cleanride/realtime/feeds"
	"github.com/cleanride/realtime/gtfsrt"
	"github.com/cleanride/realtime/metrics"
	"github.com/cleanride/realtime/stations"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	collector := metrics.NewCollector()
	fetcher := gtfsrt.NewFetcher(gtfsrt.FetcherOptions{Offline: true}, nil, collector)
	svc := arrivals.NewService(stations.Demo(), nil, fetcher, feeds.Default(), nil, collector)
	return NewServer(config.ServerConfig{Port: 8080}, svc, fetcher, collector, nil)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, testServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body.Status != "ok" || !body.Offline {
		t.Errorf("unexpected health body: %+v", body)
	}
}

func TestArrivalsEndpoint(t *testing.T) {
	rec := get(t, testServer(t), "/api/arrivals/127")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body arrivals.StationArrivals
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode arrivals: %v", err)
	}
	if body.Station.ID != "127" {
		t.Errorf("unexpected station %+v", body.Station)
	}
	if len(body.Arrivals) == 0 {
		t.Error("expected generated arrivals in offline mode")
	}
	for _, a := range body.Arrivals {
		if a.Time.IsZero() || a.Line == "" {
			t.Errorf("incomplete arrival: %+v", a)
		}
	}
}

func TestArrivalsEndpointUnknownStation(t *testing.T) {
	rec := get(t, testServer(t), "/api/arrivals/Z99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error == "" {
		t.Error("expected an error message")
	}
}

func TestStartWaitsForShutdownDrain(t *testing.T) {
	collector := metrics.NewCollector()
	fetcher := gtfsrt.NewFetcher(gtfsrt.FetcherOptions{Offline: true}, nil, collector)
	svc := arrivals.NewService(stations.Demo(), nil, fetcher, feeds.Default(), nil, collector)
	srv := NewServer(config.ServerConfig{Port: 0}, svc, fetcher, collector, nil)

	started := make(chan error, 1)
	go func() { started <- srv.Start() }()

	// Give the listener a moment; Start must stay blocked until the drain
	// finishes, or callers tear down stores under in-flight handlers.
	time.Sleep(50 * time.Millisecond)
	select {
	case err := <-started:
		t.Fatalf("Start returned before shutdown: %v", err)
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-started:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after shutdown completed")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	// Generate some traffic first so counters exist.
	_ = get(t, srv, "/api/arrivals/127")

	rec := get(t, srv, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected metrics exposition output")
	}
}
