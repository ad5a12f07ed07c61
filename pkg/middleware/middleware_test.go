package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsConfigDefaults(t *testing.T) {
	config := defaultMetricsConfig()
	if config.Namespace != "routefs" {
		t.Errorf("Namespace = %q, want %q", config.Namespace, "routefs")
	}
	if config.Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should default to the default registerer")
	}
}

func TestMetricsOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	config := defaultMetricsConfig()
	for _, opt := range []MetricsOption{
		WithNamespace("mysite"),
		WithSubsystem("web"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
		WithRegistry(reg),
	} {
		opt(&config)
	}

	if config.Namespace != "mysite" || config.Subsystem != "web" {
		t.Errorf("Namespace/Subsystem = %q/%q", config.Namespace, config.Subsystem)
	}
	if config.ConstLabels["env"] != "test" {
		t.Errorf("ConstLabels = %v", config.ConstLabels)
	}
	if len(config.Buckets) != 2 {
		t.Errorf("Buckets = %v", config.Buckets)
	}
	if config.Registry != reg {
		t.Error("Registry not applied")
	}
}

func TestPrometheusMiddlewareCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg))

	mux := chi.NewRouter()
	mux.Get("/blog/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(mux)

	for _, path := range []string{"/blog/a", "/blog/b"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	m := globalMetrics
	if m == nil {
		t.Fatal("globalMetrics not initialized")
	}
	// Both concrete URLs share the pattern label.
	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/blog/{slug}", "GET", "2xx"))
	if got != 2 {
		t.Errorf("requests_total{/blog/{slug}} = %v, want 2", got)
	}
}

func TestPrometheusMiddlewareStatusClasses(t *testing.T) {
	mw := Prometheus()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	got := testutil.ToFloat64(globalMetrics.requestsTotal.WithLabelValues("unmatched", "GET", "4xx"))
	if got < 1 {
		t.Errorf("requests_total{unmatched,4xx} = %v, want >= 1", got)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		if got := statusClass(tt.status); got != tt.want {
			t.Errorf("statusClass(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusRecorderDefaultsTo200(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.Write([]byte("ok"))
	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.status)
	}
}

func TestStatusRecorderKeepsFirstStatus(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: inner, status: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusOK)
	if rec.status != http.StatusTeapot {
		t.Errorf("status = %d, want first written 418", rec.status)
	}
}

func TestRecordFunctionsWithoutInit(t *testing.T) {
	// Must not panic even before the middleware initializes metrics.
	RecordReload(10)
	RecordRenderError("layout")
}

func TestOTelConfigDefaults(t *testing.T) {
	config := defaultOTelConfig()
	if config.TracerName != "routefs" {
		t.Errorf("TracerName = %q, want %q", config.TracerName, "routefs")
	}
	if config.IncludeQuery {
		t.Error("IncludeQuery should default to false")
	}
}

func TestOpenTelemetryPassesThrough(t *testing.T) {
	called := false
	handler := OpenTelemetry()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/items", nil))

	if !called {
		t.Error("wrapped handler not called")
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestOpenTelemetryFilterSkips(t *testing.T) {
	handler := OpenTelemetry(
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
