// Package middleware provides production-grade HTTP middleware for
// routefs applications.
//
// This package includes:
//   - OpenTelemetry distributed tracing middleware
//   - Prometheus metrics middleware
//
// Both wrap a handler in the standard func(http.Handler) http.Handler
// shape, so they compose with any router.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware traces every request. The span context
// is injected into the request, so the composition engine's
// provide/render/fold spans nest under the request span.
//
//	handler := middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-site"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	)(app)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects request metrics labeled by the
// matched route pattern:
//   - routefs_requests_total: requests by route, method and status class
//   - routefs_request_duration_seconds: duration histogram by route
//   - routefs_render_errors_total: contained rendering failures
//   - routefs_reloads_total: route table reloads
//   - routefs_routes: current route table size
//
//	handler := middleware.Prometheus()(app)
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
package middleware
