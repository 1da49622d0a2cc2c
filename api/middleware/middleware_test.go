package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/metrics"
)

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(okHandler))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, resp.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, "abc-123", resp.Header().Get(requestIDHeader))
}

func TestRecovererReturns500(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: &buf, Format: "json"})
	handler := Recoverer(logg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "kaboom")
	assert.Contains(t, buf.String(), "panic.recovered")
}

func TestLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("info"), Output: &buf, Format: "json"})
	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/produtos", nil))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/api/produtos"`)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg, "backoffice-test")

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/produtos/{id}", okHandler)

	for _, path := range []string{"/api/produtos/1", "/api/produtos/2"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, resp.Code)
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	var routes []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "path" {
					routes = append(routes, label.GetValue())
				}
			}
		}
	}
	require.NotEmpty(t, routes)
	for _, route := range routes {
		assert.Equal(t, "/api/produtos/{id}", route)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS(corsConfig("http://localhost:5173"))(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/produtos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, "http://localhost:5173", resp.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/produtos", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

func corsConfig(origins ...string) config.CORSConfig {
	return config.CORSConfig{AllowedOrigins: origins}
}
