package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/guesssays/med-platform/config"
	deliverycontext "github.com/guesssays/med-platform/internal/delivery/context"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	e := echo.New()
	e.Use(NewRequestIDMiddleware(slog.Default()).Process)
	e.GET("/", func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", seen)
	assert.Equal(t, "trace-42", rec.Header().Get(deliverycontext.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "bad id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.NotEqual(t, "bad id", seen)
	assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := &config.Config{}
	e := echo.New()
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(echo.Context) error { return domainerrors.ErrNotFound })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String(), "successful requests are quiet outside debug")

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing?reset_token=s3cret&page=2", nil))
	line := buf.String()
	assert.Contains(t, line, `"status":404`)
	assert.Contains(t, line, `"level":"WARN"`)
	assert.Contains(t, line, `"route":"/missing"`)
	assert.NotContains(t, line, "s3cret")
}

func TestRedactQuery(t *testing.T) {
	got := redactQuery(url.Values{
		"access_token": {"abc"},
		"NewPassword":  {"hunter2"},
		"clinic_id":    {"3"},
	})

	assert.Contains(t, got, "clinic_id=3")
	assert.NotContains(t, got, "abc")
	assert.NotContains(t, got, "hunter2")
}

func TestMetricsMiddleware(t *testing.T) {
	registry := metrics.New()
	cfg := &config.Config{Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"}}

	e := echo.New()
	e.Use(NewMetricsMiddleware(registry, cfg).Handle)
	e.GET("/items/:id", func(echo.Context) error { return domainerrors.ErrForbidden })
	e.GET("/metrics", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, path := range []string{"/items/1", "/items/2", "/metrics"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(registry.RequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "403")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(registry.RequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200")), 0)
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, http.StatusConflict, statusOf(errors.Wrap(domainerrors.ErrClinicAlreadyExists, "create")))
	require.Equal(t, http.StatusMethodNotAllowed, statusOf(echo.ErrMethodNotAllowed))
	require.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}
