//go:build !integration

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/products/:kind", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/missing/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	for _, kind := range []string{"deposit", "saving"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+kind, nil))
	}

	if got := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/products/:kind", "200")); got != 2 {
		t.Fatalf("expected 2 requests on the route template, got %v", got)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/1", nil))
	if got := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/missing/:id", "404")); got != 1 {
		t.Fatalf("expected the HTTPError status to be recorded, got %v", got)
	}
}
