package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := metrics.Middleware(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/123", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/456", nil))

	body := scrape(t)
	assert.Contains(t, body, `http_requests_total{code="418",method="GET",path="GET /api/v1/orders/{id}"} 2`)
	assert.NotContains(t, body, `/api/v1/orders/123"`)
}

func TestObserveCheckout(t *testing.T) {
	before := testutil.ToFloat64(metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutPlaced))

	metrics.ObserveCheckout(metrics.CheckoutPlaced, 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutPlaced)))
}

func scrape(t *testing.T) string {
	t.Helper()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	return rec.Body.String()
}
