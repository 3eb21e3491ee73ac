package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/craftel-io/backend-craftel/internal/obs"
)

func TestHTTPMetricsRecordRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("craftel", []float64{1, 10}, registry)

	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/v1/cart"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("handler returned %d", rr.Code)
	}

	if got := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/v1/cart", "204")); got != 1 {
		t.Fatalf("request counter = %v, want 1", got)
	}
	if testutil.CollectAndCount(metrics.ReqDur) == 0 {
		t.Fatal("duration histogram recorded no samples")
	}
	if metrics.InFlight != nil {
		if v := testutil.ToFloat64(metrics.InFlight); v != 0 {
			t.Fatalf("in-flight gauge = %v after request finished", v)
		}
	}
}
