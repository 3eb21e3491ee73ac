package coupon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/craftel-io/backend-craftel/internal/resilience"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &resilience.HTTPClient{
			Client:      &http.Client{Timeout: 2 * time.Second},
			MaxAttempts: 1,
		},
	}
}

func TestValidateSuccessStoresDiscountVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/validate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "SAVE10", req["code"], "code must be uppercased before submission")
		require.InDelta(t, 55.5, req["orderTotal"].(float64), 1e-9)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid":    true,
			"discount": 12.345,
			"coupon":   map[string]any{"code": "SAVE10", "type": "percent", "value": 10},
		})
	}))
	defer srv.Close()

	applied, err := newTestClient(srv.URL).Validate(context.Background(), "  save10 ", 55.5, "user-1")
	require.NoError(t, err)
	require.Equal(t, "SAVE10", applied.Code)
	require.Equal(t, "percent", applied.Kind)
	require.Equal(t, 12.345, applied.Discount, "discount is stored exactly as returned, never recomputed")
}

func TestValidateRejectionMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid": false,
			"error": map[string]any{"message": "Coupon expired on 2025-01-01"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Validate(context.Background(), "OLD", 10, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Coupon expired on 2025-01-01", vErr.Message)
}

func TestValidateRejectionStatus400(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid":   false,
			"message": "minimum order not met",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Validate(context.Background(), "MIN50", 10, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "minimum order not met", vErr.Message)
}

func TestValidateServerErrorMapsToNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Validate(context.Background(), "ANY", 10, "")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestValidateTransportFailureMapsToNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Validate(context.Background(), "ANY", 10, "")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestValidateEmptyCodeRejectedLocally(t *testing.T) {
	client := newTestClient("http://coupon.invalid")
	_, err := client.Validate(context.Background(), "   ", 10, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestValidationErrorDefaultMessage(t *testing.T) {
	var vErr *ValidationError
	require.Equal(t, "coupon is not valid", vErr.Error())
	require.Equal(t, "boom", (&ValidationError{Message: "boom"}).Error())
}
