package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/craftel-io/backend-craftel/internal/resilience"
)

// ErrNetwork replaces transport failures so raw error text never reaches the
// user.
var ErrNetwork = errors.New("network error occurred")

// ValidationError carries the service's human-readable rejection message. The
// message is surfaced to the user verbatim and never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil || e.Message == "" {
		return "coupon is not valid"
	}
	return e.Message
}

// Client validates coupon codes against the external coupon service over HTTP.
type Client struct {
	BaseURL string
	HTTP    *resilience.HTTPClient
}

type validateRequest struct {
	Code       string  `json:"code"`
	OrderTotal float64 `json:"orderTotal"`
	UserID     string  `json:"userId,omitempty"`
}

type validateResponse struct {
	Valid        bool    `json:"valid"`
	Discount     float64 `json:"discount"`
	FreeShipping bool    `json:"freeShipping"`
	Message      string  `json:"message"`
	Coupon       struct {
		ID    string  `json:"id"`
		Code  string  `json:"code"`
		Type  string  `json:"type"`
		Value float64 `json:"value"`
	} `json:"coupon"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Validate submits the uppercased code with the pre-coupon order total and
// returns the externally computed discount verbatim. Validation rejections
// surface the service's message; transport failures collapse to ErrNetwork.
func (c *Client) Validate(ctx context.Context, code string, orderTotal float64, userID string) (Applied, error) {
	if c == nil || c.HTTP == nil || strings.TrimSpace(c.BaseURL) == "" {
		return Applied{}, errors.New("coupon: client not configured")
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Applied{}, &ValidationError{Message: "coupon code required"}
	}

	body, err := json.Marshal(validateRequest{Code: normalized, OrderTotal: orderTotal, UserID: userID})
	if err != nil {
		return Applied{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.BaseURL, "/")+"/validate", bytes.NewReader(body))
	if err != nil {
		return Applied{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(ctx, req)
	if err != nil {
		return Applied{}, ErrNetwork
	}
	defer func() { _ = resp.Body.Close() }()

	var payload validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Applied{}, ErrNetwork
	}

	if resp.StatusCode >= 500 {
		return Applied{}, ErrNetwork
	}
	if resp.StatusCode >= 400 || !payload.Valid {
		return Applied{}, &ValidationError{Message: rejectionMessage(payload)}
	}

	applied := Applied{
		Code:         payload.Coupon.Code,
		Kind:         payload.Coupon.Type,
		Value:        payload.Coupon.Value,
		Discount:     payload.Discount,
		FreeShipping: payload.FreeShipping,
	}
	if applied.Code == "" {
		applied.Code = normalized
	}
	return applied, nil
}

func rejectionMessage(payload validateResponse) string {
	if payload.Error != nil && strings.TrimSpace(payload.Error.Message) != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(payload.Message)
}
