package earnings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/craftel-io/backend-craftel/internal/common"
	"github.com/craftel-io/backend-craftel/internal/obs"
)

// Handler wires the earnings ledger to HTTP. Routes mounting this handler are
// expected to sit behind the admin guard.
type Handler struct {
	Svc *Service
}

type attributeRequest struct {
	OrderID     string  `json:"orderId"`
	SaleAmount  float64 `json:"saleAmount"`
	CostOfGoods float64 `json:"costOfGoods"`
}

// Attribute records the fee split for a completed sale.
func (h *Handler) Attribute(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "earnings service not configured", nil)
		return
	}
	var payload attributeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "orderId is required", nil)
		return
	}
	if payload.SaleAmount < 0 || payload.CostOfGoods < 0 {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "amounts must not be negative", nil)
		return
	}
	entry, err := h.Svc.Attribute(r.Context(), payload.OrderID, payload.SaleAmount, payload.CostOfGoods)
	if err != nil {
		if errors.Is(err, ErrDuplicateOrder) {
			obs.AttributionTotal.WithLabelValues("duplicate").Inc()
			common.JSONError(w, http.StatusConflict, "CONFLICT", "order already attributed", nil)
			return
		}
		obs.AttributionTotal.WithLabelValues("error").Inc()
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to attribute sale", nil)
		return
	}
	obs.AttributionTotal.WithLabelValues("ok").Inc()
	common.JSON(w, http.StatusCreated, map[string]any{"data": entry})
}

// List returns ledger entries with an optional status filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "earnings service not configured", nil)
		return
	}
	status := Status(strings.TrimSpace(r.URL.Query().Get("status")))
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	entries, err := h.Svc.List(r.Context(), status, limit, offset)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}

// Summary reports the founder share still awaiting payout.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Svc.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "earnings service not configured", nil)
		return
	}
	unpaid, err := h.Svc.Store.UnpaidFounderShare(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load summary", nil)
		return
	}
	obs.UnpaidFounderShare.Set(unpaid)
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"unpaidFounderShare": unpaid},
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
