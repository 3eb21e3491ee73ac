package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/craftel-io/backend-craftel/internal/catalog"
	"github.com/craftel-io/backend-craftel/internal/common"
	"github.com/craftel-io/backend-craftel/internal/coupon"
	"github.com/craftel-io/backend-craftel/internal/obs"
)

// Handler wires cart sessions to HTTP.
type Handler struct {
	Svc *Service
}

// Create opens a new cart session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	state, err := h.Svc.Create(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to create cart", nil)
		return
	}
	obs.CartMutationTotal.WithLabelValues("create").Inc()
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.view(state)})
}

// Get returns cart contents with the priced summary.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	state, summary, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	view := h.view(state)
	view["summary"] = summary
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

type addLineRequest struct {
	ProductID       string `json:"productId"`
	Qty             int    `json:"qty"`
	Size            string `json:"size"`
	Color           string `json:"color"`
	CustomDesignRef string `json:"customDesignRef"`
	PaymentMethod   string `json:"paymentMethod"`
}

// AddLine merges a product configuration into the cart.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "productId is required", nil)
		return
	}
	if payload.Qty < 1 {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "qty must be at least 1", nil)
		return
	}
	state, err := h.Svc.AddLine(r.Context(), chi.URLParam(r, "id"), AddLineInput{
		ProductID:       payload.ProductID,
		Qty:             payload.Qty,
		Size:            payload.Size,
		Color:           payload.Color,
		CustomDesignRef: payload.CustomDesignRef,
		PaymentMethod:   payload.PaymentMethod,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.CartMutationTotal.WithLabelValues("add_line").Inc()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.viewWithSummary(state)})
}

type setQtyRequest struct {
	Qty int `json:"qty"`
}

// SetQuantity updates a line quantity; zero removes the line.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload setQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	state, err := h.Svc.SetQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), payload.Qty)
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.CartMutationTotal.WithLabelValues("set_qty").Inc()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.viewWithSummary(state)})
}

// RemoveLine drops a line from the cart.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	state, err := h.Svc.RemoveLine(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.CartMutationTotal.WithLabelValues("remove_line").Inc()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.viewWithSummary(state)})
}

// Clear empties the cart and its coupon.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	state, err := h.Svc.Clear(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.CartMutationTotal.WithLabelValues("clear").Inc()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.viewWithSummary(state)})
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

// ApplyCoupon validates the code externally and attaches the discount.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	userID, _ := common.UserID(r.Context())
	state, err := h.Svc.ApplyCoupon(r.Context(), chi.URLParam(r, "id"), payload.Code, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.CouponValidationTotal.WithLabelValues("ok").Inc()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.viewWithSummary(state)})
}

// RemoveCoupon detaches the coupon without touching items.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	state, err := h.Svc.RemoveCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.viewWithSummary(state)})
}

func (h *Handler) view(state State) map[string]any {
	items := state.Items
	if items == nil {
		items = []Line{}
	}
	view := map[string]any{
		"id":    state.ID,
		"items": items,
	}
	if state.Coupon != nil {
		view["coupon"] = state.Coupon
	}
	return view
}

func (h *Handler) viewWithSummary(state State) map[string]any {
	view := h.view(state)
	view["summary"] = state.Summarize(h.Svc.Pricing)
	return view
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *coupon.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
	case errors.Is(err, ErrLineNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart item not found", nil)
	case errors.Is(err, catalog.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	case errors.As(err, &validationErr):
		obs.CouponValidationTotal.WithLabelValues("rejected").Inc()
		common.JSONError(w, http.StatusUnprocessableEntity, "COUPON_REJECTED", validationErr.Error(), nil)
	case errors.Is(err, coupon.ErrNetwork):
		obs.CouponValidationTotal.WithLabelValues("network_error").Inc()
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM_ERROR", coupon.ErrNetwork.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to process cart request", nil)
	}
}
