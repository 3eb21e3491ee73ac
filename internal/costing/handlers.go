package costing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/craftel-io/backend-craftel/internal/common"
)

// Handler exposes the build cost estimator over HTTP.
type Handler struct {
	Rates Rates
}

type estimateRequest struct {
	DurationHours float64  `json:"durationHours"`
	MassGrams     float64  `json:"massGrams"`
	LaborHours    *float64 `json:"laborHours,omitempty"`
	MarginPercent float64  `json:"marginPercent"`
}

// Estimate computes a cost breakdown and suggested price for a single build.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var payload estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if payload.DurationHours < 0 || payload.MassGrams < 0 {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "duration and mass must not be negative", nil)
		return
	}
	breakdown, err := Calculate(h.Rates, Input{
		DurationHours: payload.DurationHours,
		MassGrams:     payload.MassGrams,
		LaborHours:    payload.LaborHours,
		MarginPercent: payload.MarginPercent,
	})
	if err != nil {
		if errors.Is(err, ErrMarginOutOfRange) {
			common.JSONError(w, http.StatusUnprocessableEntity, "MARGIN_OUT_OF_RANGE", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to calculate estimate", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": breakdown})
}
