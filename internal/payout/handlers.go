package payout

import (
	"net/http"

	"github.com/craftel-io/backend-craftel/internal/common"
)

// Handler exposes the admin endpoint that schedules payout runs.
type Handler struct {
	Trigger Trigger
}

// Run accepts a payout run request and schedules it for asynchronous
// processing. The run itself happens on the worker.
func (h Handler) Run(w http.ResponseWriter, r *http.Request) {
	requestedBy, _ := common.UserID(r.Context())
	if err := h.Trigger.Request(r.Context(), requestedBy); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to schedule payout run", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}
