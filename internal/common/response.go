package common

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the canonical error payload nested under the "error" key.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON encodes v to the response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes the error envelope `{"error":{code,message,details}}`.
func JSONError(w http.ResponseWriter, status int, code, message string, details any) {
	JSON(w, status, map[string]any{
		"error": ErrorBody{Code: code, Message: message, Details: details},
	})
}

// JSONAppError writes err using its own code and status, falling back to the
// provided status when the AppError does not carry one.
func JSONAppError(w http.ResponseWriter, fallbackStatus int, err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = fallbackStatus
	}
	JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
	return true
}
