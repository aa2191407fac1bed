package web

// errors.go provides unified error responses for the API.
//
// Every error is logged server-side with the request ID and returned as
// JSON with the user-facing message and support code from core.MapError.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/JonMunkholm/coursecatalog/internal/csv"
	"github.com/JonMunkholm/coursecatalog/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for a catalog error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrCourseNotFound),
		errors.Is(err, core.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNotLoaded):
		return http.StatusConflict
	case errors.Is(err, core.ErrUnknownAlgorithm),
		errors.Is(err, core.ErrInvalidValue),
		errors.Is(err, csv.ErrColumnNotFound),
		errors.Is(err, csv.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, csv.ErrRowShape),
		errors.Is(err, csv.ErrEmptyInput),
		errors.Is(err, csv.ErrFileOpen):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes its user-facing form.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
