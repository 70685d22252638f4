package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/presencedash/models"
)

type Response struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Error: &ErrorDetail{Code: code, Message: message}})
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrUnknownView):
		return http.StatusNotFound, "UNKNOWN_VIEW"
	case errors.Is(err, models.ErrInvalidGender):
		return http.StatusBadRequest, "INVALID_GENDER"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, models.ErrUpstream), errors.Is(err, models.ErrDecode):
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// HandleError writes err as a JSON error response
func HandleError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err.Error())
}
