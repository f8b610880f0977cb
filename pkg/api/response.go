package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/dwthomas77/dropgrid/pkg/errors"
)

// Envelope is the standard response wrapper for all API responses.
// Success: {"ok": true, "data": {...}}
// Error:   {"ok": false, "error": {"code": "...", "message": "..."}}
type Envelope struct {
	OK    bool          `json:"ok"`
	Data  any           `json:"data,omitempty"`
	Error *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload holds structured error information.
type ErrorPayload struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRegion, errors.ErrCodeInvalidAction,
		errors.ErrCodeInvalidArea, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidSizer:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("write response", "error", err)
	}
}

// writeSuccess writes a 200 success envelope.
func writeSuccess(w http.ResponseWriter, logger *log.Logger, data any) {
	writeJSON(w, logger, http.StatusOK, Envelope{OK: true, Data: data})
}

// writeError writes an error envelope. Uncoded errors become
// INTERNAL_ERROR and their text is not exposed.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	message := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		message = "internal error"
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, logger, statusFor(code), Envelope{
		Error: &ErrorPayload{Code: code, Message: message},
	})
}
