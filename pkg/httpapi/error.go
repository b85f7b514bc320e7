package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// StatusFor maps coded domain errors onto HTTP status codes for the thin
// collaborator layer.
func StatusFor(err error) int {
	var be *serrors.BaseError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}
	switch be.Code {
	case "AUTHZ_FORBIDDEN":
		return http.StatusForbidden
	case "EMPLOYEE_NOT_FOUND", "COMPONENT_NOT_FOUND", "WORKLOG_NOT_FOUND",
		"WORKITEM_NOT_FOUND", "PROJECT_NOT_FOUND", "EFFORT_TYPE_NOT_FOUND":
		return http.StatusNotFound
	case "COMPONENT_LOCKED", "WORKLOG_EXPLICIT_COMPLETION_REQUIRED", "EFFORT_TYPE_EXISTS":
		return http.StatusConflict
	case "FIELD_REQUIRED", "VALIDATION_FAILED", "WORKLOG_CAPACITY_EXCEEDED":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError renders a coded error, hiding internals behind a generic
// message when the error carries no code.
func WriteDomainError(w http.ResponseWriter, err error) error {
	var be *serrors.BaseError
	if errors.As(err, &be) {
		return WriteError(w, StatusFor(err), be.Code, be.Message, nil)
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
