package models

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ValidationError reports a bad or missing tool argument. It is raised
// before any network activity takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError reports a failed call to the Discovery API: network
// failure, a non-2xx status, or an undecodable response body. The
// upstream body is carried verbatim so nothing is lost in relay.
type UpstreamError struct {
	Endpoint   string
	StatusCode int // 0 when the request never completed
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", e.Endpoint, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("upstream: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream: %s: status %d", e.Endpoint, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
