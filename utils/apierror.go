package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// APIError is an error with a fixed HTTP status and a client-safe message.
// Authentication failures (missing credential) are distinct from forbidden
// (credential present but insufficient); validation errors name the field.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Unauthenticated means no usable credential was presented.
func Unauthenticated(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden means the credential was presented but does not permit the
// operation (bad token, or insufficient role).
func Forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: message}
}

// Validation means the request input is malformed or out of range.
func Validation(message, field string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message, Field: field}
}

// NotFound means a referenced document does not exist.
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// Upstream means the persistence engine or payment provider failed. The
// provider's internals are never forwarded to the client.
func Upstream(message string) *APIError {
	return &APIError{Status: http.StatusBadGateway, Message: message}
}

// RespondJSON writes v as the JSON response body.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// RespondError renders err as a JSON error response. Anything that is not
// an APIError is reported as an internal failure without leaking detail.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if e, ok := err.(*APIError); ok {
		apiErr = e
	} else {
		log.Printf("internal error: %v", err)
		apiErr = &APIError{Status: http.StatusInternalServerError, Message: "Internal Server Error"}
	}
	RespondJSON(w, apiErr.Status, apiErr)
}
