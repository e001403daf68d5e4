package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeConflict        = "conflict"
	ErrCodeNotFound        = "not_found"
	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeInternalError   = "internal_error"
)

// APIError is the error object in API error responses.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every API error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorResponse with the given status, code, and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: APIError{Code: code, Message: message}})
}
