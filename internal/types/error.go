package types

import (
	"fmt"
	"net/http"
)

// Error types rendered in the "type" field of error responses.
const (
	ErrorTypeValidation = "validation"
	ErrorTypeNotFound   = "not_found"
	ErrorTypeConflict   = "conflict"
	ErrorTypeUpstream   = "upstream"
	ErrorTypeAuth       = "auth"
	ErrorTypeInternal   = "internal"
)

// AppError carries an HTTP status to the top-level error handler.
type AppError struct {
	Status  int               `json:"-"`
	Message string            `json:"error"`
	Type    string            `json:"type"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s [type: %s]: %v", e.Status, e.Message, e.Type, e.Err)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Status, e.Message, e.Type)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message, Type: ErrorTypeNotFound}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Type: ErrorTypeValidation}
}

// NewValidationError reports field-level problems with a request.
func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: "validation failed", Type: ErrorTypeValidation, Fields: fields}
}

func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message, Type: ErrorTypeConflict}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message, Type: ErrorTypeAuth}
}

// NewUpstreamError wraps a recipe provider failure as 502.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Status: http.StatusBadGateway, Message: message, Type: ErrorTypeUpstream, Err: err}
}

// NewUnprocessableError reports a well-formed request that cannot be satisfied.
func NewUnprocessableError(message string) *AppError {
	return &AppError{Status: http.StatusUnprocessableEntity, Message: message, Type: ErrorTypeValidation}
}

func NewUnavailableError(message string) *AppError {
	return &AppError{Status: http.StatusServiceUnavailable, Message: message, Type: ErrorTypeInternal}
}

func NewInternalError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "internal server error", Type: ErrorTypeInternal, Err: err}
}
