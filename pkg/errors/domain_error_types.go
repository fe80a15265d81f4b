package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainImportError indicates a CSV import was rejected. The model is left untouched.
	DomainImportError DomainErrorType = "IMPORT_ERROR"

	// DomainNotFoundError indicates a resource was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"

	// DomainInfrastructureError indicates an infrastructure-level failure
	DomainInfrastructureError DomainErrorType = "INFRASTRUCTURE_ERROR"

	// DomainAuthenticationError indicates authentication failure
	DomainAuthenticationError DomainErrorType = "AUTHENTICATION_ERROR"
)

// Import error codes
const (
	CodeCSVMalformed         = "CSV_MALFORMED"
	CodeCSVInvalidID         = "CSV_INVALID_ID"
	CodeCSVClassMismatch     = "CSV_CLASS_MISMATCH"
	CodeCSVReferenceNotFound = "CSV_REFERENCE_NOT_FOUND"
	CodeCSVUnknownType       = "CSV_UNKNOWN_TYPE"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type       DomainErrorType        `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Retryable  bool                   `json:"retryable"`
	StatusCode int                    `json:"status_code"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		Details:    make(map[string]interface{}),
		Retryable:  false,
		StatusCode: domainErrorTypeToStatusCode(errorType),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	e.Details[key] = value
	return e
}

// WithRetryable sets whether the error is retryable
func (e *DomainError) WithRetryable(retryable bool) *DomainError {
	e.Retryable = retryable
	return e
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// domainErrorTypeToStatusCode maps error types to HTTP status codes
func domainErrorTypeToStatusCode(errorType DomainErrorType) int {
	switch errorType {
	case DomainValidationError:
		return 400
	case DomainImportError:
		return 422
	case DomainNotFoundError:
		return 404
	case DomainConflictError:
		return 409
	case DomainAuthenticationError:
		return 401
	default:
		return 500
	}
}

// GetDomainError extracts a DomainError from an error chain
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// HasCode reports whether err carries a DomainError with the given code
func HasCode(err error, code string) bool {
	d := GetDomainError(err)
	return d != nil && d.Code == code
}

// Import errors. Each call builds a fresh value so details are never shared.

// NewImportError creates an import error with the given code
func NewImportError(code string, format string, args ...interface{}) *DomainError {
	return NewDomainError(DomainImportError, code, fmt.Sprintf(format, args...))
}

// IsImportError reports whether err rejected a CSV import
func IsImportError(err error) bool {
	d := GetDomainError(err)
	return d != nil && d.Type == DomainImportError
}

// Model and image errors

// NewModelNotFoundError reports an unknown model id
func NewModelNotFoundError(modelID string) *DomainError {
	return NewDomainError(DomainNotFoundError, "MODEL_NOT_FOUND", "model not found: "+modelID).
		WithDetail("model_id", modelID)
}

// NewModelAlreadyOpenError reports an open with unsaved edits under the same model id
func NewModelAlreadyOpenError(modelID, path string) *DomainError {
	return NewDomainError(DomainConflictError, "MODEL_ALREADY_OPEN",
		"model "+modelID+" is already open with unsaved changes").
		WithDetail("model_id", modelID).
		WithDetail("path", path)
}

// NewFileNotFoundError reports a missing or unreadable input file
func NewFileNotFoundError(path string, cause error) *DomainError {
	return NewDomainError(DomainNotFoundError, "FILE_NOT_FOUND", "cannot find file: "+path).
		WithDetail("path", path).
		WithCause(cause)
}

// NewUnsupportedImageError reports bytes that do not decode as a known raster format
func NewUnsupportedImageError(key string) *DomainError {
	return NewDomainError(DomainValidationError, "UNSUPPORTED_IMAGE", "not a supported image file").
		WithDetail("key", key)
}

// NewArchiveError reports a failure reading or writing an archive file
func NewArchiveError(code, message string, cause error) *DomainError {
	return NewDomainError(DomainInfrastructureError, code, message).
		WithCause(cause).
		WithRetryable(true)
}

// NewNothingToUndoError reports an undo or redo with an empty stack
func NewNothingToUndoError(action string) *DomainError {
	return NewDomainError(DomainConflictError, "NOTHING_TO_"+strings.ToUpper(action), "nothing to "+action)
}

// ValidationErrors aggregates multiple validation errors
type ValidationErrors struct {
	Errors []*DomainError `json:"errors"`
}

// NewValidationErrors creates a new validation errors collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]*DomainError, 0),
	}
}

// Add adds a validation error
func (v *ValidationErrors) Add(field string, message string) {
	err := NewDomainError(DomainValidationError, "FIELD_VALIDATION_ERROR", message).
		WithDetail("field", field)
	v.Errors = append(v.Errors, err)
}

// HasErrors returns true if there are validation errors
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}

	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		messages[i] = err.Message
	}
	return fmt.Sprintf("Validation failed: %s", strings.Join(messages, "; "))
}

// ToMap converts validation errors to a map for JSON serialization
func (v *ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)

	for _, err := range v.Errors {
		field, ok := err.Details["field"].(string)
		if !ok {
			field = "general"
		}
		result[field] = append(result[field], err.Message)
	}

	return result
}

// DomainErrorResponse represents the API error response format for domain errors
type DomainErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      DomainErrorType        `json:"type"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// NewDomainErrorResponse creates an error response from a domain error
func NewDomainErrorResponse(err *DomainError, requestID string) *DomainErrorResponse {
	return &DomainErrorResponse{
		Error:     true,
		Type:      err.Type,
		Code:      err.Code,
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		RequestID: requestID,
		Timestamp: fmt.Sprintf("%d", timeNow().Unix()),
	}
}

// Helper function for testing (can be mocked)
var timeNow = func() time.Time {
	return time.Now()
}
