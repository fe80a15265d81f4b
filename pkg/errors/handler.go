package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ErrorHandler handles errors and sends appropriate HTTP responses
type ErrorHandler struct {
	logger        *zap.Logger
	debug         bool
	defaultStatus int
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger,
		debug:         debug,
		defaultStatus: http.StatusInternalServerError,
	}
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	requestID := r.Header.Get("X-Request-ID")
	status, response := h.classify(err)
	response.RequestID = requestID

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error_type", response.Type),
		zap.String("request_id", requestID),
		zap.Error(err),
	}
	if response.Code != "" {
		fields = append(fields, zap.String("error_code", response.Code))
	}

	switch {
	case status >= 500:
		h.logger.Error(response.Message, fields...)
	case status >= 400:
		h.logger.Warn(response.Message, fields...)
	default:
		h.logger.Info(response.Message, fields...)
	}

	h.sendJSON(w, status, response)
}

func (h *ErrorHandler) classify(err error) (int, ErrorResponse) {
	var validation *ValidationErrors
	if errors.As(err, &validation) {
		details := make(map[string]interface{})
		for field, messages := range validation.ToMap() {
			details[field] = messages
		}
		return http.StatusBadRequest, ErrorResponse{
			Error:   true,
			Type:    string(DomainValidationError),
			Code:    "FIELD_VALIDATION_ERROR",
			Message: validation.Error(),
			Details: details,
		}
	}

	if domainErr := GetDomainError(err); domainErr != nil {
		status := domainErr.StatusCode
		if status == 0 {
			status = h.defaultStatus
		}
		return status, ErrorResponse{
			Error:   true,
			Type:    string(domainErr.Type),
			Code:    domainErr.Code,
			Message: domainErr.Message,
			Details: domainErr.Details,
		}
	}

	if appErr := GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = h.defaultStatus
		}
		response := ErrorResponse{
			Error:   true,
			Type:    string(appErr.Type),
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
		if h.debug && appErr.StackTrace != "" {
			if response.Details == nil {
				response.Details = make(map[string]interface{})
			}
			response.Details["stack_trace"] = appErr.StackTrace
		}
		return status, response
	}

	response := ErrorResponse{
		Error:   true,
		Type:    string(ErrorTypeInternal),
		Message: "An internal error occurred",
	}
	if h.debug {
		response.Message = err.Error()
	}
	return h.defaultStatus, response
}

// sendJSON sends a JSON response
func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response",
			zap.Error(err),
			zap.Any("data", data),
		)
	}
}

// Middleware returns an HTTP middleware that turns panics into error responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
