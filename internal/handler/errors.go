package handler

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/middleware"
	apperrors "computer-maintenance-api/pkg/errors"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ErrorHandler provides centralized error handling functionality for handlers
type ErrorHandler struct {
	Logger *zap.Logger
}

// NewErrorHandler creates a new ErrorHandler instance
func NewErrorHandler(log *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger: logger.OrNop(log),
	}
}

// SendErrorResponse sends a structured error response
func (e *ErrorHandler) SendErrorResponse(w http.ResponseWriter, statusCode int, message, code string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		e.Logger.Error("failed to encode error response", zap.Error(err))
	}
}

// SendSuccessResponse sends a structured success response
func (e *ErrorHandler) SendSuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := SuccessResponse{
		Message: message,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		e.Logger.Error("failed to encode success response", zap.Error(err))
	}
}

// SendJSONResponse sends a generic JSON response
func (e *ErrorHandler) SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		e.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// HandleServiceError writes the response for an error returned by a service. AppErrors
// keep their code and details; anything else is an internal error. Server-side
// failures log at error level, client errors at debug.
func (e *ErrorHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var appErr *apperrors.AppError
	if errors.Is(err, context.DeadlineExceeded) && !apperrors.IsAppError(err) {
		appErr = apperrors.TimeoutError(operation)
	} else {
		appErr = apperrors.WrapError(err, "Failed to "+operation)
	}

	status := appErr.GetHTTPStatus()
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("code", string(appErr.Code)),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		e.Logger.Error("service error", fields...)
	} else {
		e.Logger.Debug("request rejected", fields...)
	}

	var details map[string]interface{}
	if len(appErr.Details) > 0 {
		details = appErr.Details
	}
	e.SendErrorResponse(w, status, appErr.Message, string(appErr.Code), details)
}

// HandleJSONDecodeError handles JSON decoding errors
func (e *ErrorHandler) HandleJSONDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	e.HandleServiceError(w, r, apperrors.InvalidJSONError(err).WithDetail("body", err.Error()), "decode request body")
}

// ParseID parses a positive integer path or query parameter. On failure it writes
// a 400 response and returns false.
func (e *ErrorHandler) ParseID(w http.ResponseWriter, r *http.Request, name, raw string) (int64, bool) {
	if raw == "" {
		e.HandleServiceError(w, r, apperrors.BadRequestError(name+" is required"), "parse "+name)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		e.HandleServiceError(w, r,
			apperrors.BadRequestError("Invalid "+name).WithDetail(name, "must be a positive integer"), "parse "+name)
		return 0, false
	}

	return id, true
}
