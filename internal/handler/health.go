package handler

import (
	"computer-maintenance-api/internal/logger"
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler reports liveness together with database reachability.
type HealthHandler struct {
	DB     Pinger
	Logger *zap.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	log = logger.OrNop(log)
	return &HealthHandler{
		DB:             db,
		Logger:         log,
		ErrorHandler:   NewErrorHandler(log),
		ResponseHelper: NewResponseHelper(),
	}
}

// Health answers 200 when the database responds to a ping and 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, HealthTimeout)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		h.Logger.Warn("health check failed", zap.Error(err))
		h.ErrorHandler.SendErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable", "UNHEALTHY",
			map[string]interface{}{"database": "down"})
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Service is healthy", h.ResponseHelper.CreateHealthCheckData("up"))
}
