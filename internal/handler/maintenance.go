package handler

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	apperrors "computer-maintenance-api/pkg/errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// MaintenanceHandler handles the HTTP requests for maintenance records and the
// aggregate report.
type MaintenanceHandler struct {
	Service MaintenanceService
	Reports ReportService
	Logger  *zap.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewMaintenanceHandler creates a new MaintenanceHandler with dependencies and helpers
func NewMaintenanceHandler(svc MaintenanceService, reports ReportService, log *zap.Logger) *MaintenanceHandler {
	log = logger.OrNop(log)
	return &MaintenanceHandler{
		Service:        svc,
		Reports:        reports,
		Logger:         log,
		ErrorHandler:   NewErrorHandler(log),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateMaintenanceHandler records a maintenance and links the listed parts.
func (h *MaintenanceHandler) CreateMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var in model.MaintenanceInput
	if err := h.ResponseHelper.DecodeJSON(r, &in); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	detail, err := h.Service.Create(ctx, in)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "create maintenance")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusCreated, detail)
}

// GetAllMaintenancesHandler lists maintenances, newest first. Optional query
// parameters: computador_id, funcionario_id, tipo, data_inicio and data_fim
// (YYYY-MM-DD, both inclusive).
func (h *MaintenanceHandler) GetAllMaintenancesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	filter, err := parseMaintenanceFilter(r.URL.Query())
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list maintenances")
		return
	}

	details, err := h.Service.List(ctx, filter)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list maintenances")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, details)
}

// GetComputerMaintenancesHandler returns the maintenance history of one computer.
func (h *MaintenanceHandler) GetComputerMaintenancesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	computerID, valid := h.ErrorHandler.ParseID(w, r, "computador_id", mux.Vars(r)["computador_id"])
	if !valid {
		return
	}

	details, err := h.Service.ListByComputer(ctx, computerID)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list computer maintenances")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, details)
}

// GetMaintenanceTypesHandler lists the distinct maintenance type labels in use.
func (h *MaintenanceHandler) GetMaintenanceTypesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	types, err := h.Service.Types(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list maintenance types")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, types)
}

// GetReportHandler returns the total, per-type and per-month counts.
func (h *MaintenanceHandler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	report, err := h.Reports.Report(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "build maintenance report")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, report)
}

// GetMaintenanceHandler returns one hydrated maintenance.
func (h *MaintenanceHandler) GetMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	detail, err := h.Service.Get(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "retrieve maintenance")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, detail)
}

// UpdateMaintenanceHandler applies a partial update. A pecas_ids key, even null or
// empty, replaces the linked parts.
func (h *MaintenanceHandler) UpdateMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	var patch model.MaintenancePatch
	if err := h.ResponseHelper.DecodeJSON(r, &patch); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	detail, err := h.Service.Update(ctx, id, patch)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "update maintenance")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, detail)
}

// DeleteMaintenanceHandler deletes a maintenance after unlinking its parts.
func (h *MaintenanceHandler) DeleteMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	if err := h.Service.Delete(ctx, id); err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "delete maintenance")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Maintenance deleted successfully", h.ResponseHelper.IDData(id))
}

// parseMaintenanceFilter reads the list filters. Empty parameters are ignored;
// malformed ones are reported together as a validation error.
func parseMaintenanceFilter(q url.Values) (model.MaintenanceFilter, error) {
	var filter model.MaintenanceFilter
	invalid := map[string]string{}

	parseInt := func(key string) *int64 {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			invalid[key] = key + " must be a positive integer"
			return nil
		}
		return &v
	}
	parseDate := func(key string) *model.Date {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return nil
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			invalid[key] = err.Error()
			return nil
		}
		return &d
	}

	filter.ComputadorID = parseInt("computador_id")
	filter.FuncionarioID = parseInt("funcionario_id")
	if tipo := strings.TrimSpace(q.Get("tipo")); tipo != "" {
		filter.Tipo = &tipo
	}
	filter.DateFrom = parseDate("data_inicio")
	filter.DateTo = parseDate("data_fim")

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(filter.DateFrom.Time) {
		invalid["data_fim"] = "data_fim must not be before data_inicio"
	}

	if len(invalid) > 0 {
		return model.MaintenanceFilter{}, apperrors.ValidationErrorWithDetails("Invalid filter", invalid)
	}
	return filter, nil
}
