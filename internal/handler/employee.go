package handler

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// EmployeeHandler handles the HTTP requests for employees.
type EmployeeHandler struct {
	Service EmployeeService
	Logger  *zap.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewEmployeeHandler creates a new EmployeeHandler with dependencies and helpers
func NewEmployeeHandler(svc EmployeeService, log *zap.Logger) *EmployeeHandler {
	log = logger.OrNop(log)
	return &EmployeeHandler{
		Service:        svc,
		Logger:         log,
		ErrorHandler:   NewErrorHandler(log),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateEmployeeHandler handles the creation of a new employee.
func (h *EmployeeHandler) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var in model.EmployeeInput
	if err := h.ResponseHelper.DecodeJSON(r, &in); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	employee, err := h.Service.Create(ctx, in)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "create employee")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusCreated, employee)
}

// GetAllEmployeesHandler handles the retrieval of all employees.
func (h *EmployeeHandler) GetAllEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	employees, err := h.Service.List(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list employees")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, employees)
}

// SearchEmployeesHandler matches q against name, role and department.
func (h *EmployeeHandler) SearchEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	employees, err := h.Service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "search employees")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, employees)
}

// GetEmployeeHandler handles the retrieval of a single employee by ID.
func (h *EmployeeHandler) GetEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	employee, err := h.Service.Get(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "retrieve employee")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, employee)
}

// UpdateEmployeeHandler applies a partial update and returns the stored employee.
func (h *EmployeeHandler) UpdateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	var patch model.EmployeePatch
	if err := h.ResponseHelper.DecodeJSON(r, &patch); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	employee, err := h.Service.Update(ctx, id, patch)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "update employee")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, employee)
}

// DeleteEmployeeHandler handles the deletion of a employee.
func (h *EmployeeHandler) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	if err := h.Service.Delete(ctx, id); err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "delete employee")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Employee deleted successfully", h.ResponseHelper.IDData(id))
}
