package handler

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ComputerHandler handles the HTTP requests for computers.
type ComputerHandler struct {
	Service ComputerService
	Logger  *zap.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewComputerHandler creates a new ComputerHandler with dependencies and helpers
func NewComputerHandler(svc ComputerService, log *zap.Logger) *ComputerHandler {
	log = logger.OrNop(log)
	return &ComputerHandler{
		Service:        svc,
		Logger:         log,
		ErrorHandler:   NewErrorHandler(log),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateComputerHandler handles the creation of a new computer.
func (h *ComputerHandler) CreateComputerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var in model.ComputerInput
	if err := h.ResponseHelper.DecodeJSON(r, &in); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	computer, err := h.Service.Create(ctx, in)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "create computer")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusCreated, computer)
}

// GetAllComputersHandler handles the retrieval of all computers.
func (h *ComputerHandler) GetAllComputersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	computers, err := h.Service.List(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list computers")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, computers)
}

// SearchComputersHandler matches q against brand, model and serial number.
func (h *ComputerHandler) SearchComputersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	computers, err := h.Service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "search computers")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, computers)
}

// GetComputerHandler handles the retrieval of a single computer by ID.
func (h *ComputerHandler) GetComputerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	computer, err := h.Service.Get(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "retrieve computer")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, computer)
}

// UpdateComputerHandler applies a partial update and returns the stored computer.
func (h *ComputerHandler) UpdateComputerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	var patch model.ComputerPatch
	if err := h.ResponseHelper.DecodeJSON(r, &patch); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	computer, err := h.Service.Update(ctx, id, patch)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "update computer")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, computer)
}

// DeleteComputerHandler handles the deletion of a computer.
func (h *ComputerHandler) DeleteComputerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	if err := h.Service.Delete(ctx, id); err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "delete computer")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Computer deleted successfully", h.ResponseHelper.IDData(id))
}
