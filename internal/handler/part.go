package handler

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PartHandler handles the HTTP requests for parts.
type PartHandler struct {
	Service PartService
	Logger  *zap.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewPartHandler creates a new PartHandler with dependencies and helpers
func NewPartHandler(svc PartService, log *zap.Logger) *PartHandler {
	log = logger.OrNop(log)
	return &PartHandler{
		Service:        svc,
		Logger:         log,
		ErrorHandler:   NewErrorHandler(log),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreatePartHandler handles the creation of a new part.
func (h *PartHandler) CreatePartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var in model.PartInput
	if err := h.ResponseHelper.DecodeJSON(r, &in); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	part, err := h.Service.Create(ctx, in)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "create part")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusCreated, part)
}

// GetAllPartsHandler handles the retrieval of all parts.
func (h *PartHandler) GetAllPartsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	parts, err := h.Service.List(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list parts")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, parts)
}

// SearchPartsHandler matches q against name, serial number and manufacturer.
func (h *PartHandler) SearchPartsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	parts, err := h.Service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "search parts")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, parts)
}

// GetPartHandler handles the retrieval of a single part by ID.
func (h *PartHandler) GetPartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	part, err := h.Service.Get(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "retrieve part")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, part)
}

// UpdatePartHandler applies a partial update and returns the stored part.
func (h *PartHandler) UpdatePartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	var patch model.PartPatch
	if err := h.ResponseHelper.DecodeJSON(r, &patch); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	part, err := h.Service.Update(ctx, id, patch)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "update part")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, part)
}

// DeletePartHandler handles the deletion of a part.
func (h *PartHandler) DeletePartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	if err := h.Service.Delete(ctx, id); err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "delete part")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Part deleted successfully", h.ResponseHelper.IDData(id))
}

// GetAvailablePartsHandler lists the parts not linked to any maintenance.
func (h *PartHandler) GetAvailablePartsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	parts, err := h.Service.Available(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list available parts")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, parts)
}
