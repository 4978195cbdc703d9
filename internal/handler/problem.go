package handler

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ProblemHandler handles the HTTP requests for problems.
type ProblemHandler struct {
	Service ProblemService
	Logger  *zap.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewProblemHandler creates a new ProblemHandler with dependencies and helpers
func NewProblemHandler(svc ProblemService, log *zap.Logger) *ProblemHandler {
	log = logger.OrNop(log)
	return &ProblemHandler{
		Service:        svc,
		Logger:         log,
		ErrorHandler:   NewErrorHandler(log),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateProblemHandler handles the creation of a new problem.
func (h *ProblemHandler) CreateProblemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var in model.ProblemInput
	if err := h.ResponseHelper.DecodeJSON(r, &in); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	problem, err := h.Service.Create(ctx, in)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "create problem")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusCreated, problem)
}

// GetAllProblemsHandler handles the retrieval of all problems.
func (h *ProblemHandler) GetAllProblemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	problems, err := h.Service.List(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list problems")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, problems)
}

// SearchProblemsHandler matches q against description and category.
func (h *ProblemHandler) SearchProblemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	problems, err := h.Service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "search problems")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, problems)
}

// GetProblemHandler handles the retrieval of a single problem by ID.
func (h *ProblemHandler) GetProblemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	problem, err := h.Service.Get(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "retrieve problem")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, problem)
}

// UpdateProblemHandler applies a partial update and returns the stored problem.
func (h *ProblemHandler) UpdateProblemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	var patch model.ProblemPatch
	if err := h.ResponseHelper.DecodeJSON(r, &patch); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return
	}

	problem, err := h.Service.Update(ctx, id, patch)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "update problem")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, problem)
}

// DeleteProblemHandler handles the deletion of a problem.
func (h *ProblemHandler) DeleteProblemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, valid := h.ErrorHandler.ParseID(w, r, "id", mux.Vars(r)["id"])
	if !valid {
		return
	}

	if err := h.Service.Delete(ctx, id); err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "delete problem")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Problem deleted successfully", h.ResponseHelper.IDData(id))
}

// GetCategoriesHandler lists the distinct problem categories.
func (h *ProblemHandler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	categories, err := h.Service.Categories(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err, "list problem categories")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, categories)
}
