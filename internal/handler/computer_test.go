package handler

import (
	"computer-maintenance-api/internal/model"
	apperrors "computer-maintenance-api/pkg/errors"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler() (*ComputerHandler, *MockComputerService) {
	mockService := &MockComputerService{}
	handler := NewComputerHandler(mockService, nil)
	return handler, mockService
}

// Test CreateComputerHandler

func TestCreateComputerHandler_Success(t *testing.T) {
	handler, mockService := createTestHandler()

	mockService.CreateFunc = func(ctx context.Context, in model.ComputerInput) (*model.Computer, error) {
		require.NotNil(t, in.Marca)
		assert.Equal(t, "Dell", *in.Marca)
		assert.Equal(t, "2023-01-01", in.DataAquisicao.String())
		c := createTestComputer()
		return &c, nil
	}

	req := createRawRequest("POST", "/api/computadores",
		`{"marca":"Dell","modelo":"Latitude 5420","numero_serie":"SN1","data_aquisicao":"2023-01-01"}`)
	rr := httptest.NewRecorder()

	handler.CreateComputerHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "SN1", body["numero_serie"])
	assert.Equal(t, "2023-01-01", body["data_aquisicao"])
}

func TestCreateComputerHandler_InvalidJSON(t *testing.T) {
	handler, _ := createTestHandler()

	req := createRawRequest("POST", "/api/computadores", "invalid json")
	rr := httptest.NewRecorder()

	handler.CreateComputerHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	response := decodeError(rr.Body.Bytes())
	assert.Equal(t, "Invalid JSON format", response.Error)
	assert.Equal(t, "INVALID_JSON", response.Code)
}

func TestCreateComputerHandler_InvalidDate(t *testing.T) {
	handler, _ := createTestHandler()

	req := createRawRequest("POST", "/api/computadores", `{"data_aquisicao":"01/01/2023"}`)
	rr := httptest.NewRecorder()

	handler.CreateComputerHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateComputerHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        apperrors.ValidationErrorWithDetails("Validation failed", map[string]string{"marca": "marca is required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "duplicate serial",
			err:        apperrors.AlreadyExistsError("computer"),
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
		{
			name:       "unexpected",
			err:        errors.New("database error"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := createTestHandler()
			mockService.CreateFunc = func(ctx context.Context, in model.ComputerInput) (*model.Computer, error) {
				return nil, tt.err
			}

			rr := httptest.NewRecorder()
			handler.CreateComputerHandler(rr, createJSONRequest("POST", "/api/computadores", map[string]string{}))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, decodeError(rr.Body.Bytes()).Code)
		})
	}
}

func TestCreateComputerHandler_ValidationDetails(t *testing.T) {
	handler, mockService := createTestHandler()
	mockService.CreateFunc = func(ctx context.Context, in model.ComputerInput) (*model.Computer, error) {
		return nil, apperrors.ValidationErrorWithDetails("Validation failed", map[string]string{"marca": "marca is required"})
	}

	rr := httptest.NewRecorder()
	handler.CreateComputerHandler(rr, createJSONRequest("POST", "/api/computadores", map[string]string{}))

	response := decodeError(rr.Body.Bytes())
	assert.Equal(t, "Validation failed", response.Error)
	assert.Equal(t, "marca is required", response.Details["marca"])
}

// Test GetAllComputersHandler

func TestGetAllComputersHandler_Success(t *testing.T) {
	handler, mockService := createTestHandler()
	mockService.ListFunc = func(ctx context.Context) ([]model.Computer, error) {
		return []model.Computer{createTestComputer()}, nil
	}

	rr := httptest.NewRecorder()
	handler.GetAllComputersHandler(rr, createJSONRequest("GET", "/api/computadores", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var computers []model.Computer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &computers))
	assert.Len(t, computers, 1)
}

func TestGetAllComputersHandler_EmptyListIsArray(t *testing.T) {
	handler, _ := createTestHandler()

	rr := httptest.NewRecorder()
	handler.GetAllComputersHandler(rr, createJSONRequest("GET", "/api/computadores", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestSearchComputersHandler_PassesQuery(t *testing.T) {
	handler, mockService := createTestHandler()

	var got string
	mockService.SearchFunc = func(ctx context.Context, q string) ([]model.Computer, error) {
		got = q
		return []model.Computer{}, nil
	}

	rr := httptest.NewRecorder()
	handler.SearchComputersHandler(rr, createJSONRequest("GET", "/api/computadores/search?q=Dell", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Dell", got)
}

// Test GetComputerHandler

func TestGetComputerHandler_Success(t *testing.T) {
	handler, mockService := createTestHandler()
	mockService.GetFunc = func(ctx context.Context, id int64) (*model.Computer, error) {
		assert.Equal(t, int64(1), id)
		c := createTestComputer()
		return &c, nil
	}

	req := createJSONRequest("GET", "/api/computadores/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()

	handler.GetComputerHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGetComputerHandler_InvalidID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-4"} {
		t.Run(raw, func(t *testing.T) {
			handler, _ := createTestHandler()

			req := mux.SetURLVars(createJSONRequest("GET", "/api/computadores/"+raw, nil), map[string]string{"id": raw})
			rr := httptest.NewRecorder()
			handler.GetComputerHandler(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "BAD_REQUEST", decodeError(rr.Body.Bytes()).Code)
		})
	}
}

func TestGetComputerHandler_NotFound(t *testing.T) {
	handler, _ := createTestHandler()

	req := mux.SetURLVars(createJSONRequest("GET", "/api/computadores/99", nil), map[string]string{"id": "99"})
	rr := httptest.NewRecorder()
	handler.GetComputerHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(rr.Body.Bytes()).Code)
}

// Test UpdateComputerHandler

func TestUpdateComputerHandler_Success(t *testing.T) {
	handler, mockService := createTestHandler()
	mockService.UpdateFunc = func(ctx context.Context, id int64, patch model.ComputerPatch) (*model.Computer, error) {
		assert.Nil(t, patch.Marca)
		require.NotNil(t, patch.Modelo)
		c := createTestComputer()
		c.Modelo = *patch.Modelo
		return &c, nil
	}

	req := mux.SetURLVars(createRawRequest("PUT", "/api/computadores/1", `{"modelo":"Latitude 7440"}`), map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	handler.UpdateComputerHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"modelo":"Latitude 7440"`)
}

// Test DeleteComputerHandler

func TestDeleteComputerHandler_Success(t *testing.T) {
	handler, _ := createTestHandler()

	req := mux.SetURLVars(createJSONRequest("DELETE", "/api/computadores/1", nil), map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	handler.DeleteComputerHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Computer deleted successfully","data":{"id":1}}`, rr.Body.String())
}

func TestDeleteComputerHandler_Referenced(t *testing.T) {
	handler, mockService := createTestHandler()
	mockService.DeleteFunc = func(ctx context.Context, id int64) error {
		return apperrors.IntegrityError("computador is referenced by maintenance records").WithDetail("manutencoes", 2)
	}

	req := mux.SetURLVars(createJSONRequest("DELETE", "/api/computadores/1", nil), map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	handler.DeleteComputerHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	response := decodeError(rr.Body.Bytes())
	assert.Equal(t, "INTEGRITY_CONSTRAINT_ERROR", response.Code)
	assert.Equal(t, float64(2), response.Details["manutencoes"])
}
