package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Success(t *testing.T) {
	handler := NewHealthHandler(&MockPinger{}, nil)

	rr := httptest.NewRecorder()
	handler.Health(rr, createJSONRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response SuccessResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Service is healthy", response.Message)
	assert.Equal(t, "up", response.Data.(map[string]interface{})["database"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	handler := NewHealthHandler(&MockPinger{Err: errors.New("connection refused")}, nil)

	rr := httptest.NewRecorder()
	handler.Health(rr, createJSONRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "UNHEALTHY", decodeError(rr.Body.Bytes()).Code)
}
