package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMaintenanceOp(t *testing.T) {
	before := testutil.ToFloat64(maintenanceOperations.WithLabelValues("delete", "error"))

	ObserveMaintenanceOp("delete", errors.New("boom"))

	after := testutil.ToFloat64(maintenanceOperations.WithLabelValues("delete", "error"))
	assert.Equal(t, before+1, after)
}

func TestAddDetachedParts_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(detachedParts)

	AddDetachedParts(0)
	AddDetachedParts(2)

	assert.Equal(t, before+2, testutil.ToFloat64(detachedParts))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTPRequest(http.MethodGet, "/api/manutencoes", http.StatusOK, 15*time.Millisecond)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "maintenance_api_http_requests_total")
}
