package integration

import (
	"bytes"
	"computer-maintenance-api/internal/config"
	"computer-maintenance-api/internal/database"
	"computer-maintenance-api/internal/handler"
	"computer-maintenance-api/internal/repository"
	"computer-maintenance-api/internal/router"
	"computer-maintenance-api/internal/service"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// IntegrationTestSuite holds the test dependencies
type IntegrationTestSuite struct {
	DB     *sql.DB
	Router http.Handler
	Config *config.Config
}

// setupIntegrationTest connects to the test database, applies the schema and
// truncates every table. The test is skipped in short mode or when no database
// answers.
func setupIntegrationTest(t *testing.T) *IntegrationTestSuite {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := loadTestConfig(t)
	db := initTestDatabase(t, cfg)
	logger := zaptest.NewLogger(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, database.Migrate(ctx, db, logger))
	cleanDatabase(t, db)

	store := repository.NewStore(db)
	handlers := router.Handlers{
		Computers:    handler.NewComputerHandler(service.NewComputerService(store, logger), logger),
		Employees:    handler.NewEmployeeHandler(service.NewEmployeeService(store, logger), logger),
		Problems:     handler.NewProblemHandler(service.NewProblemService(store, logger), logger),
		Parts:        handler.NewPartHandler(service.NewPartService(store, logger), logger),
		Maintenances: handler.NewMaintenanceHandler(service.NewMaintenanceService(store, logger), service.NewReportService(store, logger), logger),
		Health:       handler.NewHealthHandler(store, logger),
	}

	suite := &IntegrationTestSuite{
		DB:     db,
		Router: router.NewRouter(handlers, cfg, logger),
		Config: cfg,
	}
	t.Cleanup(func() { teardownIntegrationTest(t, suite) })
	return suite
}

// teardownIntegrationTest cleans up test resources
func teardownIntegrationTest(t *testing.T, suite *IntegrationTestSuite) {
	t.Helper()
	if suite.DB != nil {
		cleanDatabase(t, suite.DB)
		suite.DB.Close()
	}
}

// loadTestConfig loads configuration for testing
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Database.URL = os.Getenv("TEST_DATABASE_URL")
	cfg.Database.Host = getEnv("TEST_DB_HOST", "127.0.0.1")
	cfg.Database.Port = getEnvAsInt("TEST_DB_PORT", 5452)
	cfg.Database.User = getEnv("TEST_DB_USER", "postgres")
	cfg.Database.Password = getEnv("TEST_DB_PASSWORD", "postgres")
	cfg.Database.Name = getEnv("TEST_DB_NAME", "postgres")
	cfg.Security.RateLimitRPS = 10000
	cfg.Security.RateLimitBurst = 10000
	return cfg
}

// initTestDatabase initializes the test database connection
func initTestDatabase(t *testing.T, cfg *config.Config) *sql.DB {
	t.Helper()

	db, err := database.InitDB(cfg)
	if err != nil {
		t.Skipf("Failed to connect to test database: %v. Ensure test database is running.", err)
	}

	return db
}

// cleanDatabase removes all test data
func cleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("TRUNCATE TABLE pecas, manutencoes, problemas, funcionarios, computadores RESTART IDENTITY CASCADE")
	if err != nil {
		t.Logf("Warning: Failed to clean database: %v", err)
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// do sends a JSON request through the router and returns the recorder.
func (s *IntegrationTestSuite) do(method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)
	return resp
}

// create posts body and returns the id of the created resource.
func (s *IntegrationTestSuite) create(t *testing.T, path string, body interface{}) int64 {
	t.Helper()

	resp := s.do("POST", path, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	parseJSONResponse(t, resp, &created)
	require.NotZero(t, created.ID)
	return created.ID
}

// Test helper to parse JSON response
func parseJSONResponse(t *testing.T, resp *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, resp.Body.String())
	}
}

// fixture is the Dell / Ana / No boot scenario.
type fixture struct {
	ComputerID int64
	EmployeeID int64
	ProblemID  int64
}

func (s *IntegrationTestSuite) seed(t *testing.T) fixture {
	t.Helper()
	return fixture{
		ComputerID: s.create(t, "/api/computadores", map[string]string{
			"marca": "Dell", "modelo": "Latitude 5420", "numero_serie": "SN1", "data_aquisicao": "2023-01-01",
		}),
		EmployeeID: s.create(t, "/api/funcionarios", map[string]string{
			"nome": "Ana", "cargo": "Técnica", "departamento": "TI",
		}),
		ProblemID: s.create(t, "/api/problemas", map[string]string{
			"descricao": "No boot", "categoria": "Hardware",
		}),
	}
}

func (s *IntegrationTestSuite) createPart(t *testing.T, name string) int64 {
	t.Helper()
	return s.create(t, "/api/pecas", map[string]interface{}{
		"nome_peca": name, "fabricante": "Kingston", "data_aquisicao_peca": "2024-01-10", "custo": 100.0,
	})
}

func (s *IntegrationTestSuite) createMaintenance(t *testing.T, f fixture, when, tipo string, parts []int64) int64 {
	t.Helper()
	return s.create(t, "/api/manutencoes", map[string]interface{}{
		"computador_id":      f.ComputerID,
		"funcionario_id":     f.EmployeeID,
		"problema_id":        f.ProblemID,
		"data_manutencao":    when,
		"tipo_manutencao":    tipo,
		"descricao_problema": "Não liga",
		"solucao_aplicada":   "Troca da fonte",
		"pecas_ids":          parts,
	})
}

func (s *IntegrationTestSuite) partMaintenance(t *testing.T, partID int64) *int64 {
	t.Helper()

	resp := s.do("GET", fmt.Sprintf("/api/pecas/%d", partID), nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var part struct {
		ManutencaoID *int64 `json:"manutencao_id"`
	}
	parseJSONResponse(t, resp, &part)
	return part.ManutencaoID
}
