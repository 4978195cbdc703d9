package router

import (
	"computer-maintenance-api/internal/config"
	"computer-maintenance-api/internal/handler"
	"computer-maintenance-api/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Computers    *handler.ComputerHandler
	Employees    *handler.EmployeeHandler
	Problems     *handler.ProblemHandler
	Parts        *handler.PartHandler
	Maintenances *handler.MaintenanceHandler
	Health       *handler.HealthHandler
}

// NewRouter creates a new router and sets up the routes with security middleware.
// Fixed segments such as /search are registered before /{id} so they are not
// captured as an id.
func NewRouter(h Handlers, cfg *config.Config, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	securityMW := middleware.NewSecurityMiddleware(&cfg.Security, logger)
	loggingMW := middleware.NewLoggingMiddleware(logger)

	// Apply global middleware in order
	r.Use(middleware.RequestID)
	r.Use(securityMW.SecurityHeaders)
	r.Use(securityMW.CORS)
	r.Use(securityMW.TrustedProxy)
	r.Use(loggingMW.LogRequests)
	r.Use(middleware.Metrics)
	r.Use(securityMW.RateLimit)
	r.Use(securityMW.RequestTimeout)

	api := r.PathPrefix("/api").Subrouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(middleware.MethodNotAllowed)
	api.MethodNotAllowedHandler = http.HandlerFunc(middleware.MethodNotAllowed)

	// Computers
	api.HandleFunc("/computadores", h.Computers.GetAllComputersHandler).Methods("GET")
	api.HandleFunc("/computadores", h.Computers.CreateComputerHandler).Methods("POST")
	api.HandleFunc("/computadores/search", h.Computers.SearchComputersHandler).Methods("GET")
	api.HandleFunc("/computadores/{id}", h.Computers.GetComputerHandler).Methods("GET")
	api.HandleFunc("/computadores/{id}", h.Computers.UpdateComputerHandler).Methods("PUT")
	api.HandleFunc("/computadores/{id}", h.Computers.DeleteComputerHandler).Methods("DELETE")

	// Employees
	api.HandleFunc("/funcionarios", h.Employees.GetAllEmployeesHandler).Methods("GET")
	api.HandleFunc("/funcionarios", h.Employees.CreateEmployeeHandler).Methods("POST")
	api.HandleFunc("/funcionarios/search", h.Employees.SearchEmployeesHandler).Methods("GET")
	api.HandleFunc("/funcionarios/{id}", h.Employees.GetEmployeeHandler).Methods("GET")
	api.HandleFunc("/funcionarios/{id}", h.Employees.UpdateEmployeeHandler).Methods("PUT")
	api.HandleFunc("/funcionarios/{id}", h.Employees.DeleteEmployeeHandler).Methods("DELETE")

	// Problems
	api.HandleFunc("/problemas", h.Problems.GetAllProblemsHandler).Methods("GET")
	api.HandleFunc("/problemas", h.Problems.CreateProblemHandler).Methods("POST")
	api.HandleFunc("/problemas/search", h.Problems.SearchProblemsHandler).Methods("GET")
	api.HandleFunc("/problemas/categorias", h.Problems.GetCategoriesHandler).Methods("GET")
	api.HandleFunc("/problemas/{id}", h.Problems.GetProblemHandler).Methods("GET")
	api.HandleFunc("/problemas/{id}", h.Problems.UpdateProblemHandler).Methods("PUT")
	api.HandleFunc("/problemas/{id}", h.Problems.DeleteProblemHandler).Methods("DELETE")

	// Parts
	api.HandleFunc("/pecas", h.Parts.GetAllPartsHandler).Methods("GET")
	api.HandleFunc("/pecas", h.Parts.CreatePartHandler).Methods("POST")
	api.HandleFunc("/pecas/search", h.Parts.SearchPartsHandler).Methods("GET")
	api.HandleFunc("/pecas/disponiveis", h.Parts.GetAvailablePartsHandler).Methods("GET")
	api.HandleFunc("/pecas/{id}", h.Parts.GetPartHandler).Methods("GET")
	api.HandleFunc("/pecas/{id}", h.Parts.UpdatePartHandler).Methods("PUT")
	api.HandleFunc("/pecas/{id}", h.Parts.DeletePartHandler).Methods("DELETE")

	// Maintenances
	api.HandleFunc("/manutencoes", h.Maintenances.GetAllMaintenancesHandler).Methods("GET")
	api.HandleFunc("/manutencoes", h.Maintenances.CreateMaintenanceHandler).Methods("POST")
	api.HandleFunc("/manutencoes/tipos", h.Maintenances.GetMaintenanceTypesHandler).Methods("GET")
	api.HandleFunc("/manutencoes/relatorio", h.Maintenances.GetReportHandler).Methods("GET")
	api.HandleFunc("/manutencoes/computador/{computador_id}", h.Maintenances.GetComputerMaintenancesHandler).Methods("GET")
	api.HandleFunc("/manutencoes/{id}", h.Maintenances.GetMaintenanceHandler).Methods("GET")
	api.HandleFunc("/manutencoes/{id}", h.Maintenances.UpdateMaintenanceHandler).Methods("PUT")
	api.HandleFunc("/manutencoes/{id}", h.Maintenances.DeleteMaintenanceHandler).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", h.Health.Health).Methods("GET")
	api.HandleFunc("/health", h.Health.Health).Methods("GET")

	return r
}
