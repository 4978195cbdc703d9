package handler

import (
	"bytes"
	"computer-maintenance-api/internal/model"
	apperrors "computer-maintenance-api/pkg/errors"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Mock implementations for testing

// MockComputerService is a mock implementation of ComputerService
type MockComputerService struct {
	CreateFunc func(ctx context.Context, in model.ComputerInput) (*model.Computer, error)
	GetFunc    func(ctx context.Context, id int64) (*model.Computer, error)
	ListFunc   func(ctx context.Context) ([]model.Computer, error)
	SearchFunc func(ctx context.Context, q string) ([]model.Computer, error)
	UpdateFunc func(ctx context.Context, id int64, patch model.ComputerPatch) (*model.Computer, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *MockComputerService) Create(ctx context.Context, in model.ComputerInput) (*model.Computer, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &model.Computer{}, nil
}

func (m *MockComputerService) Get(ctx context.Context, id int64) (*model.Computer, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.NotFoundError("computer")
}

func (m *MockComputerService) List(ctx context.Context) ([]model.Computer, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []model.Computer{}, nil
}

func (m *MockComputerService) Search(ctx context.Context, q string) ([]model.Computer, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return []model.Computer{}, nil
}

func (m *MockComputerService) Update(ctx context.Context, id int64, patch model.ComputerPatch) (*model.Computer, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return &model.Computer{ID: id}, nil
}

func (m *MockComputerService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockEmployeeService is a mock implementation of EmployeeService
type MockEmployeeService struct {
	CreateFunc func(ctx context.Context, in model.EmployeeInput) (*model.Employee, error)
	ListFunc   func(ctx context.Context) ([]model.Employee, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *MockEmployeeService) Create(ctx context.Context, in model.EmployeeInput) (*model.Employee, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &model.Employee{}, nil
}

func (m *MockEmployeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	return nil, apperrors.NotFoundError("employee")
}

func (m *MockEmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []model.Employee{}, nil
}

func (m *MockEmployeeService) Search(ctx context.Context, q string) ([]model.Employee, error) {
	return []model.Employee{}, nil
}

func (m *MockEmployeeService) Update(ctx context.Context, id int64, patch model.EmployeePatch) (*model.Employee, error) {
	return &model.Employee{ID: id}, nil
}

func (m *MockEmployeeService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProblemService is a mock implementation of ProblemService
type MockProblemService struct {
	CategoriesFunc func(ctx context.Context) ([]string, error)
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (m *MockProblemService) Create(ctx context.Context, in model.ProblemInput) (*model.Problem, error) {
	return &model.Problem{}, nil
}

func (m *MockProblemService) Get(ctx context.Context, id int64) (*model.Problem, error) {
	return nil, apperrors.NotFoundError("problem")
}

func (m *MockProblemService) List(ctx context.Context) ([]model.Problem, error) {
	return []model.Problem{}, nil
}

func (m *MockProblemService) Search(ctx context.Context, q string) ([]model.Problem, error) {
	return []model.Problem{}, nil
}

func (m *MockProblemService) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockProblemService) Update(ctx context.Context, id int64, patch model.ProblemPatch) (*model.Problem, error) {
	return &model.Problem{ID: id}, nil
}

func (m *MockProblemService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPartService is a mock implementation of PartService
type MockPartService struct {
	AvailableFunc func(ctx context.Context) ([]model.Part, error)
	UpdateFunc    func(ctx context.Context, id int64, patch model.PartPatch) (*model.Part, error)
}

func (m *MockPartService) Create(ctx context.Context, in model.PartInput) (*model.Part, error) {
	return &model.Part{}, nil
}

func (m *MockPartService) Get(ctx context.Context, id int64) (*model.Part, error) {
	return nil, apperrors.NotFoundError("part")
}

func (m *MockPartService) List(ctx context.Context) ([]model.Part, error) {
	return []model.Part{}, nil
}

func (m *MockPartService) Available(ctx context.Context) ([]model.Part, error) {
	if m.AvailableFunc != nil {
		return m.AvailableFunc(ctx)
	}
	return []model.Part{}, nil
}

func (m *MockPartService) Search(ctx context.Context, q string) ([]model.Part, error) {
	return []model.Part{}, nil
}

func (m *MockPartService) Update(ctx context.Context, id int64, patch model.PartPatch) (*model.Part, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return &model.Part{ID: id}, nil
}

func (m *MockPartService) Delete(ctx context.Context, id int64) error {
	return nil
}

// MockMaintenanceService is a mock implementation of MaintenanceService
type MockMaintenanceService struct {
	CreateFunc         func(ctx context.Context, in model.MaintenanceInput) (*model.MaintenanceDetail, error)
	GetFunc            func(ctx context.Context, id int64) (*model.MaintenanceDetail, error)
	ListFunc           func(ctx context.Context, filter model.MaintenanceFilter) ([]model.MaintenanceDetail, error)
	ListByComputerFunc func(ctx context.Context, computerID int64) ([]model.MaintenanceDetail, error)
	UpdateFunc         func(ctx context.Context, id int64, patch model.MaintenancePatch) (*model.MaintenanceDetail, error)
	DeleteFunc         func(ctx context.Context, id int64) error
	TypesFunc          func(ctx context.Context) ([]string, error)
}

func (m *MockMaintenanceService) Create(ctx context.Context, in model.MaintenanceInput) (*model.MaintenanceDetail, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &model.MaintenanceDetail{Pecas: []model.Part{}}, nil
}

func (m *MockMaintenanceService) Get(ctx context.Context, id int64) (*model.MaintenanceDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.NotFoundError("maintenance")
}

func (m *MockMaintenanceService) List(ctx context.Context, filter model.MaintenanceFilter) ([]model.MaintenanceDetail, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []model.MaintenanceDetail{}, nil
}

func (m *MockMaintenanceService) ListByComputer(ctx context.Context, computerID int64) ([]model.MaintenanceDetail, error) {
	if m.ListByComputerFunc != nil {
		return m.ListByComputerFunc(ctx, computerID)
	}
	return []model.MaintenanceDetail{}, nil
}

func (m *MockMaintenanceService) Update(ctx context.Context, id int64, patch model.MaintenancePatch) (*model.MaintenanceDetail, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return &model.MaintenanceDetail{Maintenance: model.Maintenance{ID: id}, Pecas: []model.Part{}}, nil
}

func (m *MockMaintenanceService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockMaintenanceService) Types(ctx context.Context) ([]string, error) {
	if m.TypesFunc != nil {
		return m.TypesFunc(ctx)
	}
	return []string{}, nil
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	ReportFunc func(ctx context.Context) (*model.MaintenanceReport, error)
}

func (m *MockReportService) Report(ctx context.Context) (*model.MaintenanceReport, error) {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx)
	}
	return &model.MaintenanceReport{PorTipo: []model.TypeCount{}, PorMes: []model.MonthCount{}}, nil
}

// MockPinger is a mock implementation of Pinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Err
}

// Helper functions for tests

var testTime = model.DateTime{Time: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)}

func createTestComputer() model.Computer {
	return model.Computer{
		ID:            1,
		Marca:         "Dell",
		Modelo:        "Latitude 5420",
		NumeroSerie:   "SN1",
		DataAquisicao: model.NewDate(2023, time.January, 1),
		CreatedAt:     testTime,
		UpdatedAt:     testTime,
	}
}

func createTestMaintenance() model.MaintenanceDetail {
	computer := createTestComputer()
	return model.MaintenanceDetail{
		Maintenance: model.Maintenance{
			ID:                7,
			ComputadorID:      1,
			FuncionarioID:     2,
			ProblemaID:        3,
			DataManutencao:    testTime,
			TipoManutencao:    "Reparo",
			DescricaoProblema: "Não liga",
			SolucaoAplicada:   "Troca da fonte",
			CreatedAt:         testTime,
			UpdatedAt:         testTime,
		},
		Computador:  &computer,
		Funcionario: &model.Employee{ID: 2, Nome: "Ana", Cargo: "Técnica", Departamento: "TI"},
		Problema:    &model.Problem{ID: 3, Descricao: "No boot", Categoria: "Hardware"},
		Pecas:       []model.Part{},
	}
}

func createJSONRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createRawRequest(method, url, body string) *http.Request {
	req, _ := http.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(body []byte) ErrorResponse {
	var response ErrorResponse
	_ = json.Unmarshal(body, &response)
	return response
}

// assertCode fails unless err carries an AppError with the given code.
func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}
