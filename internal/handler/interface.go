package handler

import (
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/service"
	"context"
)

// The handlers depend on these contracts rather than on the concrete services so
// they can be tested with hand-written mocks.

type ComputerService interface {
	Create(ctx context.Context, in model.ComputerInput) (*model.Computer, error)
	Get(ctx context.Context, id int64) (*model.Computer, error)
	List(ctx context.Context) ([]model.Computer, error)
	Search(ctx context.Context, q string) ([]model.Computer, error)
	Update(ctx context.Context, id int64, patch model.ComputerPatch) (*model.Computer, error)
	Delete(ctx context.Context, id int64) error
}

type EmployeeService interface {
	Create(ctx context.Context, in model.EmployeeInput) (*model.Employee, error)
	Get(ctx context.Context, id int64) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	Search(ctx context.Context, q string) ([]model.Employee, error)
	Update(ctx context.Context, id int64, patch model.EmployeePatch) (*model.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type ProblemService interface {
	Create(ctx context.Context, in model.ProblemInput) (*model.Problem, error)
	Get(ctx context.Context, id int64) (*model.Problem, error)
	List(ctx context.Context) ([]model.Problem, error)
	Search(ctx context.Context, q string) ([]model.Problem, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id int64, patch model.ProblemPatch) (*model.Problem, error)
	Delete(ctx context.Context, id int64) error
}

type PartService interface {
	Create(ctx context.Context, in model.PartInput) (*model.Part, error)
	Get(ctx context.Context, id int64) (*model.Part, error)
	List(ctx context.Context) ([]model.Part, error)
	Available(ctx context.Context) ([]model.Part, error)
	Search(ctx context.Context, q string) ([]model.Part, error)
	Update(ctx context.Context, id int64, patch model.PartPatch) (*model.Part, error)
	Delete(ctx context.Context, id int64) error
}

type MaintenanceService interface {
	Create(ctx context.Context, in model.MaintenanceInput) (*model.MaintenanceDetail, error)
	Get(ctx context.Context, id int64) (*model.MaintenanceDetail, error)
	List(ctx context.Context, filter model.MaintenanceFilter) ([]model.MaintenanceDetail, error)
	ListByComputer(ctx context.Context, computerID int64) ([]model.MaintenanceDetail, error)
	Update(ctx context.Context, id int64, patch model.MaintenancePatch) (*model.MaintenanceDetail, error)
	Delete(ctx context.Context, id int64) error
	Types(ctx context.Context) ([]string, error)
}

type ReportService interface {
	Report(ctx context.Context) (*model.MaintenanceReport, error)
}

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ensure the services implement the handler contracts at compile time
var (
	_ ComputerService    = (*service.ComputerService)(nil)
	_ EmployeeService    = (*service.EmployeeService)(nil)
	_ ProblemService     = (*service.ProblemService)(nil)
	_ PartService        = (*service.PartService)(nil)
	_ MaintenanceService = (*service.MaintenanceService)(nil)
	_ ReportService      = (*service.ReportService)(nil)
)
