package service

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	"context"

	"go.uber.org/zap"
)

const employeeResource = "employee"

// EmployeeService handles business logic for employee operations
type EmployeeService struct {
	store  *repository.Store
	logger *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(store *repository.Store, log *zap.Logger) *EmployeeService {
	return &EmployeeService{store: store, logger: logger.OrNop(log).Named("employee")}
}

func (s *EmployeeService) Create(ctx context.Context, in model.EmployeeInput) (*model.Employee, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requireNotBlank(map[string]*string{
		"nome":         in.Nome,
		"cargo":        in.Cargo,
		"departamento": in.Departamento,
	}); err != nil {
		return nil, err
	}

	employee := model.Employee{Nome: *in.Nome, Cargo: *in.Cargo, Departamento: *in.Departamento}
	if err := s.store.Repos().Employees.Create(ctx, &employee); err != nil {
		return nil, storeError(err, employeeResource, "create")
	}

	s.logger.Info("employee created", zap.Int64("id", employee.ID))
	return &employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	employee, err := s.store.Repos().Employees.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, employeeResource, "retrieve")
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.store.Repos().Employees.List(ctx)
	if err != nil {
		return nil, storeError(err, employeeResource, "list")
	}
	return employees, nil
}

// Search returns employees whose nome, cargo or departamento contains q.
func (s *EmployeeService) Search(ctx context.Context, q string) ([]model.Employee, error) {
	if q == "" {
		return []model.Employee{}, nil
	}
	employees, err := s.store.Repos().Employees.Search(ctx, q)
	if err != nil {
		return nil, storeError(err, employeeResource, "search")
	}
	return employees, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, patch model.EmployeePatch) (*model.Employee, error) {
	if err := requireNotBlank(map[string]*string{
		"nome":         patch.Nome,
		"cargo":        patch.Cargo,
		"departamento": patch.Departamento,
	}); err != nil {
		return nil, err
	}

	var employee *model.Employee
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		var err error
		if employee, err = r.Employees.GetByID(ctx, id); err != nil {
			return err
		}
		patch.Apply(employee)
		return r.Employees.Update(ctx, employee)
	})
	if err != nil {
		return nil, storeError(err, employeeResource, "update")
	}

	s.logger.Info("employee updated", zap.Int64("id", id))
	return employee, nil
}

// Delete removes an employee that no maintenance references.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	err := deleteReferenced(ctx, s.store, refEmployee, id, func(r *repository.Repositories) error {
		return r.Employees.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("employee deleted", zap.Int64("id", id))
	return nil
}
