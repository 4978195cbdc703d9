package repository

import (
	"computer-maintenance-api/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const employeeColumns = `id, nome, cargo, departamento, created_at, updated_at`

// EmployeeRepository is an interface for interacting with employee data.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Employee, error)
	Search(ctx context.Context, q string) ([]model.Employee, error)
}

type employeeRepository struct {
	DB DBTX
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{DB: db}
}

func scanEmployee(s rowScanner) (model.Employee, error) {
	var e model.Employee
	err := s.Scan(&e.ID, &e.Nome, &e.Cargo, &e.Departamento, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		INSERT INTO funcionarios (nome, cargo, departamento)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query, employee.Nome, employee.Cargo, employee.Departamento).
		Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return wrapWriteError("create employee", err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM funcionarios WHERE id = $1`

	e, err := scanEmployee(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return &e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Employee, error) {
	if len(ids) == 0 {
		return []model.Employee{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM funcionarios WHERE id = ANY($1) ORDER BY id`
	return queryList(ctx, r.DB, "employees", scanEmployee, query, pq.Array(ids))
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE funcionarios
		SET nome = $1, cargo = $2, departamento = $3, updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE id = $4
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query, employee.Nome, employee.Cargo, employee.Departamento, employee.ID).
		Scan(&employee.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError("update employee", err)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "funcionarios", id)
}

func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM funcionarios ORDER BY id`
	return queryList(ctx, r.DB, "employees", scanEmployee, query)
}

// Search matches q as a literal, case-sensitive substring of nome, cargo or departamento.
func (r *employeeRepository) Search(ctx context.Context, q string) ([]model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
		SELECT ` + employeeColumns + `
		FROM funcionarios
		WHERE strpos(nome, $1) > 0 OR strpos(cargo, $1) > 0 OR strpos(departamento, $1) > 0
		ORDER BY id`
	return queryList(ctx, r.DB, "employees", scanEmployee, query, q)
}
