package repository

import (
	"computer-maintenance-api/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const maintenanceColumns = `id, computador_id, funcionario_id, problema_id, data_manutencao, tipo_manutencao, descricao_problema, solucao_aplicada, created_at, updated_at`

// MaintenanceRepository is an interface for interacting with maintenance records and
// the aggregates computed over them.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *model.Maintenance) error
	GetByID(ctx context.Context, id int64) (*model.Maintenance, error)
	Update(ctx context.Context, m *model.Maintenance) error
	Delete(ctx context.Context, id int64) error
	ListFiltered(ctx context.Context, filter model.MaintenanceFilter) ([]model.Maintenance, error)
	ListByComputer(ctx context.Context, computerID int64) ([]model.Maintenance, error)

	CountByComputer(ctx context.Context, computerID int64) (int64, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int64, error)
	CountByProblem(ctx context.Context, problemID int64) (int64, error)

	DistinctTypes(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) ([]model.TypeCount, error)
	CountByMonth(ctx context.Context, limit int) ([]model.MonthCount, error)
}

type maintenanceRepository struct {
	DB DBTX
}

// NewMaintenanceRepository creates a new MaintenanceRepository.
func NewMaintenanceRepository(db DBTX) MaintenanceRepository {
	return &maintenanceRepository{DB: db}
}

func scanMaintenance(s rowScanner) (model.Maintenance, error) {
	var m model.Maintenance
	err := s.Scan(&m.ID, &m.ComputadorID, &m.FuncionarioID, &m.ProblemaID, &m.DataManutencao,
		&m.TipoManutencao, &m.DescricaoProblema, &m.SolucaoAplicada, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a maintenance. A reference to a missing computer, employee or
// problem yields ErrForeignKeyViolation.
func (r *maintenanceRepository) Create(ctx context.Context, m *model.Maintenance) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		INSERT INTO manutencoes (computador_id, funcionario_id, problema_id, data_manutencao,
		                         tipo_manutencao, descricao_problema, solucao_aplicada)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		m.ComputadorID,
		m.FuncionarioID,
		m.ProblemaID,
		m.DataManutencao,
		m.TipoManutencao,
		m.DescricaoProblema,
		m.SolucaoAplicada,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return wrapWriteError("create maintenance", err)
	}
	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*model.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := `SELECT ` + maintenanceColumns + ` FROM manutencoes WHERE id = $1`

	m, err := scanMaintenance(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get maintenance by ID: %w", err)
	}
	return &m, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *model.Maintenance) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE manutencoes
		SET computador_id = $1, funcionario_id = $2, problema_id = $3, data_manutencao = $4,
		    tipo_manutencao = $5, descricao_problema = $6, solucao_aplicada = $7,
		    updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE id = $8
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		m.ComputadorID,
		m.FuncionarioID,
		m.ProblemaID,
		m.DataManutencao,
		m.TipoManutencao,
		m.DescricaoProblema,
		m.SolucaoAplicada,
		m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError("update maintenance", err)
	}
	return nil
}

// Delete deletes the row only. Parts must be detached first or the FK from pecas
// yields ErrForeignKeyViolation.
func (r *maintenanceRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "manutencoes", id)
}

// ListFiltered returns the rows matching every criterion set in filter, newest first.
// DateTo includes the whole day.
func (r *maintenanceRepository) ListFiltered(ctx context.Context, filter model.MaintenanceFilter) ([]model.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.ComputadorID != nil {
		add("computador_id = $%d", *filter.ComputadorID)
	}
	if filter.FuncionarioID != nil {
		add("funcionario_id = $%d", *filter.FuncionarioID)
	}
	if filter.Tipo != nil {
		add("tipo_manutencao = $%d", *filter.Tipo)
	}
	if filter.DateFrom != nil {
		add("data_manutencao >= $%d", filter.DateFrom.Time)
	}
	if filter.DateTo != nil {
		add("data_manutencao < $%d", filter.DateTo.AddDate(0, 0, 1))
	}

	query := `SELECT ` + maintenanceColumns + ` FROM manutencoes`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY data_manutencao DESC, id DESC`

	return queryList(ctx, r.DB, "maintenances", scanMaintenance, query, args...)
}

// ListByComputer returns the maintenance history of one computer, newest first.
func (r *maintenanceRepository) ListByComputer(ctx context.Context, computerID int64) ([]model.Maintenance, error) {
	return r.ListFiltered(ctx, model.MaintenanceFilter{ComputadorID: &computerID})
}

func (r *maintenanceRepository) CountByComputer(ctx context.Context, computerID int64) (int64, error) {
	return countWhere(ctx, r.DB, "manutencoes", "computador_id", computerID)
}

func (r *maintenanceRepository) CountByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	return countWhere(ctx, r.DB, "manutencoes", "funcionario_id", employeeID)
}

func (r *maintenanceRepository) CountByProblem(ctx context.Context, problemID int64) (int64, error) {
	return countWhere(ctx, r.DB, "manutencoes", "problema_id", problemID)
}

func (r *maintenanceRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.DB, "manutencoes", "tipo_manutencao")
}

func (r *maintenanceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM manutencoes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count maintenances: %w", err)
	}
	return n, nil
}

// CountByType groups the rows by tipo_manutencao, sorted by type.
func (r *maintenanceRepository) CountByType(ctx context.Context) ([]model.TypeCount, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
		SELECT tipo_manutencao, COUNT(*)
		FROM manutencoes
		GROUP BY tipo_manutencao
		ORDER BY tipo_manutencao`

	return queryList(ctx, r.DB, "maintenance types", func(s rowScanner) (model.TypeCount, error) {
		var tc model.TypeCount
		err := s.Scan(&tc.Tipo, &tc.Quantidade)
		return tc, err
	}, query)
}

// CountByMonth groups the rows by calendar month, ascending, keeping the earliest limit months.
func (r *maintenanceRepository) CountByMonth(ctx context.Context, limit int) ([]model.MonthCount, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
		SELECT EXTRACT(YEAR FROM data_manutencao)::int AS ano,
		       EXTRACT(MONTH FROM data_manutencao)::int AS mes,
		       COUNT(*) AS total
		FROM manutencoes
		GROUP BY ano, mes
		ORDER BY ano, mes
		LIMIT $1`

	return queryList(ctx, r.DB, "maintenance months", func(s rowScanner) (model.MonthCount, error) {
		var mc model.MonthCount
		err := s.Scan(&mc.Ano, &mc.Mes, &mc.Total)
		return mc, err
	}, query, limit)
}
