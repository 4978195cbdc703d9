package repository

import (
	"computer-maintenance-api/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const computerColumns = `id, marca, modelo, numero_serie, data_aquisicao, created_at, updated_at`

// ComputerRepository is an interface for interacting with computer data.
type ComputerRepository interface {
	Create(ctx context.Context, computer *model.Computer) error
	GetByID(ctx context.Context, id int64) (*model.Computer, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Computer, error)
	GetBySerialNumber(ctx context.Context, serial string) (*model.Computer, error)
	Update(ctx context.Context, computer *model.Computer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Computer, error)
	Search(ctx context.Context, q string) ([]model.Computer, error)
}

// computerRepository is the concrete implementation of the ComputerRepository interface.
type computerRepository struct {
	DB DBTX
}

// NewComputerRepository creates a new ComputerRepository.
func NewComputerRepository(db DBTX) ComputerRepository {
	return &computerRepository{DB: db}
}

func scanComputer(s rowScanner) (model.Computer, error) {
	var c model.Computer
	err := s.Scan(&c.ID, &c.Marca, &c.Modelo, &c.NumeroSerie, &c.DataAquisicao, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a computer and fills its ID and timestamps.
func (r *computerRepository) Create(ctx context.Context, computer *model.Computer) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		INSERT INTO computadores (marca, modelo, numero_serie, data_aquisicao)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		computer.Marca,
		computer.Modelo,
		computer.NumeroSerie,
		computer.DataAquisicao,
	).Scan(&computer.ID, &computer.CreatedAt, &computer.UpdatedAt)
	if err != nil {
		return wrapWriteError("create computer", err)
	}

	return nil
}

// GetByID retrieves a single computer by its ID.
func (r *computerRepository) GetByID(ctx context.Context, id int64) (*model.Computer, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := `SELECT ` + computerColumns + ` FROM computadores WHERE id = $1`

	c, err := scanComputer(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get computer by ID: %w", err)
	}
	return &c, nil
}

// GetByIDs retrieves every computer whose ID is in ids. Missing IDs are ignored.
func (r *computerRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Computer, error) {
	if len(ids) == 0 {
		return []model.Computer{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + computerColumns + ` FROM computadores WHERE id = ANY($1) ORDER BY id`
	return queryList(ctx, r.DB, "computers", scanComputer, query, pq.Array(ids))
}

// GetBySerialNumber retrieves a computer by its unique serial number.
func (r *computerRepository) GetBySerialNumber(ctx context.Context, serial string) (*model.Computer, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := `SELECT ` + computerColumns + ` FROM computadores WHERE numero_serie = $1`

	c, err := scanComputer(r.DB.QueryRowContext(ctx, query, serial))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get computer by serial number: %w", err)
	}
	return &c, nil
}

// Update writes every column of computer and refreshes updated_at.
func (r *computerRepository) Update(ctx context.Context, computer *model.Computer) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE computadores
		SET marca = $1, modelo = $2, numero_serie = $3, data_aquisicao = $4, updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE id = $5
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		computer.Marca,
		computer.Modelo,
		computer.NumeroSerie,
		computer.DataAquisicao,
		computer.ID,
	).Scan(&computer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError("update computer", err)
	}

	return nil
}

// Delete deletes a computer. A computer still referenced by a maintenance yields
// ErrForeignKeyViolation.
func (r *computerRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "computadores", id)
}

// List retrieves all computers ordered by ID.
func (r *computerRepository) List(ctx context.Context) ([]model.Computer, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + computerColumns + ` FROM computadores ORDER BY id`
	return queryList(ctx, r.DB, "computers", scanComputer, query)
}

// Search matches q as a literal, case-sensitive substring of marca, modelo or numero_serie.
func (r *computerRepository) Search(ctx context.Context, q string) ([]model.Computer, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
		SELECT ` + computerColumns + `
		FROM computadores
		WHERE strpos(marca, $1) > 0 OR strpos(modelo, $1) > 0 OR strpos(numero_serie, $1) > 0
		ORDER BY id`
	return queryList(ctx, r.DB, "computers", scanComputer, query, q)
}
