package repository

import (
	"computer-maintenance-api/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const partColumns = `id, nome_peca, numero_serie_peca, fabricante, data_aquisicao_peca, custo, manutencao_id, created_at, updated_at`

// PartRepository is an interface for interacting with replacement parts and their
// link to a maintenance.
type PartRepository interface {
	Create(ctx context.Context, part *model.Part) error
	GetByID(ctx context.Context, id int64) (*model.Part, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Part, error)
	Update(ctx context.Context, part *model.Part) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Part, error)
	Search(ctx context.Context, q string) ([]model.Part, error)
	ListAvailable(ctx context.Context) ([]model.Part, error)
	ListByMaintenanceIDs(ctx context.Context, maintenanceIDs []int64) ([]model.Part, error)
	AssignToMaintenance(ctx context.Context, partID, maintenanceID int64) (bool, error)
	DetachFromMaintenance(ctx context.Context, maintenanceID int64) (int64, error)
}

type partRepository struct {
	DB DBTX
}

// NewPartRepository creates a new PartRepository.
func NewPartRepository(db DBTX) PartRepository {
	return &partRepository{DB: db}
}

func scanPart(s rowScanner) (model.Part, error) {
	var p model.Part
	err := s.Scan(&p.ID, &p.NomePeca, &p.NumeroSeriePeca, &p.Fabricante, &p.DataAquisicaoPeca,
		&p.Custo, &p.ManutencaoID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a part. A manutencao_id that does not exist yields ErrForeignKeyViolation,
// a negative cost yields ErrCheckViolation.
func (r *partRepository) Create(ctx context.Context, part *model.Part) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		INSERT INTO pecas (nome_peca, numero_serie_peca, fabricante, data_aquisicao_peca, custo, manutencao_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		part.NomePeca,
		part.NumeroSeriePeca,
		part.Fabricante,
		part.DataAquisicaoPeca,
		part.Custo,
		part.ManutencaoID,
	).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
	if err != nil {
		return wrapWriteError("create part", err)
	}
	return nil
}

func (r *partRepository) GetByID(ctx context.Context, id int64) (*model.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := `SELECT ` + partColumns + ` FROM pecas WHERE id = $1`

	p, err := scanPart(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get part by ID: %w", err)
	}
	return &p, nil
}

func (r *partRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Part, error) {
	if len(ids) == 0 {
		return []model.Part{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + partColumns + ` FROM pecas WHERE id = ANY($1) ORDER BY id`
	return queryList(ctx, r.DB, "parts", scanPart, query, pq.Array(ids))
}

func (r *partRepository) Update(ctx context.Context, part *model.Part) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE pecas
		SET nome_peca = $1, numero_serie_peca = $2, fabricante = $3, data_aquisicao_peca = $4,
		    custo = $5, manutencao_id = $6, updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE id = $7
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		part.NomePeca,
		part.NumeroSeriePeca,
		part.Fabricante,
		part.DataAquisicaoPeca,
		part.Custo,
		part.ManutencaoID,
		part.ID,
	).Scan(&part.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError("update part", err)
	}
	return nil
}

func (r *partRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "pecas", id)
}

func (r *partRepository) List(ctx context.Context) ([]model.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + partColumns + ` FROM pecas ORDER BY id`
	return queryList(ctx, r.DB, "parts", scanPart, query)
}

// Search matches q as a literal, case-sensitive substring of nome_peca, fabricante or
// numero_serie_peca.
func (r *partRepository) Search(ctx context.Context, q string) ([]model.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
		SELECT ` + partColumns + `
		FROM pecas
		WHERE strpos(nome_peca, $1) > 0 OR strpos(fabricante, $1) > 0 OR strpos(numero_serie_peca, $1) > 0
		ORDER BY id`
	return queryList(ctx, r.DB, "parts", scanPart, query, q)
}

// ListAvailable returns the parts not linked to any maintenance.
func (r *partRepository) ListAvailable(ctx context.Context) ([]model.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + partColumns + ` FROM pecas WHERE manutencao_id IS NULL ORDER BY id`
	return queryList(ctx, r.DB, "parts", scanPart, query)
}

// ListByMaintenanceIDs returns the parts linked to any of maintenanceIDs, for batch hydration.
func (r *partRepository) ListByMaintenanceIDs(ctx context.Context, maintenanceIDs []int64) ([]model.Part, error) {
	if len(maintenanceIDs) == 0 {
		return []model.Part{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + partColumns + ` FROM pecas WHERE manutencao_id = ANY($1) ORDER BY id`
	return queryList(ctx, r.DB, "parts", scanPart, query, pq.Array(maintenanceIDs))
}

// AssignToMaintenance links a part to a maintenance, replacing any previous link.
// It reports false when no part has partID.
func (r *partRepository) AssignToMaintenance(ctx context.Context, partID, maintenanceID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE pecas
		SET manutencao_id = $1, updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE id = $2`

	n, err := execAffected(ctx, r.DB, "assign part to maintenance", query, maintenanceID, partID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DetachFromMaintenance clears manutencao_id on every part linked to maintenanceID
// and returns how many parts were detached.
func (r *partRepository) DetachFromMaintenance(ctx context.Context, maintenanceID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE pecas
		SET manutencao_id = NULL, updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE manutencao_id = $1`

	return execAffected(ctx, r.DB, "detach parts from maintenance", query, maintenanceID)
}
