package repository

import (
	"computer-maintenance-api/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const problemColumns = `id, descricao, categoria, created_at, updated_at`

// ProblemRepository is an interface for interacting with the problem catalogue.
type ProblemRepository interface {
	Create(ctx context.Context, problem *model.Problem) error
	GetByID(ctx context.Context, id int64) (*model.Problem, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Problem, error)
	Update(ctx context.Context, problem *model.Problem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Problem, error)
	Search(ctx context.Context, q string) ([]model.Problem, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type problemRepository struct {
	DB DBTX
}

// NewProblemRepository creates a new ProblemRepository.
func NewProblemRepository(db DBTX) ProblemRepository {
	return &problemRepository{DB: db}
}

func scanProblem(s rowScanner) (model.Problem, error) {
	var p model.Problem
	err := s.Scan(&p.ID, &p.Descricao, &p.Categoria, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *problemRepository) Create(ctx context.Context, problem *model.Problem) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		INSERT INTO problemas (descricao, categoria)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query, problem.Descricao, problem.Categoria).
		Scan(&problem.ID, &problem.CreatedAt, &problem.UpdatedAt)
	if err != nil {
		return wrapWriteError("create problem", err)
	}
	return nil
}

func (r *problemRepository) GetByID(ctx context.Context, id int64) (*model.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := `SELECT ` + problemColumns + ` FROM problemas WHERE id = $1`

	p, err := scanProblem(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get problem by ID: %w", err)
	}
	return &p, nil
}

func (r *problemRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Problem, error) {
	if len(ids) == 0 {
		return []model.Problem{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + problemColumns + ` FROM problemas WHERE id = ANY($1) ORDER BY id`
	return queryList(ctx, r.DB, "problems", scanProblem, query, pq.Array(ids))
}

func (r *problemRepository) Update(ctx context.Context, problem *model.Problem) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	query := `
		UPDATE problemas
		SET descricao = $1, categoria = $2, updated_at = (NOW() AT TIME ZONE 'utc')
		WHERE id = $3
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query, problem.Descricao, problem.Categoria, problem.ID).
		Scan(&problem.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError("update problem", err)
	}
	return nil
}

func (r *problemRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "problemas", id)
}

func (r *problemRepository) List(ctx context.Context) ([]model.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT ` + problemColumns + ` FROM problemas ORDER BY id`
	return queryList(ctx, r.DB, "problems", scanProblem, query)
}

// Search matches q as a literal, case-sensitive substring of descricao or categoria.
func (r *problemRepository) Search(ctx context.Context, q string) ([]model.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `
		SELECT ` + problemColumns + `
		FROM problemas
		WHERE strpos(descricao, $1) > 0 OR strpos(categoria, $1) > 0
		ORDER BY id`
	return queryList(ctx, r.DB, "problems", scanProblem, query, q)
}

// DistinctCategories returns every category in use, sorted.
func (r *problemRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.DB, "problemas", "categoria")
}
