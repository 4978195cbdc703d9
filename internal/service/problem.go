package service

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	"context"

	"go.uber.org/zap"
)

const problemResource = "problem"

// ProblemService manages the problem catalogue.
type ProblemService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewProblemService(store *repository.Store, log *zap.Logger) *ProblemService {
	return &ProblemService{store: store, logger: logger.OrNop(log).Named("problem")}
}

func (s *ProblemService) Create(ctx context.Context, in model.ProblemInput) (*model.Problem, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requireNotBlank(map[string]*string{"descricao": in.Descricao, "categoria": in.Categoria}); err != nil {
		return nil, err
	}

	problem := model.Problem{Descricao: *in.Descricao, Categoria: *in.Categoria}
	if err := s.store.Repos().Problems.Create(ctx, &problem); err != nil {
		return nil, storeError(err, problemResource, "create")
	}

	s.logger.Info("problem created", zap.Int64("id", problem.ID), zap.String("categoria", problem.Categoria))
	return &problem, nil
}

func (s *ProblemService) Get(ctx context.Context, id int64) (*model.Problem, error) {
	problem, err := s.store.Repos().Problems.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, problemResource, "retrieve")
	}
	return problem, nil
}

func (s *ProblemService) List(ctx context.Context) ([]model.Problem, error) {
	problems, err := s.store.Repos().Problems.List(ctx)
	if err != nil {
		return nil, storeError(err, problemResource, "list")
	}
	return problems, nil
}

func (s *ProblemService) Search(ctx context.Context, q string) ([]model.Problem, error) {
	if q == "" {
		return []model.Problem{}, nil
	}
	problems, err := s.store.Repos().Problems.Search(ctx, q)
	if err != nil {
		return nil, storeError(err, problemResource, "search")
	}
	return problems, nil
}

// Categories returns the distinct problem categories.
func (s *ProblemService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.store.Repos().Problems.DistinctCategories(ctx)
	if err != nil {
		return nil, storeError(err, problemResource, "list categories of")
	}
	return categories, nil
}

func (s *ProblemService) Update(ctx context.Context, id int64, patch model.ProblemPatch) (*model.Problem, error) {
	if err := requireNotBlank(map[string]*string{"descricao": patch.Descricao, "categoria": patch.Categoria}); err != nil {
		return nil, err
	}

	var problem *model.Problem
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		var err error
		if problem, err = r.Problems.GetByID(ctx, id); err != nil {
			return err
		}
		patch.Apply(problem)
		return r.Problems.Update(ctx, problem)
	})
	if err != nil {
		return nil, storeError(err, problemResource, "update")
	}

	s.logger.Info("problem updated", zap.Int64("id", id))
	return problem, nil
}

// Delete removes a problem that no maintenance references.
func (s *ProblemService) Delete(ctx context.Context, id int64) error {
	err := deleteReferenced(ctx, s.store, refProblem, id, func(r *repository.Repositories) error {
		return r.Problems.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("problem deleted", zap.Int64("id", id))
	return nil
}
