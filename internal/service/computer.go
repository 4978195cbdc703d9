package service

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	apperrors "computer-maintenance-api/pkg/errors"
	"context"
	"errors"

	"go.uber.org/zap"
)

const computerResource = "computer"

// ComputerService handles business logic for computer operations
type ComputerService struct {
	store  *repository.Store
	logger *zap.Logger
}

// NewComputerService creates a new computer service
func NewComputerService(store *repository.Store, log *zap.Logger) *ComputerService {
	return &ComputerService{store: store, logger: logger.OrNop(log).Named("computer")}
}

// Create registers a computer. The serial number must not be in use.
func (s *ComputerService) Create(ctx context.Context, in model.ComputerInput) (*model.Computer, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requireNotBlank(map[string]*string{
		"marca":        in.Marca,
		"modelo":       in.Modelo,
		"numero_serie": in.NumeroSerie,
	}); err != nil {
		return nil, err
	}

	computer := model.Computer{
		Marca:         *in.Marca,
		Modelo:        *in.Modelo,
		NumeroSerie:   *in.NumeroSerie,
		DataAquisicao: *in.DataAquisicao,
	}

	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		if err := ensureSerialAvailable(ctx, r, computer.NumeroSerie, 0); err != nil {
			return err
		}
		return r.Computers.Create(ctx, &computer)
	})
	if err != nil {
		return nil, storeError(err, computerResource, "create")
	}

	s.logger.Info("computer created", zap.Int64("id", computer.ID), zap.String("numero_serie", computer.NumeroSerie))
	return &computer, nil
}

// Get retrieves a computer by its ID
func (s *ComputerService) Get(ctx context.Context, id int64) (*model.Computer, error) {
	computer, err := s.store.Repos().Computers.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, computerResource, "retrieve")
	}
	return computer, nil
}

func (s *ComputerService) List(ctx context.Context) ([]model.Computer, error) {
	computers, err := s.store.Repos().Computers.List(ctx)
	if err != nil {
		return nil, storeError(err, computerResource, "list")
	}
	return computers, nil
}

// Search returns computers whose marca, modelo or numero_serie contains q. An empty
// q matches nothing.
func (s *ComputerService) Search(ctx context.Context, q string) ([]model.Computer, error) {
	if q == "" {
		return []model.Computer{}, nil
	}
	computers, err := s.store.Repos().Computers.Search(ctx, q)
	if err != nil {
		return nil, storeError(err, computerResource, "search")
	}
	return computers, nil
}

// Update merges the supplied fields into an existing computer.
func (s *ComputerService) Update(ctx context.Context, id int64, patch model.ComputerPatch) (*model.Computer, error) {
	if err := requireNotBlank(map[string]*string{
		"marca":        patch.Marca,
		"modelo":       patch.Modelo,
		"numero_serie": patch.NumeroSerie,
	}); err != nil {
		return nil, err
	}

	var computer *model.Computer
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		var err error
		computer, err = r.Computers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.NumeroSerie != nil && *patch.NumeroSerie != computer.NumeroSerie {
			if err := ensureSerialAvailable(ctx, r, *patch.NumeroSerie, id); err != nil {
				return err
			}
		}
		patch.Apply(computer)
		return r.Computers.Update(ctx, computer)
	})
	if err != nil {
		return nil, storeError(err, computerResource, "update")
	}

	s.logger.Info("computer updated", zap.Int64("id", id))
	return computer, nil
}

// Delete removes a computer that no maintenance references.
func (s *ComputerService) Delete(ctx context.Context, id int64) error {
	err := deleteReferenced(ctx, s.store, refComputer, id, func(r *repository.Repositories) error {
		return r.Computers.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("computer not deleted", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("computer deleted", zap.Int64("id", id))
	return nil
}

// ensureSerialAvailable fails when another computer already uses serial. selfID is
// the computer being updated, or 0 on create.
func ensureSerialAvailable(ctx context.Context, r *repository.Repositories, serial string, selfID int64) error {
	existing, err := r.Computers.GetBySerialNumber(ctx, serial)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.AlreadyExistsError("computer with this serial number").
			WithDetail("numero_serie", serial)
	}
	return nil
}
