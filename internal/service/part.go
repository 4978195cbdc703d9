package service

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	"context"

	"go.uber.org/zap"
)

const partResource = "part"

// PartService manages replacement parts. A part may name its maintenance directly;
// the maintenance must exist.
type PartService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewPartService(store *repository.Store, log *zap.Logger) *PartService {
	return &PartService{store: store, logger: logger.OrNop(log).Named("part")}
}

func (s *PartService) Create(ctx context.Context, in model.PartInput) (*model.Part, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requireNotBlank(map[string]*string{"nome_peca": in.NomePeca, "fabricante": in.Fabricante}); err != nil {
		return nil, err
	}

	part := model.Part{
		NomePeca:          *in.NomePeca,
		NumeroSeriePeca:   in.NumeroSeriePeca,
		Fabricante:        *in.Fabricante,
		DataAquisicaoPeca: *in.DataAquisicaoPeca,
		Custo:             *in.Custo,
		ManutencaoID:      in.ManutencaoID,
	}
	if err := s.store.Repos().Parts.Create(ctx, &part); err != nil {
		return nil, storeError(err, partResource, "create")
	}

	s.logger.Info("part created", zap.Int64("id", part.ID), zap.String("nome_peca", part.NomePeca))
	return &part, nil
}

func (s *PartService) Get(ctx context.Context, id int64) (*model.Part, error) {
	part, err := s.store.Repos().Parts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, partResource, "retrieve")
	}
	return part, nil
}

func (s *PartService) List(ctx context.Context) ([]model.Part, error) {
	parts, err := s.store.Repos().Parts.List(ctx)
	if err != nil {
		return nil, storeError(err, partResource, "list")
	}
	return parts, nil
}

// Available returns the parts not linked to any maintenance.
func (s *PartService) Available(ctx context.Context) ([]model.Part, error) {
	parts, err := s.store.Repos().Parts.ListAvailable(ctx)
	if err != nil {
		return nil, storeError(err, partResource, "list")
	}
	return parts, nil
}

func (s *PartService) Search(ctx context.Context, q string) ([]model.Part, error) {
	if q == "" {
		return []model.Part{}, nil
	}
	parts, err := s.store.Repos().Parts.Search(ctx, q)
	if err != nil {
		return nil, storeError(err, partResource, "search")
	}
	return parts, nil
}

// Update merges the supplied fields. An explicit null clears numero_serie_peca or
// manutencao_id.
func (s *PartService) Update(ctx context.Context, id int64, patch model.PartPatch) (*model.Part, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	if err := requireNotBlank(map[string]*string{"nome_peca": patch.NomePeca, "fabricante": patch.Fabricante}); err != nil {
		return nil, err
	}

	var part *model.Part
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		var err error
		if part, err = r.Parts.GetByID(ctx, id); err != nil {
			return err
		}
		patch.Apply(part)
		return r.Parts.Update(ctx, part)
	})
	if err != nil {
		return nil, storeError(err, partResource, "update")
	}

	s.logger.Info("part updated", zap.Int64("id", id))
	return part, nil
}

func (s *PartService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Repos().Parts.Delete(ctx, id); err != nil {
		return storeError(err, partResource, "delete")
	}

	s.logger.Info("part deleted", zap.Int64("id", id))
	return nil
}
