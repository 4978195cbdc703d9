package service

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/metrics"
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	"context"

	"go.uber.org/zap"
)

const maintenanceResource = "maintenance"

// MaintenanceService runs the maintenance lifecycle: each create, update or delete
// covers the row and its part links in one transaction.
type MaintenanceService struct {
	store  *repository.Store
	logger *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(store *repository.Store, log *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		store:  store,
		logger: logger.OrNop(log).Named("maintenance"),
	}
}

// Create inserts a maintenance and links the listed parts. Part IDs that match no
// part are skipped.
func (s *MaintenanceService) Create(ctx context.Context, in model.MaintenanceInput) (*model.MaintenanceDetail, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requireNotBlank(map[string]*string{
		"tipo_manutencao":    in.TipoManutencao,
		"descricao_problema": in.DescricaoProblema,
		"solucao_aplicada":   in.SolucaoAplicada,
	}); err != nil {
		return nil, err
	}

	m := model.Maintenance{
		ComputadorID:      *in.ComputadorID,
		FuncionarioID:     *in.FuncionarioID,
		ProblemaID:        *in.ProblemaID,
		DataManutencao:    *in.DataManutencao,
		TipoManutencao:    *in.TipoManutencao,
		DescricaoProblema: *in.DescricaoProblema,
		SolucaoAplicada:   *in.SolucaoAplicada,
	}

	var detail *model.MaintenanceDetail
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.Maintenances.Create(ctx, &m); err != nil {
			return err
		}
		if err := s.attachParts(ctx, r, m.ID, in.PecasIDs); err != nil {
			return err
		}
		var err error
		detail, err = hydrateOne(ctx, r, m)
		return err
	})
	metrics.ObserveMaintenanceOp("create", err)
	if err != nil {
		return nil, storeError(err, maintenanceResource, "create")
	}

	s.logger.Info("maintenance created",
		zap.Int64("id", m.ID),
		zap.Int64("computador_id", m.ComputadorID),
		zap.String("tipo", m.TipoManutencao),
		zap.Int("pecas", len(detail.Pecas)))

	return detail, nil
}

// Get returns the hydrated maintenance.
func (s *MaintenanceService) Get(ctx context.Context, id int64) (*model.MaintenanceDetail, error) {
	var detail *model.MaintenanceDetail
	err := s.store.WithTx(ctx, repository.ReadSnapshot, func(r *repository.Repositories) error {
		m, err := r.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		detail, err = hydrateOne(ctx, r, *m)
		return err
	})
	if err != nil {
		return nil, storeError(err, maintenanceResource, "retrieve")
	}
	return detail, nil
}

// List returns the maintenances matching filter, newest first.
func (s *MaintenanceService) List(ctx context.Context, filter model.MaintenanceFilter) ([]model.MaintenanceDetail, error) {
	var details []model.MaintenanceDetail
	err := s.store.WithTx(ctx, repository.ReadSnapshot, func(r *repository.Repositories) error {
		rows, err := r.Maintenances.ListFiltered(ctx, filter)
		if err != nil {
			return err
		}
		details, err = hydrate(ctx, r, rows)
		return err
	})
	if err != nil {
		return nil, storeError(err, maintenanceResource, "list")
	}

	s.logger.Debug("maintenances listed", zap.Int("count", len(details)))
	return details, nil
}

// ListByComputer returns the maintenance history of one computer, newest first.
func (s *MaintenanceService) ListByComputer(ctx context.Context, computerID int64) ([]model.MaintenanceDetail, error) {
	var details []model.MaintenanceDetail
	err := s.store.WithTx(ctx, repository.ReadSnapshot, func(r *repository.Repositories) error {
		rows, err := r.Maintenances.ListByComputer(ctx, computerID)
		if err != nil {
			return err
		}
		details, err = hydrate(ctx, r, rows)
		return err
	})
	if err != nil {
		return nil, storeError(err, maintenanceResource, "list")
	}
	return details, nil
}

// Update merges the supplied fields. When pecas_ids is present, even as [] or null,
// the part links are replaced: every linked part is detached first, then each listed
// part that exists is attached.
func (s *MaintenanceService) Update(ctx context.Context, id int64, patch model.MaintenancePatch) (*model.MaintenanceDetail, error) {
	if err := requireNotBlank(map[string]*string{
		"tipo_manutencao":    patch.TipoManutencao,
		"descricao_problema": patch.DescricaoProblema,
		"solucao_aplicada":   patch.SolucaoAplicada,
	}); err != nil {
		return nil, err
	}

	var detail *model.MaintenanceDetail
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		m, err := r.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(m)
		if err := r.Maintenances.Update(ctx, m); err != nil {
			return err
		}

		if patch.PecasIDs.Set {
			detached, err := r.Parts.DetachFromMaintenance(ctx, id)
			if err != nil {
				return err
			}
			metrics.AddDetachedParts(detached)

			var ids []int64
			if patch.PecasIDs.Value != nil {
				ids = *patch.PecasIDs.Value
			}
			if err := s.attachParts(ctx, r, id, ids); err != nil {
				return err
			}
		}

		detail, err = hydrateOne(ctx, r, *m)
		return err
	})
	metrics.ObserveMaintenanceOp("update", err)
	if err != nil {
		return nil, storeError(err, maintenanceResource, "update")
	}

	s.logger.Info("maintenance updated", zap.Int64("id", id), zap.Bool("pecas_replaced", patch.PecasIDs.Set))
	return detail, nil
}

// Delete detaches the maintenance's parts and deletes it. Parts are never deleted.
func (s *MaintenanceService) Delete(ctx context.Context, id int64) error {
	var detached int64
	err := s.store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		var err error
		detached, err = detachAndDelete(ctx, r, id)
		return err
	})
	metrics.ObserveMaintenanceOp("delete", err)
	if err != nil {
		return storeError(err, maintenanceResource, "delete")
	}

	metrics.AddDetachedParts(detached)
	s.logger.Info("maintenance deleted", zap.Int64("id", id), zap.Int64("pecas_detached", detached))
	return nil
}

// Types returns the distinct maintenance type labels.
func (s *MaintenanceService) Types(ctx context.Context) ([]string, error) {
	types, err := s.store.Repos().Maintenances.DistinctTypes(ctx)
	if err != nil {
		return nil, storeError(err, maintenanceResource, "list types of")
	}
	return types, nil
}

func (s *MaintenanceService) attachParts(ctx context.Context, r *repository.Repositories, maintenanceID int64, partIDs []int64) error {
	for _, partID := range uniqueIDs(partIDs) {
		ok, err := r.Parts.AssignToMaintenance(ctx, partID, maintenanceID)
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Debug("skipping unknown part",
				zap.Int64("peca_id", partID),
				zap.Int64("manutencao_id", maintenanceID))
		}
	}
	return nil
}
