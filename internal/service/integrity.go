package service

import (
	"computer-maintenance-api/internal/repository"
	apperrors "computer-maintenance-api/pkg/errors"
	"context"
	"fmt"
)

// referenceKind names an entity that maintenance records point at.
type referenceKind string

const (
	refComputer referenceKind = "computador"
	refEmployee referenceKind = "funcionario"
	refProblem  referenceKind = "problema"
)

// guardNoMaintenance fails with an integrity error while any maintenance references
// the given entity.
func guardNoMaintenance(ctx context.Context, r *repository.Repositories, kind referenceKind, id int64) error {
	var count func(context.Context, int64) (int64, error)
	switch kind {
	case refComputer:
		count = r.Maintenances.CountByComputer
	case refEmployee:
		count = r.Maintenances.CountByEmployee
	case refProblem:
		count = r.Maintenances.CountByProblem
	default:
		return fmt.Errorf("unknown reference kind %q", kind)
	}

	n, err := count(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.IntegrityError(
			fmt.Sprintf("cannot delete %s %d: referenced by %d maintenance record(s)", kind, id, n)).
			WithDetail("manutencoes", n)
	}
	return nil
}

// deleteReferenced deletes a computer, employee or problem after checking that no
// maintenance references it. Check and delete share one transaction.
func deleteReferenced(ctx context.Context, store *repository.Store, kind referenceKind, id int64,
	del func(r *repository.Repositories) error) error {
	err := store.WithTx(ctx, nil, func(r *repository.Repositories) error {
		if err := guardNoMaintenance(ctx, r, kind, id); err != nil {
			return err
		}
		return del(r)
	})
	return storeError(err, string(kind), "delete")
}

// detachAndDelete clears manutencao_id on the maintenance's parts and then deletes
// the maintenance. It must run inside a transaction so both steps land together.
func detachAndDelete(ctx context.Context, r *repository.Repositories, maintenanceID int64) (int64, error) {
	detached, err := r.Parts.DetachFromMaintenance(ctx, maintenanceID)
	if err != nil {
		return 0, err
	}
	if err := r.Maintenances.Delete(ctx, maintenanceID); err != nil {
		return 0, err
	}
	return detached, nil
}
