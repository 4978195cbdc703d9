package service

import (
	"computer-maintenance-api/internal/logger"
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	"context"

	"go.uber.org/zap"
)

// MonthlyReportLimit caps the by-month breakdown to the earliest twelve months.
const MonthlyReportLimit = 12

// ReportService computes read-only aggregates over maintenance records.
type ReportService struct {
	store  *repository.Store
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(store *repository.Store, log *zap.Logger) *ReportService {
	return &ReportService{store: store, logger: logger.OrNop(log).Named("report")}
}

// TotalCount returns the number of maintenance records.
func (s *ReportService) TotalCount(ctx context.Context) (int64, error) {
	n, err := s.store.Repos().Maintenances.Count(ctx)
	if err != nil {
		return 0, storeError(err, "maintenances", "count")
	}
	return n, nil
}

// CountByType maps each maintenance type to its number of records.
func (s *ReportService) CountByType(ctx context.Context) (map[string]int64, error) {
	counts, err := s.store.Repos().Maintenances.CountByType(ctx)
	if err != nil {
		return nil, storeError(err, "maintenances", "count")
	}

	byType := make(map[string]int64, len(counts))
	for _, c := range counts {
		byType[c.Tipo] = c.Quantidade
	}
	return byType, nil
}

// MonthlyCounts returns at most MonthlyReportLimit (year, month) counts, earliest first.
func (s *ReportService) MonthlyCounts(ctx context.Context) ([]model.MonthCount, error) {
	months, err := s.store.Repos().Maintenances.CountByMonth(ctx, MonthlyReportLimit)
	if err != nil {
		return nil, storeError(err, "maintenances", "count")
	}
	return months, nil
}

// Report combines the three aggregates, read from one snapshot.
func (s *ReportService) Report(ctx context.Context) (*model.MaintenanceReport, error) {
	report := &model.MaintenanceReport{}
	err := s.store.WithTx(ctx, repository.ReadSnapshot, func(r *repository.Repositories) error {
		var err error
		if report.TotalManutencoes, err = r.Maintenances.Count(ctx); err != nil {
			return err
		}
		if report.PorTipo, err = r.Maintenances.CountByType(ctx); err != nil {
			return err
		}
		report.PorMes, err = r.Maintenances.CountByMonth(ctx, MonthlyReportLimit)
		return err
	})
	if err != nil {
		return nil, storeError(err, "maintenance report", "build")
	}

	s.logger.Debug("report built",
		zap.Int64("total", report.TotalManutencoes),
		zap.Int("tipos", len(report.PorTipo)),
		zap.Int("meses", len(report.PorMes)))
	return report, nil
}
