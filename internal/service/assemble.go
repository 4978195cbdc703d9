package service

import (
	"computer-maintenance-api/internal/model"
	"computer-maintenance-api/internal/repository"
	"context"
)

// hydrate builds the read model for rows. Related computers, employees, problems and
// parts are fetched in one query each and attached by ID.
func hydrate(ctx context.Context, r *repository.Repositories, rows []model.Maintenance) ([]model.MaintenanceDetail, error) {
	details := make([]model.MaintenanceDetail, 0, len(rows))
	if len(rows) == 0 {
		return details, nil
	}

	var computerIDs, employeeIDs, problemIDs, maintenanceIDs []int64
	for _, m := range rows {
		computerIDs = append(computerIDs, m.ComputadorID)
		employeeIDs = append(employeeIDs, m.FuncionarioID)
		problemIDs = append(problemIDs, m.ProblemaID)
		maintenanceIDs = append(maintenanceIDs, m.ID)
	}

	computers, err := r.Computers.GetByIDs(ctx, uniqueIDs(computerIDs))
	if err != nil {
		return nil, err
	}
	employees, err := r.Employees.GetByIDs(ctx, uniqueIDs(employeeIDs))
	if err != nil {
		return nil, err
	}
	problems, err := r.Problems.GetByIDs(ctx, uniqueIDs(problemIDs))
	if err != nil {
		return nil, err
	}
	parts, err := r.Parts.ListByMaintenanceIDs(ctx, uniqueIDs(maintenanceIDs))
	if err != nil {
		return nil, err
	}

	computerByID := make(map[int64]*model.Computer, len(computers))
	for i := range computers {
		computerByID[computers[i].ID] = &computers[i]
	}
	employeeByID := make(map[int64]*model.Employee, len(employees))
	for i := range employees {
		employeeByID[employees[i].ID] = &employees[i]
	}
	problemByID := make(map[int64]*model.Problem, len(problems))
	for i := range problems {
		problemByID[problems[i].ID] = &problems[i]
	}
	partsByMaintenance := make(map[int64][]model.Part)
	for _, p := range parts {
		if p.ManutencaoID != nil {
			partsByMaintenance[*p.ManutencaoID] = append(partsByMaintenance[*p.ManutencaoID], p)
		}
	}

	for _, m := range rows {
		pecas := partsByMaintenance[m.ID]
		if pecas == nil {
			pecas = []model.Part{}
		}
		details = append(details, model.MaintenanceDetail{
			Maintenance: m,
			Computador:  computerByID[m.ComputadorID],
			Funcionario: employeeByID[m.FuncionarioID],
			Problema:    problemByID[m.ProblemaID],
			Pecas:       pecas,
		})
	}
	return details, nil
}

// hydrateOne is hydrate for a single row.
func hydrateOne(ctx context.Context, r *repository.Repositories, m model.Maintenance) (*model.MaintenanceDetail, error) {
	details, err := hydrate(ctx, r, []model.Maintenance{m})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// uniqueIDs drops duplicates and keeps first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
