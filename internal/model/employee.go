package model

// Employee is the technician or staff member who performed a maintenance.
type Employee struct {
	ID           int64    `json:"id"`
	Nome         string   `json:"nome"`
	Cargo        string   `json:"cargo"`
	Departamento string   `json:"departamento"`
	CreatedAt    DateTime `json:"created_at"`
	UpdatedAt    DateTime `json:"updated_at"`
}

type EmployeeInput struct {
	Nome         *string `json:"nome" validate:"required"`
	Cargo        *string `json:"cargo" validate:"required"`
	Departamento *string `json:"departamento" validate:"required"`
}

type EmployeePatch struct {
	Nome         *string `json:"nome"`
	Cargo        *string `json:"cargo"`
	Departamento *string `json:"departamento"`
}

func (p EmployeePatch) Apply(e *Employee) {
	if p.Nome != nil {
		e.Nome = *p.Nome
	}
	if p.Cargo != nil {
		e.Cargo = *p.Cargo
	}
	if p.Departamento != nil {
		e.Departamento = *p.Departamento
	}
}
