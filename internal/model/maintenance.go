package model

// Maintenance is the persisted row of a maintenance event. Its parts are linked
// through Part.ManutencaoID and are not stored here.
type Maintenance struct {
	ID                int64    `json:"id"`
	ComputadorID      int64    `json:"computador_id"`
	FuncionarioID     int64    `json:"funcionario_id"`
	ProblemaID        int64    `json:"problema_id"`
	DataManutencao    DateTime `json:"data_manutencao"`
	TipoManutencao    string   `json:"tipo_manutencao"`
	DescricaoProblema string   `json:"descricao_problema"`
	SolucaoAplicada   string   `json:"solucao_aplicada"`
	CreatedAt         DateTime `json:"created_at"`
	UpdatedAt         DateTime `json:"updated_at"`
}

// MaintenanceDetail is the hydrated read model: the row plus its referenced
// computer, employee, problem and the parts currently linked to it.
type MaintenanceDetail struct {
	Maintenance
	Computador  *Computer `json:"computador"`
	Funcionario *Employee `json:"funcionario"`
	Problema    *Problem  `json:"problema"`
	Pecas       []Part    `json:"pecas"`
}

type MaintenanceInput struct {
	ComputadorID      *int64    `json:"computador_id" validate:"required"`
	FuncionarioID     *int64    `json:"funcionario_id" validate:"required"`
	ProblemaID        *int64    `json:"problema_id" validate:"required"`
	DataManutencao    *DateTime `json:"data_manutencao" validate:"required"`
	TipoManutencao    *string   `json:"tipo_manutencao" validate:"required"`
	DescricaoProblema *string   `json:"descricao_problema" validate:"required"`
	SolucaoAplicada   *string   `json:"solucao_aplicada" validate:"required"`
	PecasIDs          []int64   `json:"pecas_ids"`
}

// MaintenancePatch carries the keys present in an update request. PecasIDs.Set means
// the association set is replaced, even when the list is empty or null.
type MaintenancePatch struct {
	ComputadorID      *int64            `json:"computador_id"`
	FuncionarioID     *int64            `json:"funcionario_id"`
	ProblemaID        *int64            `json:"problema_id"`
	DataManutencao    *DateTime         `json:"data_manutencao"`
	TipoManutencao    *string           `json:"tipo_manutencao"`
	DescricaoProblema *string           `json:"descricao_problema"`
	SolucaoAplicada   *string           `json:"solucao_aplicada"`
	PecasIDs          Optional[[]int64] `json:"pecas_ids"`
}

func (p MaintenancePatch) Apply(m *Maintenance) {
	if p.ComputadorID != nil {
		m.ComputadorID = *p.ComputadorID
	}
	if p.FuncionarioID != nil {
		m.FuncionarioID = *p.FuncionarioID
	}
	if p.ProblemaID != nil {
		m.ProblemaID = *p.ProblemaID
	}
	if p.DataManutencao != nil {
		m.DataManutencao = *p.DataManutencao
	}
	if p.TipoManutencao != nil {
		m.TipoManutencao = *p.TipoManutencao
	}
	if p.DescricaoProblema != nil {
		m.DescricaoProblema = *p.DescricaoProblema
	}
	if p.SolucaoAplicada != nil {
		m.SolucaoAplicada = *p.SolucaoAplicada
	}
}

// MaintenanceFilter is a conjunction of optional criteria. DateFrom and DateTo are
// inclusive calendar days.
type MaintenanceFilter struct {
	ComputadorID  *int64
	FuncionarioID *int64
	Tipo          *string
	DateFrom      *Date
	DateTo        *Date
}
