package model

// Part is a replacement component. ManutencaoID is nil while the part is unassigned.
type Part struct {
	ID                int64    `json:"id"`
	NomePeca          string   `json:"nome_peca"`
	NumeroSeriePeca   *string  `json:"numero_serie_peca"`
	Fabricante        string   `json:"fabricante"`
	DataAquisicaoPeca Date     `json:"data_aquisicao_peca"`
	Custo             float64  `json:"custo"`
	ManutencaoID      *int64   `json:"manutencao_id"`
	CreatedAt         DateTime `json:"created_at"`
	UpdatedAt         DateTime `json:"updated_at"`
}

type PartInput struct {
	NomePeca          *string  `json:"nome_peca" validate:"required"`
	NumeroSeriePeca   *string  `json:"numero_serie_peca"`
	Fabricante        *string  `json:"fabricante" validate:"required"`
	DataAquisicaoPeca *Date    `json:"data_aquisicao_peca" validate:"required"`
	Custo             *float64 `json:"custo" validate:"required,gte=0"`
	ManutencaoID      *int64   `json:"manutencao_id"`
}

// PartPatch uses Optional for the nullable columns so that an explicit null clears them.
type PartPatch struct {
	NomePeca          *string          `json:"nome_peca"`
	NumeroSeriePeca   Optional[string] `json:"numero_serie_peca"`
	Fabricante        *string          `json:"fabricante"`
	DataAquisicaoPeca *Date            `json:"data_aquisicao_peca"`
	Custo             *float64         `json:"custo" validate:"omitempty,gte=0"`
	ManutencaoID      Optional[int64]  `json:"manutencao_id"`
}

func (p PartPatch) Apply(part *Part) {
	if p.NomePeca != nil {
		part.NomePeca = *p.NomePeca
	}
	if p.NumeroSeriePeca.Set {
		part.NumeroSeriePeca = p.NumeroSeriePeca.Value
	}
	if p.Fabricante != nil {
		part.Fabricante = *p.Fabricante
	}
	if p.DataAquisicaoPeca != nil {
		part.DataAquisicaoPeca = *p.DataAquisicaoPeca
	}
	if p.Custo != nil {
		part.Custo = *p.Custo
	}
	if p.ManutencaoID.Set {
		part.ManutencaoID = p.ManutencaoID.Value
	}
}
