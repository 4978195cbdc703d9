package model

// Computer is a tracked workstation or laptop.
type Computer struct {
	ID            int64    `json:"id"`
	Marca         string   `json:"marca"`
	Modelo        string   `json:"modelo"`
	NumeroSerie   string   `json:"numero_serie"`
	DataAquisicao Date     `json:"data_aquisicao"`
	CreatedAt     DateTime `json:"created_at"`
	UpdatedAt     DateTime `json:"updated_at"`
}

// ComputerInput is the create payload. Pointer fields let validation tell a missing
// key from a zero value.
type ComputerInput struct {
	Marca         *string `json:"marca" validate:"required"`
	Modelo        *string `json:"modelo" validate:"required"`
	NumeroSerie   *string `json:"numero_serie" validate:"required"`
	DataAquisicao *Date   `json:"data_aquisicao" validate:"required"`
}

// ComputerPatch carries the keys present in an update request.
type ComputerPatch struct {
	Marca         *string `json:"marca"`
	Modelo        *string `json:"modelo"`
	NumeroSerie   *string `json:"numero_serie"`
	DataAquisicao *Date   `json:"data_aquisicao"`
}

// Apply merges the supplied fields into c.
func (p ComputerPatch) Apply(c *Computer) {
	if p.Marca != nil {
		c.Marca = *p.Marca
	}
	if p.Modelo != nil {
		c.Modelo = *p.Modelo
	}
	if p.NumeroSerie != nil {
		c.NumeroSerie = *p.NumeroSerie
	}
	if p.DataAquisicao != nil {
		c.DataAquisicao = *p.DataAquisicao
	}
}
