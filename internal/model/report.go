package model

// TypeCount is the number of maintenance records with a given type label.
type TypeCount struct {
	Tipo       string `json:"tipo"`
	Quantidade int64  `json:"quantidade"`
}

// MonthCount is the number of maintenance records in one calendar month.
type MonthCount struct {
	Ano   int   `json:"ano"`
	Mes   int   `json:"mes"`
	Total int64 `json:"total"`
}

// MaintenanceReport combines the three aggregates, read from one snapshot.
type MaintenanceReport struct {
	TotalManutencoes int64        `json:"total_manutencoes"`
	PorTipo          []TypeCount  `json:"por_tipo"`
	PorMes           []MonthCount `json:"por_mes"`
}
