package dto

// EnvironmentalDataResponse keeps the original wire field names the
// frontend depends on.
type EnvironmentalDataResponse struct {
	MaterialReciclado float64 `json:"materialReciclado"`
	ReducaoCO2        int64   `json:"reducaoCO2"`
	AguaEconomizada   int64   `json:"aguaEconomizada"`
}

type StatsResponse struct {
	TotalUsuarios   int64 `json:"totalUsuarios"`
	ColetoresAtivos int64 `json:"coletoresAtivos"`
	TotalDenuncias  int64 `json:"totalDenuncias"`
}
