package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates the numbers shown on the manager dashboard.
type DashboardResponse struct {
	VendasHoje      int64                      `json:"vendas_hoje"`
	TotalHoje       decimal.Decimal            `json:"total_hoje"`
	PorMetodo       map[string]decimal.Decimal `json:"por_metodo"`
	FiadosPendentes int                        `json:"fiados_pendentes"`
	TotalPendente   decimal.Decimal            `json:"total_pendente"`
	AlertasEstoque  []AlertaEstoqueResponse    `json:"alertas_estoque"`
}
