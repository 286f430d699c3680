package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	ProdutoID     uint            `json:"produto_id"     validate:"required,min=1"`
	Quantidade    decimal.Decimal `json:"quantidade"     validate:"required,gt=0"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"required,gt=0"`
}

type RegistrarVendaRequest struct {
	ClienteCPF      *string `json:"cliente_cpf"      validate:"omitempty,max=14"`
	ClienteNome     *string `json:"cliente_nome"     validate:"omitempty,max=100"`
	MetodoPagamento string  `json:"metodo_pagamento" validate:"required,oneof=dinheiro cartao pix prazo"`
	// DataVencimento: YYYY-MM-DD, obrigatória quando metodo_pagamento='prazo'.
	DataVencimento *string            `json:"data_vencimento" validate:"omitempty,datetime=2006-01-02"`
	Observacao     *string            `json:"observacao"`
	Itens          []ItemVendaRequest `json:"itens" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ProdutoID     uint            `json:"produto_id"`
	Produto       string          `json:"produto"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type VendaResponse struct {
	Success         bool                `json:"success"`
	VendaID         string              `json:"venda_id"`
	Total           decimal.Decimal     `json:"total"`
	MetodoPagamento string              `json:"metodo_pagamento"`
	StatusPagamento string              `json:"status_pagamento"`
	DataVencimento  *string             `json:"data_vencimento,omitempty"`
	Itens           []ItemVendaResponse `json:"itens"`
	CreatedAt       string              `json:"created_at"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	DataInicio string `form:"data_inicio" validate:"omitempty,datetime=2006-01-02"`
	DataFim    string `form:"data_fim"    validate:"omitempty,datetime=2006-01-02"`
	Metodo     string `form:"metodo"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VendaListItem struct {
	ID              string              `json:"id"`
	ClienteNome     *string             `json:"cliente_nome"`
	Total           decimal.Decimal     `json:"total"`
	MetodoPagamento string              `json:"metodo_pagamento"`
	StatusPagamento string              `json:"status_pagamento"`
	Operador        string              `json:"operador"`
	Itens           []ItemVendaResponse `json:"itens"`
	CreatedAt       string              `json:"created_at"`
}

type VendaListResponse struct {
	Data  []VendaListItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
