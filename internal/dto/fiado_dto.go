package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

// FiadoFilter is bound from the query string of GET /v1/fiados.
// Cliente (exact match) and Letra (first-letter prefix) are mutually
// exclusive; Cliente takes precedence when both are sent.
type FiadoFilter struct {
	Cliente string `form:"cliente"`
	Letra   string `form:"letra" validate:"omitempty,len=1"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type FiadoResponse struct {
	VendaID         string              `json:"venda_id"`
	ClienteCPF      *string             `json:"cliente_cpf"`
	ClienteNome     *string             `json:"cliente_nome"`
	Total           decimal.Decimal     `json:"total"`
	StatusPagamento string              `json:"status_pagamento"`
	DataVencimento  *string             `json:"data_vencimento"`
	Vencida         bool                `json:"vencida"`
	Observacao      *string             `json:"observacao"`
	Itens           []ItemVendaResponse `json:"itens"`
	CreatedAt       string              `json:"created_at"`
}

type FiadoListResponse struct {
	Data          []FiadoResponse `json:"data"`
	Total         int             `json:"total"`
	Pendentes     int             `json:"pendentes"`
	TotalPendente decimal.Decimal `json:"total_pendente"`
}

type QuitarResponse struct {
	Quitado bool   `json:"quitado"`
	Detail  string `json:"detail,omitempty"`
}

type AnotarRequest struct {
	Observacao string `json:"observacao" validate:"required,max=500"`
}
