package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"required,min=2,max=100"`
	Descricao     *string         `json:"descricao"`
	Categoria     string          `json:"categoria"      validate:"required,min=2,max=50"`
	Preco         decimal.Decimal `json:"preco"          validate:"required,gt=0"`
	Quantidade    decimal.Decimal `json:"quantidade"     validate:"min=0"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo" validate:"min=0"`
	CodigoBarras  *string         `json:"codigo_barras"  validate:"omitempty,max=20"`
	TipoVenda     string          `json:"tipo_venda"     validate:"required,oneof=quilo unidade"`
	FornecedorID  *uint           `json:"fornecedor_id"`
	// DataValidade: YYYY-MM-DD
	DataValidade *string `json:"data_validade" validate:"omitempty,datetime=2006-01-02"`
}

type AtualizarProdutoRequest struct {
	Nome          string           `json:"nome"           validate:"omitempty,min=2,max=100"`
	Descricao     *string          `json:"descricao"`
	Categoria     string           `json:"categoria"      validate:"omitempty,min=2,max=50"`
	Preco         *decimal.Decimal `json:"preco"          validate:"omitempty"`
	Quantidade    *decimal.Decimal `json:"quantidade"`
	EstoqueMinimo *decimal.Decimal `json:"estoque_minimo"`
	CodigoBarras  *string          `json:"codigo_barras"  validate:"omitempty,max=20"`
	TipoVenda     string           `json:"tipo_venda"     validate:"omitempty,oneof=quilo unidade"`
	FornecedorID  *uint            `json:"fornecedor_id"`
	DataValidade  *string          `json:"data_validade"  validate:"omitempty,datetime=2006-01-02"`
}

type AjustarEstoqueRequest struct {
	// Delta: positivo = entrada, negativo = saída.
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Motivo string          `json:"motivo" validate:"required,min=3,max=200"`
}

// ─── Filter / Responses ──────────────────────────────────────────────────────

type ProdutoFilter struct {
	Search    string `form:"search"`
	Categoria string `form:"categoria"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProdutoResponse struct {
	ID            uint            `json:"id"`
	Nome          string          `json:"nome"`
	Descricao     *string         `json:"descricao"`
	Categoria     string          `json:"categoria"`
	Preco         decimal.Decimal `json:"preco"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	CodigoBarras  *string         `json:"codigo_barras"`
	TipoVenda     string          `json:"tipo_venda"`
	FornecedorID  *uint           `json:"fornecedor_id"`
	Fornecedor    *string         `json:"fornecedor"`
	DataValidade  *string         `json:"data_validade"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type AlertaEstoqueResponse struct {
	ProdutoID     uint            `json:"produto_id"`
	Nome          string          `json:"nome"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
}

// ConsultaPrecoResponse is served by the public price check endpoint.
type ConsultaPrecoResponse struct {
	Nome       string          `json:"nome"`
	Preco      decimal.Decimal `json:"preco"`
	TipoVenda  string          `json:"tipo_venda"`
	Categoria  string          `json:"categoria"`
	Disponivel decimal.Decimal `json:"disponivel"`
}
