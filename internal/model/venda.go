package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pagamento reconhecidos.
const (
	MetodoDinheiro = "dinheiro"
	MetodoCartao   = "cartao"
	MetodoPix      = "pix"
	MetodoPrazo    = "prazo"
)

// Status de pagamento de uma venda.
// "pago" é terminal; "pendente" só existe para vendas a prazo e tem uma
// única transição legal: pendente → pago, via quitação.
const (
	StatusPago     = "pago"
	StatusPendente = "pendente"
)

// Venda é o registro imutável de uma transação no balcão.
// Total sempre igual à soma de quantidade × preco_unitario dos itens no
// momento da criação; alterações posteriores de preço no catálogo não a
// afetam.
type Venda struct {
	// ID é "V" + timestamp + sufixo aleatório (ex.: V20250512123000-3fa8c1d2).
	ID              string `gorm:"type:varchar(32);primaryKey"`
	ClienteCPF      *string
	ClienteNome     *string         `gorm:"index"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MetodoPagamento string          `gorm:"type:varchar(20);not null"`
	StatusPagamento string          `gorm:"type:varchar(10);not null;default:'pago';index"`
	// DataVencimento é obrigatória quando metodo_pagamento='prazo', NULL caso contrário.
	DataVencimento *time.Time `gorm:"type:date"`
	Observacao     *string
	UsuarioID      uint `gorm:"not null"`
	CreatedAt      time.Time

	Itens   []VendaItem `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
}

// VendaItem pertence a exatamente uma Venda e captura o preço unitário no
// momento da venda, não uma referência viva ao catálogo.
type VendaItem struct {
	ID            uint            `gorm:"primaryKey"`
	VendaID       string          `gorm:"type:varchar(32);index;not null"`
	ProdutoID     uint            `gorm:"not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// TableName evita a pluralização automática do GORM (venda_items → venda_itens).
func (VendaItem) TableName() string { return "venda_itens" }
