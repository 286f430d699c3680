package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovimentoVenda        = "venda"
	MovimentoAjusteManual = "ajuste_manual"
)

// MovimentoEstoque registra cada alteração de estoque de um produto.
// Movimentos nunca são alterados ou removidos; correções geram lançamentos
// inversos.
type MovimentoEstoque struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID uint      `gorm:"not null;index"`
	Tipo      string    `gorm:"not null"`
	// Quantidade: positiva = entrada, negativa = saída.
	Quantidade      decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	EstoqueAnterior decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	EstoqueNovo     decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Motivo          string
	// VendaID aponta para a venda que originou o movimento, quando houver.
	VendaID   *string `gorm:"type:varchar(32)"`
	CreatedAt time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// TableName evita a pluralização automática do GORM.
func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
