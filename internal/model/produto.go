package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venda reconhecidos para um produto.
const (
	TipoVendaQuilo   = "quilo"
	TipoVendaUnidade = "unidade"
)

// Produto representa um item do catálogo do açougue.
// Quantidade é decimal: quilogramas para tipo_venda='quilo',
// unidades inteiras para tipo_venda='unidade'.
type Produto struct {
	ID            uint   `gorm:"primaryKey"`
	Nome          string `gorm:"index;not null"`
	Descricao     *string
	Categoria     string          `gorm:"not null;index"`
	Preco         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	CodigoBarras  *string         `gorm:"uniqueIndex"`
	TipoVenda     string          `gorm:"type:varchar(10);not null;default:'unidade'"`
	// FornecedorID é referência fraca: excluir o fornecedor seta NULL aqui.
	FornecedorID *uint `gorm:"index"`
	DataValidade *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID;constraint:OnDelete:SET NULL"`
}
