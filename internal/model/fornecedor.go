package model

import "time"

// Fornecedor cadastra os fornecedores do açougue.
type Fornecedor struct {
	ID        uint   `gorm:"primaryKey"`
	Nome      string `gorm:"not null;index"`
	CNPJ      string `gorm:"uniqueIndex;not null;column:cnpj"`
	Contato   string `gorm:"not null"`
	Endereco  *string
	CriadoEm  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time
}

// TableName mantém o plural em português usado pelo esquema original.
func (Fornecedor) TableName() string { return "fornecedores" }
