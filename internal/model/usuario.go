package model

import "time"

// Papéis de acesso.
const (
	RoleGerente     = "gerente"
	RoleFuncionario = "funcionario"
)

// Usuario armazena operadores do sistema com controle de acesso por papel.
// Invariante: sempre existe ao menos um gerente — rebaixamento ou exclusão
// do último gerente é recusado pela camada de serviço.
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'funcionario'"`
	CreatedAt    time.Time
}
