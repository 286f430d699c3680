package repository

import (
	"context"

	"github.com/Junior36912/Projeto-Acougue/internal/model"

	"gorm.io/gorm"
)

type MovimentoEstoqueRepository interface {
	// RegistrarTx writes a ledger entry inside the caller's transaction so the
	// movement commits or rolls back together with the stock change.
	RegistrarTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	Registrar(ctx context.Context, m *model.MovimentoEstoque) error
	ListByProduto(ctx context.Context, produtoID uint, limit int) ([]model.MovimentoEstoque, error)
}

type movimentoEstoqueRepo struct{ db *gorm.DB }

func NewMovimentoEstoqueRepository(db *gorm.DB) MovimentoEstoqueRepository {
	return &movimentoEstoqueRepo{db: db}
}

func (r *movimentoEstoqueRepo) RegistrarTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoEstoqueRepo) Registrar(ctx context.Context, m *model.MovimentoEstoque) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimentoEstoqueRepo) ListByProduto(ctx context.Context, produtoID uint, limit int) ([]model.MovimentoEstoque, error) {
	if limit <= 0 {
		limit = 50
	}
	var movimentos []model.MovimentoEstoque
	err := r.db.WithContext(ctx).
		Where("produto_id = ?", produtoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movimentos).Error
	return movimentos, err
}
