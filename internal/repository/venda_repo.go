package repository

import (
	"context"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id string) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	ListPeriodo(ctx context.Context, inicio, fim string) ([]model.Venda, error)

	// Fiado (vendas a prazo)
	ListFiados(ctx context.Context, filter dto.FiadoFilter) ([]model.Venda, error)
	QuitarFiado(ctx context.Context, id string) (bool, error)
	Anotar(ctx context.Context, id string, observacao string) (bool, error)

	// Dashboard aggregates
	ResumoDia(ctx context.Context) (int64, decimal.Decimal, error)
	TotaisPorMetodoDia(ctx context.Context) (map[string]decimal.Decimal, error)
	ResumoPendentes(ctx context.Context) (int64, decimal.Decimal, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id string) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens.Produto").Preload("Usuario").
		Where("id = ?", id).First(&v).Error
	return &v, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.DataInicio != "" {
		q = q.Where("DATE(created_at) >= ?", filter.DataInicio)
	}
	if filter.DataFim != "" {
		q = q.Where("DATE(created_at) <= ?", filter.DataFim)
	}
	if filter.DataInicio == "" && filter.DataFim == "" {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}
	if filter.Metodo != "" && filter.Metodo != "all" {
		q = q.Where("metodo_pagamento = ?", filter.Metodo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens.Produto").Preload("Usuario").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error

	return vendas, total, err
}

func (r *vendaRepo) ListPeriodo(ctx context.Context, inicio, fim string) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Where("DATE(created_at) BETWEEN ? AND ?", inicio, fim).
		Preload("Itens.Produto").
		Order("created_at ASC").
		Find(&vendas).Error
	return vendas, err
}

// ListFiados returns credit sales ordered with open debts first, nearest
// due date on top. Cliente takes precedence over Letra when both are set.
func (r *vendaRepo) ListFiados(ctx context.Context, filter dto.FiadoFilter) ([]model.Venda, error) {
	var vendas []model.Venda

	q := r.db.WithContext(ctx).
		Where("metodo_pagamento = ?", model.MetodoPrazo)

	if filter.Cliente != "" {
		q = q.Where("cliente_nome = ?", filter.Cliente)
	} else if filter.Letra != "" {
		q = q.Where("cliente_nome ILIKE ?", filter.Letra+"%")
	}

	err := q.Preload("Itens.Produto").
		Order("CASE WHEN status_pagamento = 'pendente' THEN 0 ELSE 1 END, data_vencimento ASC, cliente_nome ASC").
		Find(&vendas).Error
	return vendas, err
}

// QuitarFiado settles a pending credit sale. The conditional update makes the
// operation idempotent-safe under concurrency: the second caller sees zero
// rows affected and reports the sale as already settled.
func (r *vendaRepo) QuitarFiado(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("id = ? AND metodo_pagamento = ? AND status_pagamento = ?",
			id, model.MetodoPrazo, model.StatusPendente).
		Update("status_pagamento", model.StatusPago)
	return res.RowsAffected > 0, res.Error
}

func (r *vendaRepo) Anotar(ctx context.Context, id string, observacao string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("id = ? AND metodo_pagamento = ?", id, model.MetodoPrazo).
		Update("observacao", observacao)
	return res.RowsAffected > 0, res.Error
}

func (r *vendaRepo) ResumoDia(ctx context.Context) (int64, decimal.Decimal, error) {
	var row struct {
		Quantidade int64
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("COUNT(*) AS quantidade, COALESCE(SUM(total), 0) AS total").
		Where("DATE(created_at) = CURRENT_DATE").
		Scan(&row).Error
	return row.Quantidade, row.Total, err
}

func (r *vendaRepo) TotaisPorMetodoDia(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rows []struct {
		MetodoPagamento string
		Total           decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("metodo_pagamento, COALESCE(SUM(total), 0) AS total").
		Where("DATE(created_at) = CURRENT_DATE").
		Group("metodo_pagamento").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totais := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totais[row.MetodoPagamento] = row.Total
	}
	return totais, nil
}

func (r *vendaRepo) ResumoPendentes(ctx context.Context) (int64, decimal.Decimal, error) {
	var row struct {
		Quantidade int64
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("COUNT(*) AS quantidade, COALESCE(SUM(total), 0) AS total").
		Where("metodo_pagamento = ? AND status_pagamento = ?", model.MetodoPrazo, model.StatusPendente).
		Scan(&row).Error
	return row.Quantidade, row.Total, err
}
