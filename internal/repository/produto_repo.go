package repository

import (
	"context"
	"errors"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uint) (*model.Produto, error)
	FindByCodigoBarras(ctx context.Context, codigo string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error
	Delete(ctx context.Context, id uint) error
	ListAbaixoMinimo(ctx context.Context) ([]model.Produto, error)
	Categorias(ctx context.Context) ([]string, error)

	// Used inside transactions — callers must pass the tx instance.
	BaixarEstoqueTx(tx *gorm.DB, id uint, qtd decimal.Decimal) error
	AjustarEstoqueTx(tx *gorm.DB, id uint, delta decimal.Decimal) error
	QuantidadeTx(tx *gorm.DB, id uint) (decimal.Decimal, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) DB() *gorm.DB { return r.db }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uint) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Fornecedor").First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByCodigoBarras(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Where("codigo_barras = ?", codigo).First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{})

	if filter.Search != "" {
		q = q.Where("nome ILIKE ? OR codigo_barras = ?", "%"+filter.Search+"%", filter.Search)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Fornecedor").Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a product. Products already referenced by sale line items
// are protected by the venda_itens FK; the violation is translated into
// ErrProdutoReferenciado so callers can refuse with a domain message.
func (r *produtoRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&model.Produto{}, id).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrProdutoReferenciado
	}
	return err
}

func (r *produtoRepo) ListAbaixoMinimo(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("quantidade <= estoque_minimo").
		Order("quantidade ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Categorias(ctx context.Context) ([]string, error) {
	var categorias []string
	err := r.db.WithContext(ctx).Model(&model.Produto{}).
		Distinct("categoria").Order("categoria ASC").Pluck("categoria", &categorias).Error
	return categorias, err
}

// BaixarEstoqueTx decrements stock atomically. The WHERE guard keeps the
// quantity from ever going negative: zero rows affected means another
// transaction consumed the stock first (or it was never enough).
func (r *produtoRepo) BaixarEstoqueTx(tx *gorm.DB, id uint, qtd decimal.Decimal) error {
	res := tx.Model(&model.Produto{}).
		Where("id = ? AND quantidade >= ?", id, qtd).
		Update("quantidade", gorm.Expr("quantidade - ?", qtd))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEstoqueInsuficiente
	}
	return nil
}

func (r *produtoRepo) QuantidadeTx(tx *gorm.DB, id uint) (decimal.Decimal, error) {
	var qtd decimal.Decimal
	err := tx.Model(&model.Produto{}).Where("id = ?", id).
		Pluck("quantidade", &qtd).Error
	return qtd, err
}

// AjustarEstoqueTx applies a signed delta with the same non-negative guard
// used by sales.
func (r *produtoRepo) AjustarEstoqueTx(tx *gorm.DB, id uint, delta decimal.Decimal) error {
	res := tx.Model(&model.Produto{}).
		Where("id = ? AND quantidade + ? >= 0", id, delta).
		Update("quantidade", gorm.Expr("quantidade + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEstoqueInsuficiente
	}
	return nil
}
