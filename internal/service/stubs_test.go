package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Produto stub ──────────────────────────────────────────────────────────────

// stubProdutoRepo is an in-memory ProdutoRepository for testing.
type stubProdutoRepo struct {
	produtos      map[uint]*model.Produto
	referenciados map[uint]bool
	nextID        uint
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{
		produtos:      make(map[uint]*model.Produto),
		referenciados: make(map[uint]bool),
	}
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.nextID++
	p.ID = r.nextID
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uint) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProdutoRepo) FindByCodigoBarras(_ context.Context, codigo string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.CodigoBarras != nil && *p.CodigoBarras == codigo {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) Delete(_ context.Context, id uint) error {
	if r.referenciados[id] {
		return repository.ErrProdutoReferenciado
	}
	delete(r.produtos, id)
	return nil
}

func (r *stubProdutoRepo) ListAbaixoMinimo(_ context.Context) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Quantidade.LessThanOrEqual(p.EstoqueMinimo) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) Categorias(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.produtos {
		if !seen[p.Categoria] {
			seen[p.Categoria] = true
			out = append(out, p.Categoria)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) BaixarEstoqueTx(_ *gorm.DB, id uint, qtd decimal.Decimal) error {
	p, ok := r.produtos[id]
	if !ok || p.Quantidade.LessThan(qtd) {
		return repository.ErrEstoqueInsuficiente
	}
	p.Quantidade = p.Quantidade.Sub(qtd)
	return nil
}

func (r *stubProdutoRepo) AjustarEstoqueTx(_ *gorm.DB, id uint, delta decimal.Decimal) error {
	p, ok := r.produtos[id]
	if !ok || p.Quantidade.Add(delta).IsNegative() {
		return repository.ErrEstoqueInsuficiente
	}
	p.Quantidade = p.Quantidade.Add(delta)
	return nil
}

func (r *stubProdutoRepo) QuantidadeTx(_ *gorm.DB, id uint) (decimal.Decimal, error) {
	p, ok := r.produtos[id]
	if !ok {
		return decimal.Zero, errors.New("not found")
	}
	return p.Quantidade, nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// seedProduto adds a product with the given price and stock, sold by weight
// when tipoVenda is "quilo".
func seedProduto(r *stubProdutoRepo, nome string, preco float64, estoque float64, tipoVenda string) *model.Produto {
	p := &model.Produto{
		Nome:          nome,
		Categoria:     "bovinos",
		Preco:         decimal.NewFromFloat(preco),
		Quantidade:    decimal.NewFromFloat(estoque),
		EstoqueMinimo: decimal.NewFromInt(1),
		TipoVenda:     tipoVenda,
	}
	_ = r.Create(context.Background(), p)
	return p
}

// ── Venda stub ────────────────────────────────────────────────────────────────

// stubVendaRepo is an in-memory VendaRepository for testing.
type stubVendaRepo struct {
	vendas map[string]*model.Venda
	ordem  []string
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[string]*model.Venda)}
}

func (r *stubVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.vendas[v.ID] = v
	r.ordem = append(r.ordem, v.ID)
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id string) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVendaRepo) List(_ context.Context, _ dto.VendaFilter) ([]model.Venda, int64, error) {
	out := make([]model.Venda, 0, len(r.ordem))
	for _, id := range r.ordem {
		out = append(out, *r.vendas[id])
	}
	return out, int64(len(out)), nil
}

func (r *stubVendaRepo) ListPeriodo(_ context.Context, _, _ string) ([]model.Venda, error) {
	out := make([]model.Venda, 0, len(r.ordem))
	for _, id := range r.ordem {
		out = append(out, *r.vendas[id])
	}
	return out, nil
}

func (r *stubVendaRepo) ListFiados(_ context.Context, filter dto.FiadoFilter) ([]model.Venda, error) {
	var out []model.Venda
	for _, id := range r.ordem {
		v := r.vendas[id]
		if v.MetodoPagamento != model.MetodoPrazo {
			continue
		}
		if filter.Cliente != "" {
			if v.ClienteNome == nil || *v.ClienteNome != filter.Cliente {
				continue
			}
		} else if filter.Letra != "" {
			if v.ClienteNome == nil || !strings.HasPrefix(strings.ToLower(*v.ClienteNome), strings.ToLower(filter.Letra)) {
				continue
			}
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVendaRepo) QuitarFiado(_ context.Context, id string) (bool, error) {
	v, ok := r.vendas[id]
	if !ok || v.MetodoPagamento != model.MetodoPrazo || v.StatusPagamento != model.StatusPendente {
		return false, nil
	}
	v.StatusPagamento = model.StatusPago
	return true, nil
}

func (r *stubVendaRepo) Anotar(_ context.Context, id string, observacao string) (bool, error) {
	v, ok := r.vendas[id]
	if !ok || v.MetodoPagamento != model.MetodoPrazo {
		return false, nil
	}
	v.Observacao = &observacao
	return true, nil
}

func (r *stubVendaRepo) ResumoDia(_ context.Context) (int64, decimal.Decimal, error) {
	var count int64
	total := decimal.Zero
	hoje := time.Now().Format("2006-01-02")
	for _, v := range r.vendas {
		if v.CreatedAt.Format("2006-01-02") == hoje {
			count++
			total = total.Add(v.Total)
		}
	}
	return count, total, nil
}

func (r *stubVendaRepo) TotaisPorMetodoDia(_ context.Context) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	hoje := time.Now().Format("2006-01-02")
	for _, v := range r.vendas {
		if v.CreatedAt.Format("2006-01-02") == hoje {
			out[v.MetodoPagamento] = out[v.MetodoPagamento].Add(v.Total)
		}
	}
	return out, nil
}

func (r *stubVendaRepo) ResumoPendentes(_ context.Context) (int64, decimal.Decimal, error) {
	var count int64
	total := decimal.Zero
	for _, v := range r.vendas {
		if v.MetodoPagamento == model.MetodoPrazo && v.StatusPagamento == model.StatusPendente {
			count++
			total = total.Add(v.Total)
		}
	}
	return count, total, nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ── MovimentoEstoque stub ─────────────────────────────────────────────────────

// stubMovimentoRepo captures ledger entries for assertion.
type stubMovimentoRepo struct {
	movimentos []model.MovimentoEstoque
}

func (r *stubMovimentoRepo) RegistrarTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubMovimentoRepo) Registrar(_ context.Context, m *model.MovimentoEstoque) error {
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubMovimentoRepo) ListByProduto(_ context.Context, produtoID uint, _ int) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if m.ProdutoID == produtoID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.MovimentoEstoqueRepository = (*stubMovimentoRepo)(nil)

// ── Usuario stub ──────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.nextID++
	u.ID = r.nextID
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	// Cópia, como o GORM devolveria uma linha recém-lida: mutações do caller
	// só chegam ao "banco" via UpdateTx.
	c := *u
	return &c, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) UpdateTx(_ *gorm.DB, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.usuarios, id)
	return nil
}

func (r *stubUsuarioRepo) CountByRoleTx(_ *gorm.DB, role string) (int64, error) {
	var count int64
	for _, u := range r.usuarios {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Fornecedor stub ───────────────────────────────────────────────────────────

type stubFornecedorRepo struct {
	fornecedores map[uint]*model.Fornecedor
	nextID       uint
}

func newStubFornecedorRepo() *stubFornecedorRepo {
	return &stubFornecedorRepo{fornecedores: make(map[uint]*model.Fornecedor)}
}

func (r *stubFornecedorRepo) Create(_ context.Context, f *model.Fornecedor) error {
	for _, existing := range r.fornecedores {
		if existing.CNPJ == f.CNPJ {
			return repository.ErrCNPJDuplicado
		}
	}
	r.nextID++
	f.ID = r.nextID
	r.fornecedores[f.ID] = f
	return nil
}

func (r *stubFornecedorRepo) FindByID(_ context.Context, id uint) (*model.Fornecedor, error) {
	f, ok := r.fornecedores[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return f, nil
}

func (r *stubFornecedorRepo) List(_ context.Context) ([]model.Fornecedor, error) {
	out := make([]model.Fornecedor, 0, len(r.fornecedores))
	for _, f := range r.fornecedores {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFornecedorRepo) Update(_ context.Context, f *model.Fornecedor) error {
	r.fornecedores[f.ID] = f
	return nil
}

func (r *stubFornecedorRepo) Delete(_ context.Context, id uint) error {
	delete(r.fornecedores, id)
	return nil
}

var _ repository.FornecedorRepository = (*stubFornecedorRepo)(nil)

// ── misc helpers ──────────────────────────────────────────────────────────────

func ptr[T any](v T) *T { return &v }
