package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecoCache é o pedaço do cliente Redis que o catálogo usa para derrubar
// o cache da consulta pública de preços. *redis.Client satisfaz.
type PrecoCache interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ChavePrecoCache é a chave usada pela consulta pública GET /v1/preco/:codigo.
func ChavePrecoCache(codigoBarras string) string {
	return "preco:" + codigoBarras
}

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Obter(ctx context.Context, id uint) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Remover(ctx context.Context, id uint) error
	AjustarEstoque(ctx context.Context, id uint, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error)
	AlertasEstoque(ctx context.Context) ([]dto.AlertaEstoqueResponse, error)
	Categorias(ctx context.Context) ([]string, error)
	Movimentos(ctx context.Context, id uint, limit int) ([]model.MovimentoEstoque, error)
}

type produtoService struct {
	repo           repository.ProdutoRepository
	fornecedorRepo repository.FornecedorRepository
	movimentoRepo  repository.MovimentoEstoqueRepository
	cache          PrecoCache
}

func NewProdutoService(
	repo repository.ProdutoRepository,
	fornecedorRepo repository.FornecedorRepository,
	movimentoRepo repository.MovimentoEstoqueRepository,
	cache PrecoCache,
) ProdutoService {
	return &produtoService{repo: repo, fornecedorRepo: fornecedorRepo, movimentoRepo: movimentoRepo, cache: cache}
}

// invalidaPrecoCache derruba as chaves da consulta pública depois que o
// catálogo muda. Melhor esforço: sem a invalidação o terminal cotaria um
// preço velho por até 4h e teria a venda recusada pelo check ao centavo.
func (s *produtoService) invalidaPrecoCache(ctx context.Context, codigos ...*string) {
	if s.cache == nil {
		return
	}
	var chaves []string
	for _, c := range codigos {
		if c != nil && *c != "" {
			chaves = append(chaves, ChavePrecoCache(*c))
		}
	}
	if len(chaves) == 0 {
		return
	}
	if err := s.cache.Del(ctx, chaves...).Err(); err != nil {
		log.Warn().Err(err).Strs("chaves", chaves).Msg("falha ao invalidar cache de preço")
	}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if req.FornecedorID != nil {
		if _, err := s.fornecedorRepo.FindByID(ctx, *req.FornecedorID); err != nil {
			return nil, errors.New("fornecedor não encontrado")
		}
	}

	validade, err := parseDataOpcional(req.DataValidade)
	if err != nil {
		return nil, err
	}

	p := &model.Produto{
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Categoria:     req.Categoria,
		Preco:         req.Preco,
		Quantidade:    req.Quantidade,
		EstoqueMinimo: req.EstoqueMinimo,
		CodigoBarras:  req.CodigoBarras,
		TipoVenda:     req.TipoVenda,
		FornecedorID:  req.FornecedorID,
		DataValidade:  validade,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Obter(ctx context.Context, id uint) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProdutoResponse, len(produtos))
	for i := range produtos {
		data[i] = produtoToResponse(&produtos[i])
	}
	return &dto.ProdutoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uint, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	codigoAntigo := p.CodigoBarras

	if req.FornecedorID != nil {
		if _, err := s.fornecedorRepo.FindByID(ctx, *req.FornecedorID); err != nil {
			return nil, errors.New("fornecedor não encontrado")
		}
		p.FornecedorID = req.FornecedorID
	}
	if req.Nome != "" {
		p.Nome = req.Nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.Categoria != "" {
		p.Categoria = req.Categoria
	}
	if req.Preco != nil {
		if req.Preco.LessThanOrEqual(decimal.Zero) {
			return nil, errors.New("preço deve ser positivo")
		}
		p.Preco = *req.Preco
	}
	if req.EstoqueMinimo != nil {
		p.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.CodigoBarras != nil {
		p.CodigoBarras = req.CodigoBarras
	}
	if req.TipoVenda != "" {
		p.TipoVenda = req.TipoVenda
	}
	if req.DataValidade != nil {
		validade, err := parseDataOpcional(req.DataValidade)
		if err != nil {
			return nil, err
		}
		p.DataValidade = validade
	}
	// Quantidade changes go through AjustarEstoque so the ledger stays whole.
	if req.Quantidade != nil && !req.Quantidade.Equal(p.Quantidade) {
		return nil, errors.New("use o ajuste de estoque para alterar a quantidade")
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	// Cobre também a troca de código de barras: a chave antiga some junto.
	s.invalidaPrecoCache(ctx, codigoAntigo, p.CodigoBarras)
	resp := produtoToResponse(p)
	return &resp, nil
}

// Remover deletes a product from the catalog. Products that already appear in
// sales are kept for history and the removal is refused.
func (s *produtoService) Remover(ctx context.Context, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("produto não encontrado")
	}
	err = s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrProdutoReferenciado) {
		return errors.New("produto possui vendas registradas e não pode ser removido")
	}
	if err == nil {
		s.invalidaPrecoCache(ctx, p.CodigoBarras)
	}
	return err
}

// AjustarEstoque applies a manual correction and records the matching ledger
// entry in the same transaction.
func (s *produtoService) AjustarEstoque(ctx context.Context, id uint, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error) {
	if req.Delta.IsZero() {
		return nil, errors.New("delta não pode ser zero")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	if err := validaQuantidade(p, req.Delta.Abs()); err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		anterior, err := s.repo.QuantidadeTx(tx, id)
		if err != nil {
			return err
		}
		if err := s.repo.AjustarEstoqueTx(tx, id, req.Delta); err != nil {
			if errors.Is(err, repository.ErrEstoqueInsuficiente) {
				return fmt.Errorf("ajuste deixaria o estoque de %s negativo: %w", p.Nome, err)
			}
			return err
		}
		mov := &model.MovimentoEstoque{
			ProdutoID:       id,
			Tipo:            model.MovimentoAjusteManual,
			Quantidade:      req.Delta,
			EstoqueAnterior: anterior,
			EstoqueNovo:     anterior.Add(req.Delta),
			Motivo:          req.Motivo,
		}
		return s.movimentoRepo.RegistrarTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Obter(ctx, id)
}

func (s *produtoService) AlertasEstoque(ctx context.Context) ([]dto.AlertaEstoqueResponse, error) {
	produtos, err := s.repo.ListAbaixoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaEstoqueResponse, len(produtos))
	for i, p := range produtos {
		alertas[i] = dto.AlertaEstoqueResponse{
			ProdutoID:     p.ID,
			Nome:          p.Nome,
			Quantidade:    p.Quantidade,
			EstoqueMinimo: p.EstoqueMinimo,
		}
	}
	return alertas, nil
}

func (s *produtoService) Categorias(ctx context.Context) ([]string, error) {
	return s.repo.Categorias(ctx)
}

func (s *produtoService) Movimentos(ctx context.Context, id uint, limit int) ([]model.MovimentoEstoque, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("produto não encontrado")
	}
	return s.movimentoRepo.ListByProduto(ctx, id, limit)
}

func parseDataOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", err)
	}
	return &t, nil
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	var fornecedor *string
	if p.Fornecedor != nil {
		fornecedor = &p.Fornecedor.Nome
	}
	var validade *string
	if p.DataValidade != nil {
		dv := p.DataValidade.Format("2006-01-02")
		validade = &dv
	}
	return dto.ProdutoResponse{
		ID:            p.ID,
		Nome:          p.Nome,
		Descricao:     p.Descricao,
		Categoria:     p.Categoria,
		Preco:         p.Preco,
		Quantidade:    p.Quantidade,
		EstoqueMinimo: p.EstoqueMinimo,
		CodigoBarras:  p.CodigoBarras,
		TipoVenda:     p.TipoVenda,
		FornecedorID:  p.FornecedorID,
		Fornecedor:    fornecedor,
		DataValidade:  validade,
	}
}
