package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func buildVendaSvc() (service.VendaService, *stubVendaRepo, *stubProdutoRepo, *stubMovimentoRepo) {
	vendaRepo := newStubVendaRepo()
	produtoRepo := newStubProdutoRepo()
	movimentoRepo := &stubMovimentoRepo{}
	svc := service.NewVendaService(vendaRepo, produtoRepo, movimentoRepo, nil, nil)
	return svc, vendaRepo, produtoRepo, movimentoRepo
}

func TestRegistrarVendaDinheiro(t *testing.T) {
	svc, vendaRepo, produtoRepo, movimentoRepo := buildVendaSvc()

	picanha := seedProduto(produtoRepo, "Picanha", 79.90, 10.5, model.TipoVendaQuilo)
	carvao := seedProduto(produtoRepo, "Carvão 5kg", 25.00, 8, model.TipoVendaUnidade)

	resp, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: picanha.ID, Quantidade: decimal.NewFromFloat(1.5), PrecoUnitario: decimal.NewFromFloat(79.90)},
			{ProdutoID: carvao.ID, Quantidade: decimal.NewFromInt(2), PrecoUnitario: decimal.NewFromFloat(25.00)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// 1.5 × 79.90 = 119.85; 2 × 25.00 = 50.00
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(169.85)), "total = %s", resp.Total)
	assert.Equal(t, model.StatusPago, resp.StatusPagamento)
	assert.Nil(t, resp.DataVencimento)
	assert.Regexp(t, `^V\d{14}-[0-9a-f]{8}$`, resp.VendaID)
	assert.Len(t, resp.Itens, 2)
	assert.Equal(t, "Picanha", resp.Itens[0].Produto)

	// Estoque baixado
	assert.True(t, produtoRepo.produtos[picanha.ID].Quantidade.Equal(decimal.NewFromFloat(9.0)))
	assert.True(t, produtoRepo.produtos[carvao.ID].Quantidade.Equal(decimal.NewFromInt(6)))

	// Movimentos negativos com antes/depois coerentes
	require.Len(t, movimentoRepo.movimentos, 2)
	mov := movimentoRepo.movimentos[0]
	assert.Equal(t, model.MovimentoVenda, mov.Tipo)
	assert.True(t, mov.Quantidade.Equal(decimal.NewFromFloat(-1.5)))
	assert.True(t, mov.EstoqueAnterior.Equal(decimal.NewFromFloat(10.5)))
	assert.True(t, mov.EstoqueNovo.Equal(decimal.NewFromFloat(9.0)))
	require.NotNil(t, mov.VendaID)
	assert.Equal(t, resp.VendaID, *mov.VendaID)

	// Venda persistida
	assert.Len(t, vendaRepo.vendas, 1)
}

func TestRegistrarVendaPrazo(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	linguica := seedProduto(produtoRepo, "Linguiça", 28.50, 5, model.TipoVendaQuilo)

	vencimento := time.Now().AddDate(0, 0, 15).Format("2006-01-02")
	resp, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		ClienteNome:     ptr("Dona Maria"),
		MetodoPagamento: model.MetodoPrazo,
		DataVencimento:  &vencimento,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: linguica.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(28.50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendente, resp.StatusPagamento)
	require.NotNil(t, resp.DataVencimento)
	assert.Equal(t, vencimento, *resp.DataVencimento)
}

func TestRegistrarVendaPrazoSemCliente(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Costela", 32.00, 5, model.TipoVendaQuilo)

	vencimento := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoPrazo,
		DataVencimento:  &vencimento,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(32.00)},
		},
	})
	assert.ErrorContains(t, err, "cliente_nome")
}

func TestRegistrarVendaPrazoSemVencimento(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Costela", 32.00, 5, model.TipoVendaQuilo)

	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		ClienteNome:     ptr("Seu João"),
		MetodoPagamento: model.MetodoPrazo,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(32.00)},
		},
	})
	assert.ErrorContains(t, err, "data_vencimento")
}

func TestRegistrarVendaVencimentoNoPassado(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Costela", 32.00, 5, model.TipoVendaQuilo)

	ontem := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		ClienteNome:     ptr("Seu João"),
		MetodoPagamento: model.MetodoPrazo,
		DataVencimento:  &ontem,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(32.00)},
		},
	})
	assert.ErrorContains(t, err, "passado")
}

func TestRegistrarVendaVencimentoEmVendaAVista(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Costela", 32.00, 5, model.TipoVendaQuilo)

	vencimento := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoPix,
		DataVencimento:  &vencimento,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(32.00)},
		},
	})
	assert.ErrorContains(t, err, "prazo")
}

func TestRegistrarVendaPrecoDivergente(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Picanha", 79.90, 10, model.TipoVendaQuilo)

	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoCartao,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(69.90)},
		},
	})
	assert.ErrorContains(t, err, "divergente")
}

func TestRegistrarVendaEstoqueInsuficiente(t *testing.T) {
	svc, _, produtoRepo, movimentoRepo := buildVendaSvc()
	p := seedProduto(produtoRepo, "Maminha", 45.00, 2, model.TipoVendaQuilo)

	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromFloat(2.5), PrecoUnitario: decimal.NewFromFloat(45.00)},
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "estoque insuficiente")
	assert.ErrorContains(t, err, "Maminha")

	// O estoque não pode ter sido tocado
	assert.True(t, produtoRepo.produtos[p.ID].Quantidade.Equal(decimal.NewFromInt(2)))
	assert.Empty(t, movimentoRepo.movimentos)
}

func TestRegistrarVendaQuantidadeFracionadaPorUnidade(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Carvão 5kg", 25.00, 10, model.TipoVendaUnidade)

	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromFloat(1.5), PrecoUnitario: decimal.NewFromFloat(25.00)},
		},
	})
	assert.ErrorContains(t, err, "inteira")
}

func TestRegistrarVendaQuantidadeComMuitasCasas(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Alcatra", 54.90, 10, model.TipoVendaQuilo)

	q, _ := decimal.NewFromString("0.1234")
	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: q, PrecoUnitario: decimal.NewFromFloat(54.90)},
		},
	})
	assert.ErrorContains(t, err, "três casas decimais")
}

func TestRegistrarVendaProdutoDuplicado(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Fraldinha", 39.90, 10, model.TipoVendaQuilo)

	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(39.90)},
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(2), PrecoUnitario: decimal.NewFromFloat(39.90)},
		},
	})
	assert.ErrorContains(t, err, "mais de uma vez")
}

func TestRegistrarVendaProdutoInexistente(t *testing.T) {
	svc, _, _, _ := buildVendaSvc()

	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: 999, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(10.00)},
		},
	})
	assert.ErrorContains(t, err, "não encontrado")
}

func TestObterVendaInexistente(t *testing.T) {
	svc, _, _, _ := buildVendaSvc()
	_, err := svc.ObterVenda(context.Background(), "V00000000000000-deadbeef")
	assert.ErrorContains(t, err, "venda não encontrada")
}

func TestListarVendasPaginacaoPadrao(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Cupim", 42.00, 50, model.TipoVendaQuilo)

	for i := 0; i < 3; i++ {
		_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
			MetodoPagamento: model.MetodoPix,
			Itens: []dto.ItemVendaRequest{
				{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(42.00)},
			},
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListarVendas(context.Background(), dto.VendaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
	assert.Len(t, resp.Data, 3)
}

// falhaCreateVendaRepo simula indisponibilidade do banco na gravação da venda.
type falhaCreateVendaRepo struct{ *stubVendaRepo }

func (r *falhaCreateVendaRepo) Create(context.Context, *gorm.DB, *model.Venda) error {
	return errors.New("driver: bad connection")
}

func TestRegistrarVendaErroDeInfraNaoEhValidacao(t *testing.T) {
	produtoRepo := newStubProdutoRepo()
	movimentoRepo := &stubMovimentoRepo{}
	vendaRepo := &falhaCreateVendaRepo{newStubVendaRepo()}
	svc := service.NewVendaService(vendaRepo, produtoRepo, movimentoRepo, nil, nil)

	p := seedProduto(produtoRepo, "Fraldinha", 45.00, 10, model.TipoVendaQuilo)
	_, err := svc.RegistrarVenda(context.Background(), 1, dto.RegistrarVendaRequest{
		MetodoPagamento: model.MetodoDinheiro,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(45.00)},
		},
	})
	require.Error(t, err)

	// Falha de persistência não pode se passar por erro de validação,
	// senão o handler devolveria o detalhe do driver como 400.
	var ve *service.ErroValidacao
	assert.False(t, errors.As(err, &ve), "erro de infra classificado como validação: %v", err)
}

func TestRegistrarVendaErrosDeValidacaoSaoTipados(t *testing.T) {
	svc, _, produtoRepo, _ := buildVendaSvc()
	p := seedProduto(produtoRepo, "Maminha", 49.90, 0.5, model.TipoVendaQuilo)

	casos := []dto.RegistrarVendaRequest{
		// preço divergente do catálogo
		{MetodoPagamento: model.MetodoDinheiro, Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromFloat(0.5), PrecoUnitario: decimal.NewFromFloat(39.90)},
		}},
		// estoque insuficiente
		{MetodoPagamento: model.MetodoDinheiro, Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromInt(2), PrecoUnitario: decimal.NewFromFloat(49.90)},
		}},
		// produto inexistente
		{MetodoPagamento: model.MetodoDinheiro, Itens: []dto.ItemVendaRequest{
			{ProdutoID: 999, Quantidade: decimal.NewFromInt(1), PrecoUnitario: decimal.NewFromFloat(10.00)},
		}},
		// prazo sem cliente
		{MetodoPagamento: model.MetodoPrazo, DataVencimento: ptr("2099-01-01"), Itens: []dto.ItemVendaRequest{
			{ProdutoID: p.ID, Quantidade: decimal.NewFromFloat(0.5), PrecoUnitario: decimal.NewFromFloat(49.90)},
		}},
	}
	for i, req := range casos {
		_, err := svc.RegistrarVenda(context.Background(), 1, req)
		require.Error(t, err, "caso %d", i)
		var ve *service.ErroValidacao
		assert.True(t, errors.As(err, &ve), "caso %d: erro não tipado: %v", i, err)
	}
}
