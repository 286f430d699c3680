package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"
	"github.com/Junior36912/Projeto-Acougue/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErroValidacao marca falhas que o operador do caixa pode corrigir
// (payload inválido, preço divergente, estoque insuficiente). Handlers
// devolvem o motivo como 400; qualquer outro erro é falha de
// infraestrutura e vira 500 genérico, sem vazar detalhes do banco.
type ErroValidacao struct {
	Motivo string
	causa  error
}

func (e *ErroValidacao) Error() string { return e.Motivo }
func (e *ErroValidacao) Unwrap() error { return e.causa }

func novaValidacao(format string, args ...interface{}) error {
	return &ErroValidacao{Motivo: fmt.Sprintf(format, args...)}
}

type VendaService interface {
	RegistrarVenda(ctx context.Context, usuarioID uint, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	ObterVenda(ctx context.Context, id string) (*dto.VendaListItem, error)
	ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
	GerarRecibo(ctx context.Context, id string) ([]byte, error)
}

// GeradorRecibo renders a sale receipt. Implemented by infra.ReciboPDF.
type GeradorRecibo interface {
	GerarRecibo(v *model.Venda) ([]byte, error)
}

type vendaService struct {
	repo          repository.VendaRepository
	produtoRepo   repository.ProdutoRepository
	movimentoRepo repository.MovimentoEstoqueRepository
	recibos       GeradorRecibo
	dispatcher    *worker.Dispatcher
}

func NewVendaService(
	repo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	movimentoRepo repository.MovimentoEstoqueRepository,
	recibos GeradorRecibo,
	dispatcher *worker.Dispatcher,
) VendaService {
	return &vendaService{
		repo:          repo,
		produtoRepo:   produtoRepo,
		movimentoRepo: movimentoRepo,
		recibos:       recibos,
		dispatcher:    dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// novaVendaID builds a sale identifier with a sortable timestamp prefix and a
// random suffix so two terminals never collide within the same second.
func novaVendaID(agora time.Time) string {
	return fmt.Sprintf("V%s-%s", agora.Format("20060102150405"), uuid.NewString()[:8])
}

// ── RegistrarVenda ────────────────────────────────────────────────────────────
// Full ACID transaction:
//   1. Validate payment method rules (prazo requires cliente + vencimento futuro)
//   2. For each item: resolve product, check price against catalog, check quantity shape
//   3. BEGIN TX: create venda+itens, baixar estoque com piso, registrar movimentos
//   4. COMMIT
//   5. (async) dispatch recibo job

func (s *vendaService) RegistrarVenda(ctx context.Context, usuarioID uint, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	agora := time.Now()

	// 1. Payment method rules
	var vencimento *time.Time
	status := model.StatusPago
	if req.MetodoPagamento == model.MetodoPrazo {
		if req.ClienteNome == nil || *req.ClienteNome == "" {
			return nil, novaValidacao("venda a prazo exige cliente_nome")
		}
		if req.DataVencimento == nil || *req.DataVencimento == "" {
			return nil, novaValidacao("venda a prazo exige data_vencimento")
		}
		dv, err := time.Parse("2006-01-02", *req.DataVencimento)
		if err != nil {
			return nil, novaValidacao("data_vencimento inválida: %v", err)
		}
		hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
		if dv.Before(hoje) {
			return nil, novaValidacao("data_vencimento não pode estar no passado")
		}
		vencimento = &dv
		status = model.StatusPendente
	} else if req.DataVencimento != nil && *req.DataVencimento != "" {
		return nil, novaValidacao("data_vencimento só é permitida em vendas a prazo")
	}

	// 2. Resolve products and calculate total (pre-flight, outside TX)
	type resolvedItem struct {
		produtoID  uint
		nome       string
		preco      decimal.Decimal
		quantidade decimal.Decimal
		subtotal   decimal.Decimal
	}

	var resolved []resolvedItem
	total := decimal.Zero
	vistos := make(map[uint]bool, len(req.Itens))

	for _, item := range req.Itens {
		if vistos[item.ProdutoID] {
			return nil, novaValidacao("produto %d aparece mais de uma vez na venda", item.ProdutoID)
		}
		vistos[item.ProdutoID] = true

		p, err := s.produtoRepo.FindByID(ctx, item.ProdutoID)
		if err != nil {
			return nil, novaValidacao("produto %d não encontrado", item.ProdutoID)
		}

		// The terminal sends the price it displayed; it must match the catalog
		// to the cent, otherwise the catalog changed under the operator.
		if !item.PrecoUnitario.Equal(p.Preco) {
			return nil, novaValidacao("preço de %s divergente do catálogo", p.Nome)
		}

		if err := validaQuantidade(p, item.Quantidade); err != nil {
			return nil, err
		}

		subtotal := p.Preco.Mul(item.Quantidade).Round(2)
		total = total.Add(subtotal)
		resolved = append(resolved, resolvedItem{
			produtoID:  item.ProdutoID,
			nome:       p.Nome,
			preco:      p.Preco,
			quantidade: item.Quantidade,
			subtotal:   subtotal,
		})
	}

	// 3. ACID transaction
	var venda model.Venda
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venda = model.Venda{
			ID:              novaVendaID(agora),
			ClienteCPF:      req.ClienteCPF,
			ClienteNome:     req.ClienteNome,
			Total:           total,
			MetodoPagamento: req.MetodoPagamento,
			StatusPagamento: status,
			DataVencimento:  vencimento,
			Observacao:      req.Observacao,
			UsuarioID:       usuarioID,
		}

		for _, r := range resolved {
			venda.Itens = append(venda.Itens, model.VendaItem{
				ProdutoID:     r.produtoID,
				Quantidade:    r.quantidade,
				PrecoUnitario: r.preco,
			})
		}

		if err := s.repo.Create(ctx, tx, &venda); err != nil {
			return err
		}

		// Baixar estoque. The conditional update in BaixarEstoqueTx is the real
		// floor; the quantity read before it only feeds the ledger entry.
		for _, r := range resolved {
			anterior, err := s.produtoRepo.QuantidadeTx(tx, r.produtoID)
			if err != nil {
				return err
			}

			if err := s.produtoRepo.BaixarEstoqueTx(tx, r.produtoID, r.quantidade); err != nil {
				if errors.Is(err, repository.ErrEstoqueInsuficiente) {
					return &ErroValidacao{
						Motivo: fmt.Sprintf("estoque insuficiente de %s", r.nome),
						causa:  err,
					}
				}
				return err
			}

			vendaRef := venda.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       r.produtoID,
				Tipo:            model.MovimentoVenda,
				Quantidade:      r.quantidade.Neg(),
				EstoqueAnterior: anterior,
				EstoqueNovo:     anterior.Sub(r.quantidade),
				Motivo:          fmt.Sprintf("Venda %s", venda.ID),
				VendaID:         &vendaRef,
			}
			if err := s.movimentoRepo.RegistrarTx(tx, mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Async recibo job (best-effort, fire & forget)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecibo(ctx, map[string]interface{}{
			"venda_id": venda.ID,
		})
	}

	resp := vendaToResponse(&venda)
	for i, r := range resolved {
		resp.Itens[i].Produto = r.nome
	}
	return resp, nil
}

// validaQuantidade rejects quantity shapes that the product type cannot sell:
// whole units only for tipo 'unidade', up to three decimals for 'quilo'.
func validaQuantidade(p *model.Produto, q decimal.Decimal) error {
	if q.LessThanOrEqual(decimal.Zero) {
		return novaValidacao("quantidade de %s deve ser positiva", p.Nome)
	}
	switch p.TipoVenda {
	case model.TipoVendaUnidade:
		if !q.Truncate(0).Equal(q) {
			return novaValidacao("%s é vendido por unidade; quantidade deve ser inteira", p.Nome)
		}
	case model.TipoVendaQuilo:
		if !q.Round(3).Equal(q) {
			return novaValidacao("quantidade de %s aceita no máximo três casas decimais", p.Nome)
		}
	}
	return nil
}

func (s *vendaService) ObterVenda(ctx context.Context, id string) (*dto.VendaListItem, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venda não encontrada")
	}
	return vendaToListItem(venda), nil
}

// ListarVendas returns a paginated list of sales. Default filter: today.
func (s *vendaService) ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendaListItem, 0, len(vendas))
	for _, v := range vendas {
		items = append(items, *vendaToListItem(&v))
	}
	return &dto.VendaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *vendaService) GerarRecibo(ctx context.Context, id string) ([]byte, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venda não encontrada")
	}
	return s.recibos.GerarRecibo(venda)
}

func itensToResponse(itens []model.VendaItem) []dto.ItemVendaResponse {
	out := make([]dto.ItemVendaResponse, 0, len(itens))
	for _, item := range itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		out = append(out, dto.ItemVendaResponse{
			ProdutoID:     item.ProdutoID,
			Produto:       nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Subtotal:      item.PrecoUnitario.Mul(item.Quantidade).Round(2),
		})
	}
	return out
}

func vendaToListItem(v *model.Venda) *dto.VendaListItem {
	operador := ""
	if v.Usuario != nil {
		operador = v.Usuario.Username
	}
	return &dto.VendaListItem{
		ID:              v.ID,
		ClienteNome:     v.ClienteNome,
		Total:           v.Total,
		MetodoPagamento: v.MetodoPagamento,
		StatusPagamento: v.StatusPagamento,
		Operador:        operador,
		Itens:           itensToResponse(v.Itens),
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	var vencimento *string
	if v.DataVencimento != nil {
		dv := v.DataVencimento.Format("2006-01-02")
		vencimento = &dv
	}
	return &dto.VendaResponse{
		Success:         true,
		VendaID:         v.ID,
		Total:           v.Total,
		MetodoPagamento: v.MetodoPagamento,
		StatusPagamento: v.StatusPagamento,
		DataVencimento:  vencimento,
		Itens:           itensToResponse(v.Itens),
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
