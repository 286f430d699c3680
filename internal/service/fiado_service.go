package service

import (
	"context"
	"errors"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"

	"github.com/shopspring/decimal"
)

type FiadoService interface {
	ListarFiados(ctx context.Context, filter dto.FiadoFilter) (*dto.FiadoListResponse, error)
	Quitar(ctx context.Context, id string) (*dto.QuitarResponse, error)
	Anotar(ctx context.Context, id string, observacao string) error
}

type fiadoService struct {
	repo repository.VendaRepository
}

func NewFiadoService(repo repository.VendaRepository) FiadoService {
	return &fiadoService{repo: repo}
}

// ListarFiados returns every credit sale matching the filter, open debts
// first, plus the aggregates the caderneta screen shows.
func (s *fiadoService) ListarFiados(ctx context.Context, filter dto.FiadoFilter) (*dto.FiadoListResponse, error) {
	vendas, err := s.repo.ListFiados(ctx, filter)
	if err != nil {
		return nil, err
	}

	agora := time.Now()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())

	resp := &dto.FiadoListResponse{
		Data:          make([]dto.FiadoResponse, 0, len(vendas)),
		Total:         len(vendas),
		TotalPendente: decimal.Zero,
	}
	for _, v := range vendas {
		pendente := v.StatusPagamento == model.StatusPendente
		if pendente {
			resp.Pendentes++
			resp.TotalPendente = resp.TotalPendente.Add(v.Total)
		}

		var vencimento *string
		vencida := false
		if v.DataVencimento != nil {
			dv := v.DataVencimento.Format("2006-01-02")
			vencimento = &dv
			vencida = pendente && v.DataVencimento.Before(hoje)
		}

		resp.Data = append(resp.Data, dto.FiadoResponse{
			VendaID:         v.ID,
			ClienteCPF:      v.ClienteCPF,
			ClienteNome:     v.ClienteNome,
			Total:           v.Total,
			StatusPagamento: v.StatusPagamento,
			DataVencimento:  vencimento,
			Vencida:         vencida,
			Observacao:      v.Observacao,
			Itens:           itensToResponse(v.Itens),
			CreatedAt:       v.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// Quitar settles an open credit sale. Settlement never touches stock: the
// goods left the counter when the sale was registered.
func (s *fiadoService) Quitar(ctx context.Context, id string) (*dto.QuitarResponse, error) {
	quitado, err := s.repo.QuitarFiado(ctx, id)
	if err != nil {
		return nil, err
	}
	if quitado {
		return &dto.QuitarResponse{Quitado: true}, nil
	}

	// Zero rows affected: distinguish "never existed / not prazo" from
	// "already settled" for the caller.
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil || venda.MetodoPagamento != model.MetodoPrazo {
		return nil, errors.New("fiado não encontrado")
	}
	return &dto.QuitarResponse{Quitado: false, Detail: "venda já quitada"}, nil
}

func (s *fiadoService) Anotar(ctx context.Context, id string, observacao string) error {
	ok, err := s.repo.Anotar(ctx, id, observacao)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("fiado não encontrado")
	}
	return nil
}
