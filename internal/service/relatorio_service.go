package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"
)

type RelatorioService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ExportarVendasCSV(ctx context.Context, inicio, fim string) ([]byte, error)
}

type relatorioService struct {
	vendaRepo repository.VendaRepository
	produtos  ProdutoService
}

func NewRelatorioService(vendaRepo repository.VendaRepository, produtos ProdutoService) RelatorioService {
	return &relatorioService{vendaRepo: vendaRepo, produtos: produtos}
}

func (s *relatorioService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	vendasHoje, totalHoje, err := s.vendaRepo.ResumoDia(ctx)
	if err != nil {
		return nil, err
	}
	porMetodo, err := s.vendaRepo.TotaisPorMetodoDia(ctx)
	if err != nil {
		return nil, err
	}
	pendentes, totalPendente, err := s.vendaRepo.ResumoPendentes(ctx)
	if err != nil {
		return nil, err
	}
	alertas, err := s.produtos.AlertasEstoque(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		VendasHoje:      vendasHoje,
		TotalHoje:       totalHoje,
		PorMetodo:       porMetodo,
		FiadosPendentes: int(pendentes),
		TotalPendente:   totalPendente,
		AlertasEstoque:  alertas,
	}, nil
}

// ExportarVendasCSV writes one row per sale in the period, with line items
// flattened into "produto x quantidade" pairs.
func (s *relatorioService) ExportarVendasCSV(ctx context.Context, inicio, fim string) ([]byte, error) {
	if inicio == "" {
		inicio = time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	}
	if fim == "" {
		fim = time.Now().Format("2006-01-02")
	}
	vendas, err := s.vendaRepo.ListPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"venda_id", "data", "cliente", "metodo_pagamento", "status_pagamento", "total", "itens"})

	for _, v := range vendas {
		cliente := ""
		if v.ClienteNome != nil {
			cliente = *v.ClienteNome
		}
		itens := ""
		for i, item := range v.Itens {
			if i > 0 {
				itens += "; "
			}
			nome := ""
			if item.Produto != nil {
				nome = item.Produto.Nome
			}
			itens += nome + " x " + item.Quantidade.String()
		}
		_ = w.Write([]string{
			v.ID,
			v.CreatedAt.Format("2006-01-02 15:04:05"),
			cliente,
			v.MetodoPagamento,
			v.StatusPagamento,
			v.Total.StringFixed(2),
			itens,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
