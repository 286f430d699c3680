package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibo: renders the sale receipt PDF and
// stores it for printing / later lookup.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Junior36912/Projeto-Acougue/internal/infra"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	VendaID string `json:"venda_id"`
}

type ReciboWorker struct {
	vendas  repository.VendaRepository
	recibos *infra.ReciboPDF
}

func NewReciboWorker(vendas repository.VendaRepository, recibos *infra.ReciboPDF) *ReciboWorker {
	return &ReciboWorker{vendas: vendas, recibos: recibos}
}

func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("recibo_worker: invalid payload: %w", err)
	}
	if payload.VendaID == "" {
		log.Warn().Msg("recibo_worker: empty venda_id — skipping")
		return nil
	}

	venda, err := w.vendas.FindByID(ctx, payload.VendaID)
	if err != nil {
		return fmt.Errorf("recibo_worker: venda %s: %w", payload.VendaID, err)
	}

	path, err := w.recibos.SalvarRecibo(venda)
	if err != nil {
		return fmt.Errorf("recibo_worker: render %s: %w", payload.VendaID, err)
	}

	log.Info().Str("venda_id", payload.VendaID).Str("path", path).Msg("recibo_worker: recibo gerado")
	return nil
}
