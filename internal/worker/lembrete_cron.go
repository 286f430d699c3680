package worker

// lembrete_cron.go
// Background goroutine that periodically scans for overdue credit sales
// (metodo_pagamento='prazo', status='pendente', data_vencimento in the past)
// and emails a summary to every gerente. A Redis SETNX key dedupes the
// reminder so at most one summary goes out per day, no matter how many
// instances are running.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const lembreteDedupTTL = 48 * time.Hour

// LembreteCronConfig holds all dependencies for the reminder goroutine.
type LembreteCronConfig struct {
	VendaRepo   repository.VendaRepository
	UsuarioRepo repository.UsuarioRepository
	Dispatcher  *Dispatcher
	RDB         *redis.Client
	Interval    time.Duration
}

// StartLembreteCron launches a background goroutine that ticks on the
// configured interval and enqueues reminder emails for overdue fiados.
// It respects the context for graceful shutdown.
func StartLembreteCron(ctx context.Context, cfg LembreteCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("lembrete_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lembrete_cron: shutting down")
				return
			case <-ticker.C:
				processLembretes(ctx, cfg)
			}
		}
	}()
}

func processLembretes(ctx context.Context, cfg LembreteCronConfig) {
	hoje := time.Now().Format("2006-01-02")

	// One summary per day across all instances.
	dedupKey := "lembrete:resumo:" + hoje
	ok, err := cfg.RDB.SetNX(ctx, dedupKey, "1", lembreteDedupTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("lembrete_cron: dedup check failed")
		return
	}
	if !ok {
		return // already sent today
	}

	fiados, err := cfg.VendaRepo.ListFiados(ctx, dto.FiadoFilter{})
	if err != nil {
		log.Error().Err(err).Msg("lembrete_cron: failed to query fiados")
		return
	}

	agora := time.Now()
	inicioDia := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())

	var vencidas []model.Venda
	totalVencido := decimal.Zero
	for _, v := range fiados {
		if v.StatusPagamento != model.StatusPendente || v.DataVencimento == nil {
			continue
		}
		if v.DataVencimento.Before(inicioDia) {
			vencidas = append(vencidas, v)
			totalVencido = totalVencido.Add(v.Total)
		}
	}
	if len(vencidas) == 0 {
		// Nothing overdue; release the key so a fiado that expires later
		// today still triggers a reminder.
		_ = cfg.RDB.Del(ctx, dedupKey).Err()
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fiados vencidos em %s:\n\n", hoje)
	for _, v := range vencidas {
		cliente := "(sem nome)"
		if v.ClienteNome != nil {
			cliente = *v.ClienteNome
		}
		fmt.Fprintf(&b, "- %s | %s | R$ %s | venceu em %s\n",
			v.ID, cliente, v.Total.StringFixed(2), v.DataVencimento.Format("02/01/2006"))
	}
	fmt.Fprintf(&b, "\nTotal vencido: R$ %s\n", totalVencido.StringFixed(2))

	usuarios, err := cfg.UsuarioRepo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lembrete_cron: failed to list usuarios")
		return
	}

	enviados := 0
	for _, u := range usuarios {
		if u.Role != model.RoleGerente || u.Email == "" {
			continue
		}
		payload := EmailJobPayload{
			ToEmail: u.Email,
			Subject: fmt.Sprintf("Açougue: %d fiado(s) vencido(s)", len(vencidas)),
			Body:    b.String(),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("to", u.Email).Msg("lembrete_cron: enqueue failed")
			continue
		}
		enviados++
	}

	log.Info().
		Int("vencidas", len(vencidas)).
		Int("destinatarios", enviados).
		Msg("lembrete_cron: lembretes enfileirados")
}
