package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/config"
	"github.com/Junior36912/Projeto-Acougue/internal/infra"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"
	"github.com/Junior36912/Projeto-Acougue/internal/router"
	"github.com/Junior36912/Projeto-Acougue/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker pool for async tasks (recibos, lembretes). Handlers are wired
	// here, at the composition root, with full access to the infrastructure.
	mailer := infra.NewMailer(cfg)
	recibos := infra.NewReciboPDF(cfg.ReciboStoragePath)
	dispatcher := worker.NewDispatcher(rdb)
	vendaRepo := repository.NewVendaRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Recibo: worker.NewReciboWorker(vendaRepo, recibos),
		Email:  worker.NewEmailWorker(mailer),
	})

	// Periodic scan for overdue fiados
	worker.StartLembreteCron(ctx, worker.LembreteCronConfig{
		VendaRepo:   vendaRepo,
		UsuarioRepo: usuarioRepo,
		Dispatcher:  dispatcher,
		RDB:         rdb,
		Interval:    time.Duration(cfg.LembreteIntervalHours) * time.Hour,
	})

	r := router.New(cfg, db, rdb, dispatcher, recibos)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("acougue backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
