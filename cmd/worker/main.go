package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Kardex-api/internal/application/scheduler"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

// Worker del kardex: corre el scheduler de reservas vencidas contra la misma
// base de datos que el API. El servicio de inventario se consume como librería
// desde los flujos de órdenes; este proceso solo necesita el job periódico.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if !cfg.Scheduler.Enabled {
		log.Warn().Msg("scheduler deshabilitado por configuración; nada que hacer")
		return
	}

	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	job := scheduler.NewExpireReservationsJob(
		txRunner,
		orderRepo,
		log,
		cfg.Scheduler.Interval,
		cfg.Scheduler.BatchSize,
	)

	job.Run(ctx) // bloquea hasta SIGINT/SIGTERM

	log.Info().Msg("worker detenido")
}
