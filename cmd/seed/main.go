// seed aplica las migraciones y carga los datos de demostración (empleados, bodegas, productos, stock)
// en la base configurada por las variables DB_*.
//
// Uso: go run ./cmd/seed
// Es idempotente: las filas ya existentes no se modifican.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/bodegas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/seed"
	"github.com/jhoicas/bodegas-api/pkg/config"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ds := seed.Demo()
	if err := seed.LoadPostgres(ctx, pool, ds); err != nil {
		log.Fatal().Err(err).Msg("carga de datos de demostración")
	}
	log.Info().
		Int("employees", len(ds.Employees)).
		Int("warehouses", len(ds.Warehouses)).
		Int("products", len(ds.Products)).
		Int("stock", len(ds.Stock)).
		Msg("datos de demostración cargados")
}
