package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/application/usecase"
	"github.com/jhoicas/bodegas-api/internal/domain/repository"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/audit"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/cache"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/memory"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/bodegas-api/internal/interfaces/http"
	"github.com/jhoicas/bodegas-api/pkg/config"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

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
		Str("db_driver", cfg.DB.Driver).
		Str("audit_sink", cfg.Audit.Sink).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner      inventory.TxRunner
		warehouseRepo repository.WarehouseRepository
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		if err := seed.LoadMemory(store, seed.Demo()); err != nil {
			log.Fatal().Err(err).Msg("carga de datos de demostración")
		}
		txRunner, warehouseRepo = store, store.Warehouses()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		txRunner, warehouseRepo = postgres.NewTxRunner(pool), postgres.NewWarehouseRepository(pool)
	}

	// La auditoría es best-effort: si el destino no arranca se registra en el log.
	var notifier *audit.Notifier
	if sink := buildAuditSink(ctx, cfg.Audit, log); sink != nil {
		notifier = audit.NewNotifier(sink, log, audit.Options{
			QueueSize:    cfg.Audit.QueueSize,
			WriteTimeout: cfg.Audit.WriteTimeout,
		})
	}
	var auditNotifier inventory.AuditNotifier
	if notifier != nil {
		auditNotifier = notifier
	}

	var warehouseCache usecase.WarehouseCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, se continúa sin caché")
			_ = client.Close()
		} else {
			warehouseCache = cache.NewRedisWarehouseCache(client, cfg.Redis.TTL)
			defer client.Close()
		}
		cancel()
	}

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, warehouseCache, log)
	stockUC := inventory.NewStockUseCase(txRunner, auditNotifier)
	inboundUC := inventory.NewInboundUseCase(txRunner, auditNotifier)
	outboundUC := inventory.NewOutboundUseCase(txRunner, auditNotifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		StockUC:     stockUC,
		InboundUC:   inboundUC,
		OutboundUC:  outboundUC,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if notifier != nil {
		if err := notifier.Close(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("cierre de auditoría con eventos pendientes")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// buildAuditSink elige el destino de auditoría; nil desactiva la auditoría.
func buildAuditSink(ctx context.Context, cfg config.AuditConfig, log *logger.Logger) audit.Sink {
	switch cfg.Sink {
	case "none":
		return nil
	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		sink, err := audit.NewMongoSink(connectCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			log.Warn().Err(err).Msg("MongoDB no disponible, auditoría al log")
			return audit.NewLogSink(log)
		}
		return sink
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			log.Warn().Msg("AUDIT_KAFKA_BROKERS vacío, auditoría al log")
			return audit.NewLogSink(log)
		}
		return audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return audit.NewLogSink(log)
	}
}
