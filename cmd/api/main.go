package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/logitrack/logitrack-api/docs"
	"github.com/logitrack/logitrack-api/internal/application/audit"
	"github.com/logitrack/logitrack-api/internal/application/auth"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
	"github.com/logitrack/logitrack-api/internal/application/report"
	"github.com/logitrack/logitrack-api/internal/application/usecase"
	"github.com/logitrack/logitrack-api/internal/infrastructure/pdf"
	"github.com/logitrack/logitrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/logitrack/logitrack-api/internal/interfaces/http"
	"github.com/logitrack/logitrack-api/internal/metrics"
	"github.com/logitrack/logitrack-api/pkg/config"
	"github.com/logitrack/logitrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewWriter(auditRepo, log)
	engine := inventory.NewLedgerEngine(inventory.LedgerDefaults{
		MinStock: cfg.Ledger.DefaultMinStock,
		MaxStock: cfg.Ledger.DefaultMaxStock,
	})
	movementMetrics := metrics.NewMovementMetrics()

	movementUC := inventory.NewMovementUseCase(
		txRunner, inventory.NewValidator(), engine,
		movementRepo, productRepo, warehouseRepo, userRepo,
		recorder, movementMetrics, log,
	)
	ledgerUC := inventory.NewLedgerUseCase(
		txRunner, engine, ledgerRepo, warehouseRepo, productRepo, recorder,
	)
	productUC := usecase.NewProductUseCase(productRepo, recorder)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, recorder)
	reportUC := report.NewReportUseCase(
		reportRepo, productRepo, pdf.NewMarotoReportGenerator(),
		report.Config{
			DefaultThreshold: cfg.Reports.LowStockThreshold,
			MaxThreshold:     cfg.Reports.MaxThreshold,
		},
	)
	auditUC := audit.NewQueryUseCase(auditRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LogiTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:  movementUC,
		LedgerUC:    ledgerUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		ReportUC:    reportUC,
		AuditUC:     auditUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr(), log)
		metricsSrv.Start()
	}

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
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
