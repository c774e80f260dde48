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
	appanalytics "github.com/jobberpro/fieldservice-api/internal/application/analytics"
	"github.com/jobberpro/fieldservice-api/internal/application/auth"
	"github.com/jobberpro/fieldservice-api/internal/application/billing"
	"github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/application/usecase"
	infrapdf "github.com/jobberpro/fieldservice-api/internal/infrastructure/pdf"
	"github.com/jobberpro/fieldservice-api/internal/infrastructure/postgres"
	"github.com/jobberpro/fieldservice-api/internal/infrastructure/rediscache"
	httpRouter "github.com/jobberpro/fieldservice-api/internal/interfaces/http"
	"github.com/jobberpro/fieldservice-api/pkg/config"
	"github.com/jobberpro/fieldservice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewLowStockAlertRepository(pool)
	usageRepo := postgres.NewJobPartUsageRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo)
	jobUC := usecase.NewJobUseCase(jobRepo, clientRepo)
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, movementRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo)
	alertUC := inventory.NewAlertUseCase(alertRepo)
	partsUC := inventory.NewPartsUseCase(txRunner, jobRepo, usageRepo)
	purchaseUC := inventory.NewPurchaseOrderUseCase(txRunner, purchaseRepo, itemRepo)

	createInvoiceUC := billing.NewCreateInvoiceUseCase(invoiceRepo, clientRepo, jobRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, clientRepo, jobRepo, pdfGenerator)

	// Caché Redis del dashboard: opcional. Sin REDIS_HOST el dashboard consulta
	// siempre la base.
	var statsCache appanalytics.StatsCache
	if cfg.Redis.Enabled() {
		rdb, err := rediscache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; dashboard sin caché")
		} else {
			defer rdb.Close()
			statsCache = rediscache.NewStatsCache(rdb)
			log.Info().Str("addr", cfg.Redis.Addr()).Msg("caché Redis del dashboard habilitada")
		}
	}
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, jobRepo, statsCache)
	inventoryReportsUC := appanalytics.NewInventoryAnalyticsUseCase(analyticsRepo, movementRepo)

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
		Title:    "Jobber Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		ClientUC:           clientUC,
		JobUC:              jobUC,
		ItemUC:             itemUC,
		MovementUC:         movementUC,
		AlertUC:            alertUC,
		PartsUC:            partsUC,
		PurchaseUC:         purchaseUC,
		CreateInvoice:      createInvoiceUC,
		InvoicePDF:         invoicePDFUC,
		DashboardUC:        dashboardUC,
		InventoryReportsUC: inventoryReportsUC,
		JWTSecret:          cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
