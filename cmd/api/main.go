package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/smart-inventory-api/docs"
	"github.com/jhoicas/smart-inventory-api/internal/application/analytics"
	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
	"github.com/jhoicas/smart-inventory-api/internal/application/sales"
	"github.com/jhoicas/smart-inventory-api/internal/application/usecase"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/kafka"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/smart-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/smart-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

// storage repositorios y runner de transacciones del driver elegido.
type storage struct {
	users    repository.UserRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	tx       ports.TxRunner
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		return &storage{
			users:    store.Users(),
			products: store.Products(),
			sales:    store.Sales(),
			tx:       store,
			close:    func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{})
		if err != nil {
			return nil, err
		}
		return &storage{
			users:    postgres.NewUserRepository(pool),
			products: postgres.NewProductRepository(pool),
			sales:    postgres.NewSaleRepository(pool),
			tx:       postgres.NewTxRunner(pool),
			close:    pool.Close,
		}, nil
	}
	return nil, errors.New("STORAGE_DRIVER desconocido: " + cfg.Storage)
}

// @title                       Smart Inventory API
// @version                     1.0
// @description                 Catálogo de productos, ledger de ventas y analítica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	// Eventos de dominio: Kafka si hay brokers, si no se descartan.
	var events ports.EventPublisher = ports.NopPublisher{}
	var producer io.Closer
	if cfg.Kafka.Enabled() {
		p, err := kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("kafka no disponible; eventos desactivados")
		} else {
			events, producer = p, p
		}
	}

	appMetrics := metrics.New()

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.Options{AllowAdminSignup: cfg.Auth.AllowAdminSignup})
	productUC := usecase.NewProductUseCase(store.products, store.tx, events, log)
	ledgerUC := sales.NewLedgerUseCase(store.tx, store.sales,
		sales.WithEvents(events),
		sales.WithRecorder(appMetrics),
		sales.WithLogger(log),
	)
	dashboardUC := analytics.NewDashboardUseCase(store.sales, store.products)
	reportUC := analytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoPDFGenerator("es-CO"), cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	// recover va dentro de métricas y log: un pánico se registra con su 500.
	app.Use(httpRouter.MetricsMiddleware(appMetrics))
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    cfg.App.Name,
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no encontrado; /docs desactivado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(appMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		LedgerUC:     ledgerUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		Policy:       auth.DefaultPolicy(),
		LoginLimiter: httpRouter.NewLoginLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst),
		JWTSecret:    cfg.JWT.Secret,
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
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar productor kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}
