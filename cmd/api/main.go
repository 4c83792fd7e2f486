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
	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stocktrack-api/internal/interfaces/http"
	"github.com/jhoicas/stocktrack-api/pkg/config"
	"github.com/jhoicas/stocktrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, productRepo, locationRepo)
	historyUC := inventory.NewHistoryUseCase(movementRepo)
	provisionUC := inventory.NewProvisionUseCase(stockRepo, productRepo, locationRepo)
	lowStockUC := inventory.NewLowStockUseCase(stockRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

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
		Title:    "StockTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ApplyMovement: applyMovementUC,
		History:       historyUC,
		Provision:     provisionUC,
		LowStock:      lowStockUC,
		ProductUC:     productUC,
		LocationUC:    locationUC,
		CategoryUC:    categoryUC,
		SupplierUC:    supplierUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
