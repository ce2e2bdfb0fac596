package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-ledger/docs"
	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// @title        Stock Ledger API
// @version      1.0
// @description  Catálogo, ventas, gastos y diario de stock.
// @BasePath     /
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
		Str("backend", cfg.Ledger.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backend de persistencia")
	}
	defer backend.Close()

	snapshotCache, closeCache, err := bootstrap.OpenCache(ctx, cfg.Redis, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer closeCache()
	if snapshotCache == nil {
		log.Info().Msg("caché de snapshots deshabilitado (REDIS_ADDR vacío)")
	}

	svc := bootstrap.NewServices(backend, snapshotCache, log)

	// La conciliación al arrancar solo reporta; nunca bloquea el inicio
	if cfg.Ledger.ReconcileOnStart {
		if _, err := svc.Reconciler.Run(ctx); err != nil {
			log.Error().Err(err).Msg("conciliación inicial")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if specPath, err := writeSwaggerSpec(); err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	} else {
		defer os.Remove(specPath)
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specPath,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  svc.Products,
		StockUC:    svc.Stock,
		SaleUC:     svc.Sales,
		ExpenseUC:  svc.Expenses,
		UserUC:     svc.Users,
		SnapshotUC: svc.Snapshots,
		Reconciler: svc.Reconciler,
		JWTSecret:  cfg.JWT.Secret,
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

// writeSwaggerSpec vuelca la especificación registrada por swag a un archivo temporal
// para que el middleware de swagger la sirva.
func writeSwaggerSpec() (string, error) {
	path := filepath.Join(os.TempDir(), "stock-ledger-swagger.json")
	if err := os.WriteFile(path, []byte(docs.SwaggerInfo.ReadDoc()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
