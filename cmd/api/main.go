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
	"github.com/jhoicas/FarmaPOS-api/internal/application/auth"
	"github.com/jhoicas/FarmaPOS-api/internal/application/usecase"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	"github.com/jhoicas/FarmaPOS-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/FarmaPOS-api/internal/interfaces/http"
	"github.com/jhoicas/FarmaPOS-api/pkg/config"
	"github.com/jhoicas/FarmaPOS-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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
	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)

	// Motor de autorización: grafo de tenencia + resolución de alcance +
	// evaluación de política + planificación de cascadas.
	graph := postgres.NewTenancyGraph(pool)
	resolver := authz.NewResolver(graph)
	evaluator := authz.NewEvaluator(resolver, graph)
	planner := authz.NewPlanner(graph, graph)
	executor := postgres.NewCascadeExecutor(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo, evaluator, planner, executor, log)
	branchUC := usecase.NewBranchUseCase(branchRepo, userRepo, companyRepo, evaluator, log)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo, graph, evaluator, planner, executor, log)
	shiftUC := usecase.NewShiftUseCase(shiftRepo, companyRepo, graph, evaluator, log)
	saleUC := usecase.NewSaleUseCase(saleRepo, shiftRepo, companyRepo, graph, evaluator, log)
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
		Title:    "FarmaPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		BranchUC:  branchUC,
		UserUC:    userUC,
		ShiftUC:   shiftUC,
		SaleUC:    saleUC,
		JWTSecret: cfg.JWT.Secret,
		Graph:     graph,
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
