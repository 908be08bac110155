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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/jobboard-api/docs"
	"github.com/jhoicas/jobboard-api/internal/application/auth"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/jobboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/jobboard-api/internal/interfaces/http"
	"github.com/jhoicas/jobboard-api/pkg/config"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Caché de lectura: sin REDIS_URL se usa la implementación no-op.
	var offerCache joboffer.Cache = cache.NoopCache{}
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		redisCache = cache.NewRedisCache(client)
		offerCache = redisCache
	} else {
		log.Warn().Msg("REDIS_URL vacío, caché de vacantes desactivada")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	offerRepo := postgres.NewJobOfferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	offerUC := joboffer.NewUseCase(joboffer.Deps{
		Offers:    offerRepo,
		Companies: companyRepo,
		Tags:      tagRepo,
		Tx:        txRunner,
		Cache:     offerCache,
		PDF:       infrapdf.NewMarotoPDFGenerator(),
		Logger:    log,
		Config: joboffer.Config{
			CacheTTL:      cfg.Redis.TTL(),
			PublicBaseURL: cfg.App.PublicBaseURL,
		},
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	tagUC := usecase.NewTagUseCase(tagRepo)
	authUC := auth.NewAuthUseCase(companyRepo,
		auth.AdminAccount{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD vacío, login de moderación desactivado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Job Board API",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		hctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		checks := fiber.Map{"db": "ok", "cache": "disabled"}
		status := fiber.StatusOK
		if err := pool.Ping(hctx); err != nil {
			checks["db"] = err.Error()
			status = fiber.StatusServiceUnavailable
		}
		if redisCache != nil {
			checks["cache"] = "ok"
			if err := redisCache.Health(hctx); err != nil {
				// la caché es opcional: se informa sin marcar el servicio caído
				checks["cache"] = err.Error()
			}
		}
		return c.Status(status).JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "checks": checks})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		JobOfferUC: offerUC,
		CompanyUC:  companyUC,
		TagUC:      tagUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
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
