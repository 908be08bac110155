// seed carga datos de demostración: una empresa con vacantes publicadas y pendientes.
//
// Uso: go run ./cmd/seed
// Requiere la misma configuración que cmd/api (DB_*, DATABASE_URL). La contraseña de la
// empresa demo se toma de SEED_COMPANY_PASSWORD (por defecto "dundermifflin").
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/cache"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/jobboard-api/pkg/config"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

type seedOffer struct {
	req     dto.PostJobOfferRequest
	tags    []string
	approve bool
}

var demoOffers = []seedOffer{
	{
		req: dto.PostJobOfferRequest{
			Title:          "Site Reliability Engineering Manager",
			Description:    "You will support engineers developing services and infrastructure for the paper sales platform.",
			SeniorityLevel: "Senior",
			MinimumSalary:  4000,
			MaximumSalary:  4500,
			AllowRemote:    true,
		},
		tags:    []string{"sre", "kubernetes"},
		approve: true,
	},
	{
		req: dto.PostJobOfferRequest{
			Title:          "PHP Developer",
			Description:    "Maintain the legacy ordering system while we migrate it.",
			SeniorityLevel: "Mid",
			MinimumSalary:  3000,
			MaximumSalary:  3500,
		},
		tags:    []string{"php"},
		approve: true,
	},
	{
		req: dto.PostJobOfferRequest{
			Title:          "Database Reliability Engineer",
			Description:    "Join the DRE team taking care of our PostgreSQL fleet.",
			SeniorityLevel: "Mid-Senior",
			MinimumSalary:  3000,
			MaximumSalary:  3200,
			AllowRemote:    true,
		},
		tags: []string{"postgresql"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	offerUC := joboffer.NewUseCase(joboffer.Deps{
		Offers:    postgres.NewJobOfferRepository(pool),
		Companies: companyRepo,
		Tags:      postgres.NewTagRepository(pool),
		Tx:        postgres.NewTxRunner(pool),
		Cache:     cache.NoopCache{},
		Logger:    log,
	})

	password := os.Getenv("SEED_COMPANY_PASSWORD")
	if password == "" {
		password = "dundermifflin"
	}
	company, err := companyUC.Create(ctx, dto.CreateCompanyRequest{
		Name:        "Dunder Mifflin",
		Logo:        "https://upload.wikimedia.org/wikipedia/commons/9/9c/Dunder_Mifflin%2C_Inc.svg",
		Address:     "1725 Slough Avenue, Scranton, PA",
		Email:       "rh@dundermifflin.com",
		Password:    password,
		PhoneNumber: "+1 570 555 0100",
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		log.Info().Msg("datos demo ya cargados, nada que hacer")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear empresa demo")
	}
	log.Info().Str("company_id", company.ID).Str("email", company.Email).Msg("empresa demo creada")

	for _, so := range demoOffers {
		offer, err := offerUC.Create(ctx, company.ID, so.req)
		if err != nil {
			log.Fatal().Err(err).Str("title", so.req.Title).Msg("crear vacante demo")
		}
		for _, tag := range so.tags {
			if _, err := offerUC.AttachTag(ctx, offer.ID, tag); err != nil {
				log.Fatal().Err(err).Str("tag", tag).Msg("asociar etiqueta")
			}
		}
		if so.approve {
			if _, err := offerUC.Approve(ctx, offer.ID); err != nil {
				log.Fatal().Err(err).Str("id", offer.ID).Msg("aprobar vacante demo")
			}
		}
		log.Info().Str("slug", offer.Slug).Bool("approved", so.approve).Msg("vacante demo creada")
	}
}
