package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/jobboard-api/internal/application/auth"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	JobOfferUC *joboffer.UseCase
	CompanyUC  *usecase.CompanyUseCase
	TagUC      *usecase.TagUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	requireAuth := AuthMiddleware(deps.JWTSecret)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/login/check", authHandler.Login)

	// Job offers: lectura pública, publicación solo para cuentas de empresa
	offerHandler := NewJobOfferHandler(deps.JobOfferUC, log)
	offers := api.Group("/job-offers")
	offers.Get("/", offerHandler.List)
	offers.Post("/", requireAuth, RequireRole(entity.RoleCompany), RequireCompanyAccount(deps.CompanyUC), offerHandler.Create)
	offers.Get("/slug/:slug", offerHandler.GetBySlug)
	offers.Get("/:id/pdf", offerHandler.PDF)
	offers.Get("/:id", offerHandler.GetByID)

	// Companies (público)
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/:id/job-offers", offerHandler.ListByCompany)

	// Tags (público)
	tagHandler := NewTagHandler(deps.TagUC, log)
	tags := api.Group("/tags")
	tags.Get("/", tagHandler.List)
	tags.Get("/:id/job-offers", offerHandler.ListByTag)

	// Moderación (Bearer + rol admin). El middleware del grupo solo aplica bajo /api/admin.
	adminHandler := NewAdminHandler(deps.JobOfferUC, log)
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleAdmin))
	admin.Get("/job-offers", adminHandler.List)
	admin.Get("/job-offers/stats", adminHandler.Stats)
	admin.Get("/job-offers/:id", adminHandler.GetByID)
	admin.Put("/job-offers/:id", adminHandler.Update)
	admin.Patch("/job-offers/:id/approve", adminHandler.Approve)
	admin.Post("/job-offers/:id/tags", adminHandler.AttachTag)
	admin.Delete("/job-offers/:id/tags/:tagId", adminHandler.DetachTag)
	admin.Post("/tags", tagHandler.Create)
}
