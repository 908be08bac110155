package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// JobOfferHandler endpoints públicos de vacantes y publicación por empresas.
type JobOfferHandler struct {
	uc  *joboffer.UseCase
	log *logger.Logger
}

// NewJobOfferHandler construye el handler inyectando el servicio de vacantes.
func NewJobOfferHandler(uc *joboffer.UseCase, log *logger.Logger) *JobOfferHandler {
	return &JobOfferHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar vacantes publicadas
// @Tags         job-offers
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.JobOfferListResponse
// @Router       /api/job-offers [get]
func (h *JobOfferHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListApproved(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vacante publicada por ID
// @Tags         job-offers
// @Produce      json
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.JobOfferDetailView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/job-offers/{id} [get]
func (h *JobOfferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetApprovedByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Obtener vacante publicada por slug
// @Tags         job-offers
// @Produce      json
// @Param        slug  path  string  true  "Slug de la vacante"
// @Success      200   {object}  dto.JobOfferDetailView
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/job-offers/slug/{slug} [get]
func (h *JobOfferHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetApprovedBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Publicar vacante (queda en revisión)
// @Tags         job-offers
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PostJobOfferRequest  true  "Datos de la vacante"
// @Success      201   {object}  dto.JobOfferAdminView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/job-offers [post]
func (h *JobOfferHandler) Create(c *fiber.Ctx) error {
	var in dto.PostJobOfferRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PDF godoc
// @Summary      Volante PDF de una vacante publicada
// @Tags         job-offers
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/job-offers/{id}/pdf [get]
func (h *JobOfferHandler) PDF(c *fiber.Ctx) error {
	b, view, err := h.uc.RenderPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+view.Slug+`.pdf"`)
	return c.Send(b)
}

// ListByCompany godoc
// @Summary      Vacantes publicadas de una empresa
// @Tags         companies
// @Produce      json
// @Param        id      path   string  true   "ID de la empresa"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.JobOfferListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/job-offers [get]
func (h *JobOfferHandler) ListByCompany(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListApprovedByCompany(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListByTag godoc
// @Summary      Vacantes publicadas con una etiqueta
// @Tags         tags
// @Produce      json
// @Param        id      path   string  true   "ID de la etiqueta"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.JobOfferListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/tags/{id}/job-offers [get]
func (h *JobOfferHandler) ListByTag(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListApprovedByTag(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// pageParams limit/offset de la query con los topes de dto.PageRequest.
func pageParams(c *fiber.Ctx) (int, int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p.Limit, p.Offset
}
