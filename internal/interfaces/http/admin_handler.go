package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// AdminHandler moderación de vacantes (rol admin).
type AdminHandler struct {
	uc  *joboffer.UseCase
	log *logger.Logger
}

// NewAdminHandler construye el handler de moderación.
func NewAdminHandler(uc *joboffer.UseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar todas las vacantes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "PENDING_REVIEW | APPROVED"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.JobOfferAdminListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/admin/job-offers [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListForAdmin(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cualquier vacante
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.JobOfferAdminView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/job-offers/{id} [get]
func (h *AdminHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetForAdmin(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vacante (parcial; el slug no cambia)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la vacante"
// @Param        body  body  dto.UpdateJobOfferRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.JobOfferAdminView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/job-offers/{id} [put]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobOfferRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar vacante (PENDING_REVIEW -> APPROVED)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.JobOfferAdminView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/job-offers/{id}/approve [patch]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// AttachTag godoc
// @Summary      Asociar etiqueta por nombre
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID de la vacante"
// @Param        body  body  dto.AttachTagRequest  true  "Nombre de la etiqueta"
// @Success      200   {object}  dto.JobOfferAdminView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/job-offers/{id}/tags [post]
func (h *AdminHandler) AttachTag(c *fiber.Ctx) error {
	var in dto.AttachTagRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.AttachTag(c.UserContext(), c.Params("id"), in.Name)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DetachTag godoc
// @Summary      Quitar etiqueta
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string  true  "ID de la vacante"
// @Param        tagId  path  string  true  "ID de la etiqueta"
// @Success      200    {object}  dto.JobOfferAdminView
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/job-offers/{id}/tags/{tagId} [delete]
func (h *AdminHandler) DetachTag(c *fiber.Ctx) error {
	out, err := h.uc.DetachTag(c.UserContext(), c.Params("id"), c.Params("tagId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas por estado
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.JobOfferStatsResponse
// @Router       /api/admin/job-offers/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
