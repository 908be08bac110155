package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/jobboard-api/internal/application/dto"
)

// companyChecker contrato mínimo para verificar que la empresa del token sigue existiendo.
// Lo implementa *usecase.CompanyUseCase.
type companyChecker interface {
	Exists(ctx context.Context, companyID string) (bool, error)
}

// RequireCompanyAccount exige que el token pertenezca a una empresa existente.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 si el token no trae company_id.
//   - 403 si la empresa ya no existe.
//   - 503 si falla la consulta.
func RequireCompanyAccount(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		ok, err := checker.Exists(c.UserContext(), companyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "COMPANY_NOT_FOUND",
				Message: "la empresa del token no existe",
			})
		}
		return c.Next()
	}
}
