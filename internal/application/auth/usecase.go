package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminAccount cuenta de moderación configurada por entorno. Password vacío la desactiva.
type AdminAccount struct {
	Email    string
	Password string
}

// AuthUseCase login de empresas y del moderador.
type AuthUseCase struct {
	companyRepo repository.CompanyRepository
	admin       AdminAccount
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(companyRepo repository.CompanyRepository, admin AdminAccount, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{companyRepo: companyRepo, admin: admin, jwtCfg: jwtCfg}
}

// Login verifica credenciales y genera el JWT. Credenciales incorrectas -> domain.ErrUnauthorized
// (sin distinguir email inexistente de password incorrecto).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Identifier()))
	if email == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}

	if uc.isAdmin(email, in.Password) {
		return uc.issue(email, "", entity.RoleAdmin)
	}

	company, err := uc.companyRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(company.Email, company.ID, entity.RoleCompany)
}

func (uc *AuthUseCase) isAdmin(email, password string) bool {
	if uc.admin.Password == "" || !strings.EqualFold(email, uc.admin.Email) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(uc.admin.Password)) == 1
}

func (uc *AuthUseCase) issue(subject, companyID, role string) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, subject, companyID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}
