package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostJobOfferRequest formulario de publicación de vacante (JSON o form-urlencoded).
// Los salarios se convierten a entero en el binding; no se valida mínimo <= máximo.
type PostJobOfferRequest struct {
	Title          string `json:"title" form:"title" validate:"required,max=50"`
	Description    string `json:"description" form:"description" validate:"required"`
	SeniorityLevel string `json:"seniorityLevel" form:"seniorityLevel" validate:"required,max=10"`
	MinimumSalary  int    `json:"minimumSalary" form:"minimumSalary" validate:"min=0"`
	MaximumSalary  int    `json:"maximumSalary" form:"maximumSalary" validate:"min=0"`
	AllowRemote    bool   `json:"allowRemote" form:"allowRemote"`
}

// UpdateJobOfferRequest actualización parcial desde moderación. El slug nunca cambia.
type UpdateJobOfferRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=50"`
	Description    *string    `json:"description" validate:"omitempty,min=1"`
	SeniorityLevel *string    `json:"seniorityLevel" validate:"omitempty,min=1,max=10"`
	MinimumSalary  *int       `json:"minimumSalary" validate:"omitempty,min=0"`
	MaximumSalary  *int       `json:"maximumSalary" validate:"omitempty,min=0"`
	HiringType     *string    `json:"hiringType" validate:"omitempty,oneof=CLT PJ"`
	AllowRemote    *bool      `json:"allowRemote"`
	PublishedAt    *time.Time `json:"publishedAt"`
}

// AttachTagRequest asocia una etiqueta (se crea si no existe).
type AttachTagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CompanySummary empresa embebida en las vistas de vacante.
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// JobOfferListView vista "list": lo mínimo para un listado público.
type JobOfferListView struct {
	ID             string          `json:"id"`
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Company        *CompanySummary `json:"company"`
	SeniorityLevel string          `json:"seniorityLevel"`
	MinimumSalary  int             `json:"minimumSalary"`
	MaximumSalary  int             `json:"maximumSalary"`
	PublishedAt    *time.Time      `json:"publishedAt"`
	HiringType     string          `json:"hiringType"`
}

// JobOfferDetailView vista "detail": list + descripción, remoto y etiquetas.
type JobOfferDetailView struct {
	JobOfferListView
	Description string        `json:"description"`
	AllowRemote bool          `json:"allowRemote"`
	Tags        []TagResponse `json:"tags"`
}

// JobOfferAdminView vista "admin": detail + estado y timestamps.
type JobOfferAdminView struct {
	JobOfferDetailView
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobOfferListResponse lista paginada pública.
type JobOfferListResponse struct {
	Items []JobOfferListView `json:"items"`
	Page  PageResponse       `json:"page"`
}

// JobOfferAdminListResponse lista paginada para moderación.
type JobOfferAdminListResponse struct {
	Items []JobOfferAdminView `json:"items"`
	Page  PageResponse        `json:"page"`
}

// JobOfferStatsItem agregados de un estado.
type JobOfferStatsItem struct {
	Status               string          `json:"status"`
	Total                int             `json:"total"`
	AverageMinimumSalary decimal.Decimal `json:"averageMinimumSalary"`
	AverageMaximumSalary decimal.Decimal `json:"averageMaximumSalary"`
}

// JobOfferStatsResponse estadísticas para el panel de moderación.
type JobOfferStatsResponse struct {
	Items []JobOfferStatsItem `json:"items"`
}
