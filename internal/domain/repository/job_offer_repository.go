package repository

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// JobOfferFilter criterios de listado. Campos vacíos no filtran.
type JobOfferFilter struct {
	Status    entity.JobOfferStatus
	CompanyID string
	TagID     string
	Limit     int
	Offset    int
}

// JobOfferRepository define el puerto de persistencia para JobOffer (DIP).
// Los Get devuelven (nil, nil) cuando no existe, igual que el resto de repositorios.
type JobOfferRepository interface {
	// Create persiste la vacante. Devuelve domain.ErrDuplicate si el slug ya existe.
	Create(ctx context.Context, offer *entity.JobOffer) error
	GetByID(ctx context.Context, id string) (*entity.JobOffer, error)
	GetBySlug(ctx context.Context, slug string) (*entity.JobOffer, error)
	// List ordena por published_at DESC (nulos al final) y luego created_at DESC.
	List(ctx context.Context, filter JobOfferFilter) ([]*entity.JobOffer, error)
	// Update persiste los campos editables. Nunca modifica slug, status ni created_at, y
	// published_at solo se escribe si offer.PublishedAt no es nil. Al volver, offer.Status y
	// offer.PublishedAt reflejan lo almacenado.
	Update(ctx context.Context, offer *entity.JobOffer) error
	// Approve aplica PENDING_REVIEW -> APPROVED de forma condicional y devuelve el published_at
	// resultante (at si no tenía). domain.ErrInvalidTransition si ya no estaba pendiente,
	// domain.ErrNotFound si no existe.
	Approve(ctx context.Context, id string, at time.Time) (time.Time, error)
	// Touch solo refresca updated_at.
	Touch(ctx context.Context, id string, at time.Time) error
	// SlugsWithPrefix devuelve los slugs iguales a base o con forma base-N.
	SlugsWithPrefix(ctx context.Context, base string) ([]string, error)
	AddTag(ctx context.Context, offerID, tagID string) error
	RemoveTag(ctx context.Context, offerID, tagID string) error
	Stats(ctx context.Context) ([]entity.JobOfferStats, error)
}
