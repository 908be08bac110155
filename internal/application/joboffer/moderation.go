package joboffer

import (
	"context"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

// ListForAdmin lista todas las vacantes sin compuerta de visibilidad. status vacío no filtra.
func (uc *UseCase) ListForAdmin(ctx context.Context, status string, limit, offset int) (*dto.JobOfferAdminListResponse, error) {
	f := repository.JobOfferFilter{Limit: limit, Offset: offset}
	if status != "" {
		st, err := entity.ParseJobOfferStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	list, err := uc.offers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.JobOfferAdminListResponse{
		Items: toAdminViews(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetForAdmin devuelve cualquier vacante, en cualquier estado.
func (uc *UseCase) GetForAdmin(ctx context.Context, id string) (*dto.JobOfferAdminView, error) {
	offer, err := uc.mustGet(ctx, uc.offers, id)
	if err != nil {
		return nil, err
	}
	view := ToAdminView(offer)
	return &view, nil
}

// Approve PENDING_REVIEW -> APPROVED. Fija publishedAt si aún no tiene.
// Aprobar una vacante ya aprobada devuelve domain.ErrInvalidTransition; entre dos
// aprobaciones concurrentes el repositorio deja pasar solo una.
func (uc *UseCase) Approve(ctx context.Context, id string) (*dto.JobOfferAdminView, error) {
	offer, err := uc.mustGet(ctx, uc.offers, id)
	if err != nil {
		return nil, err
	}
	if err := offer.Approve(); err != nil {
		return nil, err
	}
	now := uc.now()
	publishedAt, err := uc.offers.Approve(ctx, offer.ID, now)
	if err != nil {
		return nil, err
	}
	offer.PublishedAt = &publishedAt
	offer.Touch(now)
	uc.invalidate(ctx, offer)
	uc.log.Info().Str("job_offer_id", offer.ID).Str("slug", offer.Slug).Msg("vacante aprobada")
	view := ToAdminView(offer)
	return &view, nil
}

// Update aplica una actualización parcial. Nunca toca slug ni estado; la vista devuelta
// lleva el estado almacenado aunque otra petición haya aprobado entretanto.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateJobOfferRequest) (*dto.JobOfferAdminView, error) {
	offer, err := uc.mustGet(ctx, uc.offers, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		offer.Title = *in.Title
	}
	if in.Description != nil {
		offer.Description = *in.Description
	}
	if in.SeniorityLevel != nil {
		offer.SeniorityLevel = *in.SeniorityLevel
	}
	if in.MinimumSalary != nil {
		offer.MinimumSalary = *in.MinimumSalary
	}
	if in.MaximumSalary != nil {
		offer.MaximumSalary = *in.MaximumSalary
	}
	if in.HiringType != nil {
		ht, err := entity.ParseHiringType(*in.HiringType)
		if err != nil {
			return nil, err
		}
		offer.HiringType = ht
	}
	if in.AllowRemote != nil {
		offer.AllowRemote = *in.AllowRemote
	}
	if in.PublishedAt != nil {
		publishedAt := in.PublishedAt.UTC()
		offer.PublishedAt = &publishedAt
	}
	offer.Touch(uc.now())
	if err := uc.offers.Update(ctx, offer); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, offer)
	view := ToAdminView(offer)
	return &view, nil
}

// Stats conteo y salarios promedio por estado.
func (uc *UseCase) Stats(ctx context.Context) (*dto.JobOfferStatsResponse, error) {
	stats, err := uc.offers.Stats(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JobOfferStatsItem, 0, len(stats))
	for _, s := range stats {
		items = append(items, dto.JobOfferStatsItem{
			Status:               string(s.Status),
			Total:                s.Total,
			AverageMinimumSalary: s.AverageMinimumSalary.Round(2),
			AverageMaximumSalary: s.AverageMaximumSalary.Round(2),
		})
	}
	return &dto.JobOfferStatsResponse{Items: items}, nil
}

func (uc *UseCase) mustGet(ctx context.Context, repo repository.JobOfferRepository, id string) (*entity.JobOffer, error) {
	offer, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	return offer, nil
}
