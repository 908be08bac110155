package joboffer

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

// AttachTag asocia la etiqueta (creándola por nombre si no existe). Repetir es no-op.
func (uc *UseCase) AttachTag(ctx context.Context, offerID, name string) (*dto.JobOfferAdminView, error) {
	name = entity.NormalizeTagName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre de etiqueta vacío", domain.ErrInvalidInput)
	}
	var offer *entity.JobOffer
	err := uc.tx.Run(ctx, func(offerRepo repository.JobOfferRepository, tagRepo repository.TagRepository) error {
		var err error
		offer, err = uc.mustGet(ctx, offerRepo, offerID)
		if err != nil {
			return err
		}
		tag, err := tagRepo.FindOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if !offer.AddTag(tag) {
			return nil
		}
		if err := offerRepo.AddTag(ctx, offer.ID, tag.ID); err != nil {
			return err
		}
		now := uc.now()
		offer.Touch(now)
		return offerRepo.Touch(ctx, offer.ID, now)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, offer)
	view := ToAdminView(offer)
	return &view, nil
}

// DetachTag quita la etiqueta de la vacante. Si no estaba asociada es no-op.
func (uc *UseCase) DetachTag(ctx context.Context, offerID, tagID string) (*dto.JobOfferAdminView, error) {
	var offer *entity.JobOffer
	err := uc.tx.Run(ctx, func(offerRepo repository.JobOfferRepository, tagRepo repository.TagRepository) error {
		var err error
		offer, err = uc.mustGet(ctx, offerRepo, offerID)
		if err != nil {
			return err
		}
		tag, err := tagRepo.GetByID(ctx, tagID)
		if err != nil {
			return err
		}
		if tag == nil {
			return domain.ErrNotFound
		}
		if !offer.RemoveTag(tag) {
			return nil
		}
		if err := offerRepo.RemoveTag(ctx, offer.ID, tag.ID); err != nil {
			return err
		}
		now := uc.now()
		offer.Touch(now)
		return offerRepo.Touch(ctx, offer.ID, now)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, offer)
	view := ToAdminView(offer)
	return &view, nil
}
