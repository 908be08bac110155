package joboffer

import (
	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// ToListView proyecta la vacante a la vista pública de listado.
func ToListView(o *entity.JobOffer) dto.JobOfferListView {
	v := dto.JobOfferListView{
		ID:             o.ID,
		Slug:           o.Slug,
		Title:          o.Title,
		SeniorityLevel: o.SeniorityLevel,
		MinimumSalary:  o.MinimumSalary,
		MaximumSalary:  o.MaximumSalary,
		PublishedAt:    o.PublishedAt,
		HiringType:     string(o.HiringType),
	}
	if o.Company != nil {
		v.Company = &dto.CompanySummary{ID: o.Company.ID, Name: o.Company.Name, Logo: o.Company.Logo}
	}
	return v
}

// ToDetailView agrega descripción, remoto y etiquetas.
func ToDetailView(o *entity.JobOffer) dto.JobOfferDetailView {
	tags := make([]dto.TagResponse, 0, len(o.Tags))
	for _, t := range o.Tags {
		tags = append(tags, dto.TagResponse{ID: t.ID, Name: t.Name})
	}
	return dto.JobOfferDetailView{
		JobOfferListView: ToListView(o),
		Description:      o.Description,
		AllowRemote:      o.AllowRemote,
		Tags:             tags,
	}
}

// ToAdminView agrega estado y timestamps para moderación.
func ToAdminView(o *entity.JobOffer) dto.JobOfferAdminView {
	return dto.JobOfferAdminView{
		JobOfferDetailView: ToDetailView(o),
		Status:             string(o.Status),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func toListViews(list []*entity.JobOffer) []dto.JobOfferListView {
	items := make([]dto.JobOfferListView, 0, len(list))
	for _, o := range list {
		items = append(items, ToListView(o))
	}
	return items
}

func toAdminViews(list []*entity.JobOffer) []dto.JobOfferAdminView {
	items := make([]dto.JobOfferAdminView, 0, len(list))
	for _, o := range list {
		items = append(items, ToAdminView(o))
	}
	return items
}
