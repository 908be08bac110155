package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

// TagUseCase alta y listado de etiquetas.
type TagUseCase struct {
	repo repository.TagRepository
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(repo repository.TagRepository) *TagUseCase {
	return &TagUseCase{repo: repo}
}

// Create crea la etiqueta o devuelve la existente con el mismo nombre normalizado.
func (uc *TagUseCase) Create(ctx context.Context, in dto.CreateTagRequest) (*dto.TagResponse, error) {
	name := entity.NormalizeTagName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre de etiqueta vacío", domain.ErrInvalidInput)
	}
	tag, err := uc.repo.FindOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.TagResponse{ID: tag.ID, Name: tag.Name}, nil
}

// List lista etiquetas por nombre con paginación.
func (uc *TagUseCase) List(ctx context.Context, limit, offset int) (*dto.TagListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TagResponse{ID: t.ID, Name: t.Name})
	}
	return &dto.TagListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
