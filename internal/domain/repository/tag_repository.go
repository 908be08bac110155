package repository

import (
	"context"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// TagRepository define el puerto de persistencia para Tag (DIP).
type TagRepository interface {
	// FindOrCreate devuelve la etiqueta con ese nombre normalizado, creándola si no existe.
	FindOrCreate(ctx context.Context, name string) (*entity.Tag, error)
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tag, error)
}
