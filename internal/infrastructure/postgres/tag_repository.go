package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

// TagRepo implementación del puerto TagRepository sobre PostgreSQL (usable con pool o tx).
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

// FindOrCreate inserta la etiqueta si no existe y la devuelve en un solo viaje.
func (r *TagRepo) FindOrCreate(ctx context.Context, name string) (*entity.Tag, error) {
	query := `
		INSERT INTO tags (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`
	var t entity.Tag
	if err := r.q.QueryRow(ctx, query, uuid.New().String(), name).Scan(&t.ID, &t.Name); err != nil {
		return nil, fmt.Errorf("find or create tag: %w", err)
	}
	return &t, nil
}

// GetByID obtiene una etiqueta por ID.
func (r *TagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	if !validID(id) {
		return nil, nil
	}
	var t entity.Tag
	err := r.q.QueryRow(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

// List lista etiquetas por nombre.
func (r *TagRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tag, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM tags ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
