package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.JobOfferRepository = (*JobOfferRepo)(nil)

// JobOfferRepo implementación del puerto JobOfferRepository sobre PostgreSQL (usable con pool o tx).
type JobOfferRepo struct {
	q Querier
}

// NewJobOfferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobOfferRepository(q Querier) *JobOfferRepo {
	return &JobOfferRepo{q: q}
}

const jobOfferSelect = `
	SELECT o.id, o.slug, o.title, o.description, o.company_id, o.seniority_level,
	       o.minimum_salary, o.maximum_salary, o.status, o.hiring_type, o.allow_remote,
	       o.published_at, o.created_at, o.updated_at,
	       c.name, c.logo, c.address, c.email, c.phone_number, c.created_at, c.updated_at
	FROM job_offers o
	LEFT JOIN companies c ON c.id = o.company_id`

const jobOfferOrder = ` ORDER BY o.published_at DESC NULLS LAST, o.created_at DESC`

// Create persiste la vacante y sus etiquetas. La constraint job_offers_slug_key es la
// autoridad de unicidad: su violación se traduce a domain.ErrDuplicate.
func (r *JobOfferRepo) Create(ctx context.Context, o *entity.JobOffer) error {
	query := `
		INSERT INTO job_offers (id, slug, title, description, company_id, seniority_level,
			minimum_salary, maximum_salary, status, hiring_type, allow_remote,
			published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Slug, o.Title, o.Description, nullableID(o.CompanyID), o.SeniorityLevel,
		o.MinimumSalary, o.MaximumSalary, string(o.Status), string(o.HiringType), o.AllowRemote,
		o.PublishedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert job offer (%s): %w", violatedConstraint(err), domain.ErrDuplicate)
		}
		return fmt.Errorf("insert job offer: %w", err)
	}
	for _, t := range o.Tags {
		if err := r.AddTag(ctx, o.ID, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una vacante con empresa y etiquetas.
func (r *JobOfferRepo) GetByID(ctx context.Context, id string) (*entity.JobOffer, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, jobOfferSelect+` WHERE o.id = $1`, id)
}

// GetBySlug obtiene una vacante por slug.
func (r *JobOfferRepo) GetBySlug(ctx context.Context, slug string) (*entity.JobOffer, error) {
	return r.getOne(ctx, jobOfferSelect+` WHERE o.slug = $1`, slug)
}

func (r *JobOfferRepo) getOne(ctx context.Context, query string, arg any) (*entity.JobOffer, error) {
	o, err := scanJobOffer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job offer: %w", err)
	}
	if err := r.loadTags(ctx, []*entity.JobOffer{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista vacantes según el filtro, publicadas más recientes primero.
func (r *JobOfferRepo) List(ctx context.Context, f repository.JobOfferFilter) ([]*entity.JobOffer, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.CompanyID != "" {
		if !validID(f.CompanyID) {
			return nil, nil
		}
		args = append(args, f.CompanyID)
		where = append(where, fmt.Sprintf("o.company_id = $%d", len(args)))
	}
	if f.TagID != "" {
		if !validID(f.TagID) {
			return nil, nil
		}
		args = append(args, f.TagID)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM job_offer_tags jt WHERE jt.job_offer_id = o.id AND jt.tag_id = $%d)", len(args)))
	}

	query := jobOfferSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += jobOfferOrder + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list job offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobOffer
	for rows.Next() {
		o, err := scanJobOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job offer: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update persiste los campos editables. status queda fuera: solo lo cambia Approve, así una
// edición con una lectura vieja no puede revertir la moderación.
func (r *JobOfferRepo) Update(ctx context.Context, o *entity.JobOffer) error {
	if !validID(o.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE job_offers SET title = $2, description = $3, seniority_level = $4,
			minimum_salary = $5, maximum_salary = $6, hiring_type = $7, allow_remote = $8,
			published_at = COALESCE($9, published_at), updated_at = $10
		WHERE id = $1
		RETURNING status, published_at`
	var status string
	err := r.q.QueryRow(ctx, query,
		o.ID, o.Title, o.Description, o.SeniorityLevel,
		o.MinimumSalary, o.MaximumSalary, string(o.HiringType), o.AllowRemote,
		o.PublishedAt, o.UpdatedAt,
	).Scan(&status, &o.PublishedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update job offer: %w", err)
	}
	o.Status = entity.JobOfferStatus(status)
	return nil
}

// Approve UPDATE condicional: de dos aprobaciones concurrentes solo una encuentra la fila pendiente.
func (r *JobOfferRepo) Approve(ctx context.Context, id string, at time.Time) (time.Time, error) {
	if !validID(id) {
		return time.Time{}, domain.ErrNotFound
	}
	var publishedAt time.Time
	err := r.q.QueryRow(ctx, `
		UPDATE job_offers
		SET status = $2, published_at = COALESCE(published_at, $4), updated_at = $4
		WHERE id = $1 AND status = $3
		RETURNING published_at`,
		id, string(entity.JobOfferStatusApproved), string(entity.JobOfferStatusPendingReview), at,
	).Scan(&publishedAt)
	if err == nil {
		return publishedAt, nil
	}
	if !isNoRows(err) {
		return time.Time{}, fmt.Errorf("approve job offer: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_offers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return time.Time{}, fmt.Errorf("approve job offer: %w", err)
	}
	if !exists {
		return time.Time{}, domain.ErrNotFound
	}
	return time.Time{}, fmt.Errorf("%w: vacante %s ya no está pendiente", domain.ErrInvalidTransition, id)
}

// Touch refresca updated_at tras cambiar las etiquetas.
func (r *JobOfferRepo) Touch(ctx context.Context, id string, at time.Time) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE job_offers SET updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch job offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SlugsWithPrefix devuelve base y los slugs base-N existentes.
// Los slugs solo contienen [a-z0-9-], así que base no necesita escape en LIKE.
func (r *JobOfferRepo) SlugsWithPrefix(ctx context.Context, base string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT slug FROM job_offers WHERE slug = $1 OR slug LIKE $2`, base, base+"-%")
	if err != nil {
		return nil, fmt.Errorf("slugs with prefix: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// AddTag inserta el enlace en la tabla puente (idempotente).
func (r *JobOfferRepo) AddTag(ctx context.Context, offerID, tagID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_offer_tags (job_offer_id, tag_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, offerID, tagID)
	if err != nil {
		return fmt.Errorf("add job offer tag: %w", err)
	}
	return nil
}

// RemoveTag borra el enlace (idempotente).
func (r *JobOfferRepo) RemoveTag(ctx context.Context, offerID, tagID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM job_offer_tags WHERE job_offer_id = $1 AND tag_id = $2`, offerID, tagID)
	if err != nil {
		return fmt.Errorf("remove job offer tag: %w", err)
	}
	return nil
}

// Stats conteo y promedio de salarios por estado (AVG devuelve NUMERIC -> decimal).
func (r *JobOfferRepo) Stats(ctx context.Context) ([]entity.JobOfferStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(AVG(minimum_salary), 0), COALESCE(AVG(maximum_salary), 0)
		FROM job_offers
		GROUP BY status
		ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("job offer stats: %w", err)
	}
	defer rows.Close()
	var out []entity.JobOfferStats
	for rows.Next() {
		var (
			s      entity.JobOfferStats
			status string
		)
		if err := rows.Scan(&status, &s.Total, &s.AverageMinimumSalary, &s.AverageMaximumSalary); err != nil {
			return nil, err
		}
		s.Status = entity.JobOfferStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// loadTags carga las etiquetas de todas las vacantes en una sola consulta.
func (r *JobOfferRepo) loadTags(ctx context.Context, offers []*entity.JobOffer) error {
	if len(offers) == 0 {
		return nil
	}
	ids := make([]string, 0, len(offers))
	byID := make(map[string]*entity.JobOffer, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT jt.job_offer_id, t.id, t.name
		FROM job_offer_tags jt
		JOIN tags t ON t.id = jt.tag_id
		WHERE jt.job_offer_id = ANY($1::text[]::uuid[])
		ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("load job offer tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			offerID string
			t       entity.Tag
		)
		if err := rows.Scan(&offerID, &t.ID, &t.Name); err != nil {
			return err
		}
		if o, ok := byID[offerID]; ok {
			o.AddTag(&t)
		}
	}
	return rows.Err()
}

func scanJobOffer(row pgx.Row) (*entity.JobOffer, error) {
	var (
		o                  entity.JobOffer
		companyID          *string
		status, hiringType string
		cName, cLogo       *string
		cAddress, cEmail   *string
		cPhone             *string
		cCreated, cUpdated *time.Time
	)
	err := row.Scan(
		&o.ID, &o.Slug, &o.Title, &o.Description, &companyID, &o.SeniorityLevel,
		&o.MinimumSalary, &o.MaximumSalary, &status, &hiringType, &o.AllowRemote,
		&o.PublishedAt, &o.CreatedAt, &o.UpdatedAt,
		&cName, &cLogo, &cAddress, &cEmail, &cPhone, &cCreated, &cUpdated,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.JobOfferStatus(status)
	o.HiringType = entity.HiringType(hiringType)
	if companyID != nil {
		o.SetCompany(&entity.Company{
			ID:          *companyID,
			Name:        deref(cName),
			Logo:        deref(cLogo),
			Address:     deref(cAddress),
			Email:       deref(cEmail),
			PhoneNumber: deref(cPhone),
			CreatedAt:   derefTime(cCreated),
			UpdatedAt:   derefTime(cUpdated),
		})
	}
	return &o, nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
