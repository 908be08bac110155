// Package memstore implementa los puertos de repositorio en memoria para tests
// de casos de uso y de handlers HTTP (sin base de datos).
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.JobOfferRepository = (*JobOfferRepo)(nil)
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.TagRepository      = (*TagRepo)(nil)
)

type link struct{ offerID, tagID string }

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	companies map[string]entity.Company
	tags      map[string]entity.Tag
	offers    map[string]entity.JobOffer
	links     map[link]struct{}

	// DuplicateOnCreate hace que las próximas N inserciones de vacantes fallen con
	// domain.ErrDuplicate, como si otra petición hubiera ganado el slug.
	DuplicateOnCreate int
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		companies: map[string]entity.Company{},
		tags:      map[string]entity.Tag{},
		offers:    map[string]entity.JobOffer{},
		links:     map[link]struct{}{},
	}
}

// Offers repositorio de vacantes sobre el store.
func (s *Store) Offers() *JobOfferRepo { return &JobOfferRepo{s: s} }

// Companies repositorio de empresas sobre el store.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Tags repositorio de etiquetas sobre el store.
func (s *Store) Tags() *TagRepo { return &TagRepo{s: s} }

// TxRunner ejecuta fn con los repositorios del store (sin rollback).
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// ──────────────────────────────────────────────────────────────────────────────
// Companies
// ──────────────────────────────────────────────────────────────────────────────

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.companies {
		if strings.EqualFold(existing.Email, c.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *c
	cp.JobOffers = nil
	r.s.companies[c.ID] = cp
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) GetByEmail(_ context.Context, email string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if strings.EqualFold(c.Email, email) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tags
// ──────────────────────────────────────────────────────────────────────────────

// TagRepo implementa repository.TagRepository.
type TagRepo struct{ s *Store }

func (r *TagRepo) FindOrCreate(_ context.Context, name string) (*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if t.Name == name {
			cp := t
			return &cp, nil
		}
	}
	t := entity.Tag{ID: uuid.New().String(), Name: name}
	r.s.tags[t.ID] = t
	return &t, nil
}

func (r *TagRepo) GetByID(_ context.Context, id string) (*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tags[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TagRepo) List(_ context.Context, limit, offset int) ([]*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Tag, 0, len(r.s.tags))
	for _, t := range r.s.tags {
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Job offers
// ──────────────────────────────────────────────────────────────────────────────

// JobOfferRepo implementa repository.JobOfferRepository.
type JobOfferRepo struct{ s *Store }

func (r *JobOfferRepo) Create(_ context.Context, o *entity.JobOffer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.DuplicateOnCreate > 0 {
		r.s.DuplicateOnCreate--
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.offers {
		if existing.Slug == o.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.offers[o.ID] = stripped(o)
	for _, t := range o.Tags {
		r.s.links[link{o.ID, t.ID}] = struct{}{}
	}
	return nil
}

func (r *JobOfferRepo) GetByID(_ context.Context, id string) (*entity.JobOffer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.offers[id]
	if !ok {
		return nil, nil
	}
	return r.hydrate(o), nil
}

func (r *JobOfferRepo) GetBySlug(_ context.Context, slug string) (*entity.JobOffer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.offers {
		if o.Slug == slug {
			return r.hydrate(o), nil
		}
	}
	return nil, nil
}

func (r *JobOfferRepo) List(_ context.Context, f repository.JobOfferFilter) ([]*entity.JobOffer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.JobOffer, 0)
	for _, o := range r.s.offers {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CompanyID != "" && o.CompanyID != f.CompanyID {
			continue
		}
		if f.TagID != "" {
			if _, ok := r.s.links[link{o.ID, f.TagID}]; !ok {
				continue
			}
		}
		out = append(out, r.hydrate(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.PublishedAt != nil && b.PublishedAt == nil:
			return true
		case a.PublishedAt == nil && b.PublishedAt != nil:
			return false
		case a.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt):
			return a.PublishedAt.After(*b.PublishedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return page(out, f.Limit, f.Offset), nil
}

func (r *JobOfferRepo) Update(_ context.Context, o *entity.JobOffer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.offers[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := existing
	cp.Title = o.Title
	cp.Description = o.Description
	cp.SeniorityLevel = o.SeniorityLevel
	cp.MinimumSalary = o.MinimumSalary
	cp.MaximumSalary = o.MaximumSalary
	cp.HiringType = o.HiringType
	cp.AllowRemote = o.AllowRemote
	if o.PublishedAt != nil {
		t := *o.PublishedAt
		cp.PublishedAt = &t
	}
	cp.UpdatedAt = o.UpdatedAt
	r.s.offers[o.ID] = cp

	o.Status = cp.Status
	o.PublishedAt = copyTime(cp.PublishedAt)
	return nil
}

func (r *JobOfferRepo) Approve(_ context.Context, id string, at time.Time) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp, ok := r.s.offers[id]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	if cp.Status != entity.JobOfferStatusPendingReview {
		return time.Time{}, domain.ErrInvalidTransition
	}
	cp.Status = entity.JobOfferStatusApproved
	if cp.PublishedAt == nil {
		cp.PublishedAt = &at
	}
	cp.UpdatedAt = at
	r.s.offers[id] = cp
	return *cp.PublishedAt, nil
}

func (r *JobOfferRepo) Touch(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp, ok := r.s.offers[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp.UpdatedAt = at
	r.s.offers[id] = cp
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (r *JobOfferRepo) SlugsWithPrefix(_ context.Context, base string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for _, o := range r.s.offers {
		if o.Slug == base || strings.HasPrefix(o.Slug, base+"-") {
			out = append(out, o.Slug)
		}
	}
	return out, nil
}

func (r *JobOfferRepo) AddTag(_ context.Context, offerID, tagID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.links[link{offerID, tagID}] = struct{}{}
	return nil
}

func (r *JobOfferRepo) RemoveTag(_ context.Context, offerID, tagID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.links, link{offerID, tagID})
	return nil
}

func (r *JobOfferRepo) Stats(_ context.Context) ([]entity.JobOfferStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type acc struct{ n, min, max int64 }
	by := map[entity.JobOfferStatus]*acc{}
	for _, o := range r.s.offers {
		a, ok := by[o.Status]
		if !ok {
			a = &acc{}
			by[o.Status] = a
		}
		a.n++
		a.min += int64(o.MinimumSalary)
		a.max += int64(o.MaximumSalary)
	}
	out := make([]entity.JobOfferStats, 0, len(by))
	for st, a := range by {
		n := decimal.NewFromInt(a.n)
		out = append(out, entity.JobOfferStats{
			Status:               st,
			Total:                int(a.n),
			AverageMinimumSalary: decimal.NewFromInt(a.min).Div(n),
			AverageMaximumSalary: decimal.NewFromInt(a.max).Div(n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

// hydrate devuelve una copia con empresa y etiquetas cargadas. Requiere el lock.
func (r *JobOfferRepo) hydrate(o entity.JobOffer) *entity.JobOffer {
	cp := o
	cp.PublishedAt = copyTime(o.PublishedAt)
	if c, ok := r.s.companies[o.CompanyID]; ok {
		cp.Company = &c
	}
	var tags []*entity.Tag
	for l := range r.s.links {
		if l.offerID != o.ID {
			continue
		}
		if t, ok := r.s.tags[l.tagID]; ok {
			tc := t
			tags = append(tags, &tc)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	for _, t := range tags {
		cp.AddTag(t)
	}
	return &cp
}

func stripped(o *entity.JobOffer) entity.JobOffer {
	cp := *o
	cp.Company = nil
	cp.Tags = nil
	if o.PublishedAt != nil {
		p := *o.PublishedAt
		cp.PublishedAt = &p
	}
	return cp
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ──────────────────────────────────────────────────────────────────────────────
// Tx y caché
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner ejecuta fn con los repositorios del store.
type TxRunner struct{ s *Store }

func (t *TxRunner) Run(ctx context.Context, fn func(repository.JobOfferRepository, repository.TagRepository) error) error {
	return fn(t.s.Offers(), t.s.Tags())
}

// Cache caché en memoria. Los TTL se ignoran; Expire simula el vencimiento.
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
	Hits int

	// Err, si no es nil, lo devuelven todas las operaciones (Redis caído).
	Err error
}

// NewCache crea una caché vacía.
func NewCache() *Cache { return &Cache{data: map[string][]byte{}} }

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, false, c.Err
	}
	b, ok := c.data[key]
	if ok {
		c.Hits++
	}
	return b, ok, nil
}

func (c *Cache) Add(_ context.Context, key string, val []byte, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = val
	return true, nil
}

func (c *Cache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.data[key] = val
	return nil
}

// Put escribe un valor arbitrario (p.ej. una entrada corrupta).
func (c *Cache) Put(key string, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
}

// Value devuelve lo almacenado en la clave.
func (c *Cache) Value(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok
}

// Expire borra las claves como si hubiera vencido su TTL.
func (c *Cache) Expire(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
}
