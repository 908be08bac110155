package joboffer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/pkg/logger"
	"github.com/jhoicas/jobboard-api/pkg/slug"
)

// maxSlugAttempts reintentos de inserción cuando otra petición ganó el mismo slug.
const maxSlugAttempts = 5

// invalidationHold tiempo que una clave invalidada rechaza nuevas escrituras de lectores.
const invalidationHold = 10 * time.Second

// invalidatedMarker valor que ocupa la clave tras una mutación; no es JSON válido.
var invalidatedMarker = []byte("\x00invalidated")

// Config parámetros del servicio.
type Config struct {
	CacheTTL      time.Duration
	PublicBaseURL string // p.ej. https://jobs.example.com (sin barra final)
}

// Deps dependencias del servicio. Cache y PDF son opcionales.
type Deps struct {
	Offers    repository.JobOfferRepository
	Companies repository.CompanyRepository
	Tags      repository.TagRepository
	Tx        TxRunner
	Cache     Cache
	PDF       PDFGenerator
	Logger    *logger.Logger
	Config    Config
}

// UseCase servicio de vacantes: consultas públicas, publicación, moderación y etiquetas.
type UseCase struct {
	offers    repository.JobOfferRepository
	companies repository.CompanyRepository
	tags      repository.TagRepository
	tx        TxRunner
	cache     Cache
	pdf       PDFGenerator
	log       *logger.Logger
	cfg       Config

	now   func() time.Time
	newID func() string
}

// NewUseCase construye el servicio.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		offers:    d.Offers,
		companies: d.Companies,
		tags:      d.Tags,
		tx:        d.Tx,
		cache:     d.Cache,
		pdf:       d.PDF,
		log:       d.Logger,
		cfg:       d.Config,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// SetClock reemplaza el reloj (tests).
func (uc *UseCase) SetClock(now func() time.Time) { uc.now = now }

// ListApproved lista las vacantes publicadas, las más recientes primero.
func (uc *UseCase) ListApproved(ctx context.Context, limit, offset int) (*dto.JobOfferListResponse, error) {
	return uc.listApproved(ctx, repository.JobOfferFilter{Limit: limit, Offset: offset})
}

// ListApprovedByCompany lista las vacantes publicadas de una empresa.
func (uc *UseCase) ListApprovedByCompany(ctx context.Context, companyID string, limit, offset int) (*dto.JobOfferListResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.listApproved(ctx, repository.JobOfferFilter{CompanyID: company.ID, Limit: limit, Offset: offset})
}

// ListApprovedByTag lista las vacantes publicadas que llevan la etiqueta.
func (uc *UseCase) ListApprovedByTag(ctx context.Context, tagID string, limit, offset int) (*dto.JobOfferListResponse, error) {
	tag, err := uc.tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	return uc.listApproved(ctx, repository.JobOfferFilter{TagID: tag.ID, Limit: limit, Offset: offset})
}

func (uc *UseCase) listApproved(ctx context.Context, f repository.JobOfferFilter) (*dto.JobOfferListResponse, error) {
	f.Status = entity.JobOfferStatusApproved
	list, err := uc.offers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.JobOfferListResponse{
		Items: toListViews(list),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// GetApprovedByID devuelve la vacante solo si está APPROVED.
// Inexistente y no aprobada son indistinguibles: ambas dan domain.ErrNotFound.
func (uc *UseCase) GetApprovedByID(ctx context.Context, id string) (*dto.JobOfferDetailView, error) {
	return uc.getApproved(ctx, idCacheKey(id), func() (*entity.JobOffer, error) {
		return uc.offers.GetByID(ctx, id)
	})
}

// GetApprovedBySlug igual que GetApprovedByID pero por slug.
func (uc *UseCase) GetApprovedBySlug(ctx context.Context, s string) (*dto.JobOfferDetailView, error) {
	return uc.getApproved(ctx, slugCacheKey(s), func() (*entity.JobOffer, error) {
		return uc.offers.GetBySlug(ctx, s)
	})
}

func (uc *UseCase) getApproved(ctx context.Context, key string, load func() (*entity.JobOffer, error)) (*dto.JobOfferDetailView, error) {
	if view := uc.cacheGet(ctx, key); view != nil {
		return view, nil
	}
	offer, err := load()
	if err != nil {
		return nil, err
	}
	if offer == nil || offer.Status != entity.JobOfferStatusApproved {
		return nil, domain.ErrNotFound
	}
	view := ToDetailView(offer)
	uc.cacheSet(ctx, &view)
	return &view, nil
}

// Create publica una vacante para la empresa autenticada. Siempre queda en PENDING_REVIEW.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.PostJobOfferRequest) (*dto.JobOfferAdminView, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	offer := entity.NewJobOfferFromSubmission(entity.JobOfferSubmission{
		Title:          in.Title,
		Description:    in.Description,
		SeniorityLevel: in.SeniorityLevel,
		MinimumSalary:  in.MinimumSalary,
		MaximumSalary:  in.MaximumSalary,
		AllowRemote:    in.AllowRemote,
	}, company, uc.now())
	offer.ID = uc.newID()

	if err := uc.insertWithUniqueSlug(ctx, offer); err != nil {
		return nil, err
	}
	uc.log.Info().Str("job_offer_id", offer.ID).Str("slug", offer.Slug).Str("company_id", company.ID).Msg("vacante creada, pendiente de revisión")
	view := ToAdminView(offer)
	return &view, nil
}

// insertWithUniqueSlug asigna el primer slug libre e inserta. La constraint única es la
// autoridad: si otra inserción concurrente tomó el candidato se recalcula y reintenta.
func (uc *UseCase) insertWithUniqueSlug(ctx context.Context, offer *entity.JobOffer) error {
	base := slug.Make(offer.Title, entity.JobOfferSlugMaxLen)
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		taken, err := uc.offers.SlugsWithPrefix(ctx, base)
		if err != nil {
			return err
		}
		offer.Slug = slug.NextFree(base, taken, entity.JobOfferSlugMaxLen)

		err = uc.offers.Create(ctx, offer)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		uc.log.Warn().Str("slug", offer.Slug).Int("attempt", attempt).Msg("slug ocupado, reintentando")
	}
	return fmt.Errorf("slug %q tras %d intentos: %w", base, maxSlugAttempts, domain.ErrConflict)
}

// RenderPDF genera el volante de una vacante publicada.
func (uc *UseCase) RenderPDF(ctx context.Context, id string) ([]byte, *dto.JobOfferDetailView, error) {
	if uc.pdf == nil {
		return nil, nil, fmt.Errorf("generador PDF no configurado")
	}
	view, err := uc.GetApprovedByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := uc.pdf.GenerateJobOfferPDF(ctx, view, uc.PublicURL(view.Slug))
	if err != nil {
		return nil, nil, fmt.Errorf("generar PDF vacante %s: %w", id, err)
	}
	return b, view, nil
}

// PublicURL URL pública de la vacante por slug.
func (uc *UseCase) PublicURL(s string) string {
	return uc.cfg.PublicBaseURL + "/api/job-offers/slug/" + s
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché de lectura
// ──────────────────────────────────────────────────────────────────────────────

func idCacheKey(id string) string  { return "joboffer:id:" + id }
func slugCacheKey(s string) string { return "joboffer:slug:" + s }

func (uc *UseCase) cacheGet(ctx context.Context, key string) *dto.JobOfferDetailView {
	if uc.cache == nil {
		return nil
	}
	b, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache get")
		return nil
	}
	if !ok || bytes.Equal(b, invalidatedMarker) {
		return nil
	}
	var view dto.JobOfferDetailView
	if err := json.Unmarshal(b, &view); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache entrada corrupta")
		return nil
	}
	return &view
}

// cacheSet solo escribe claves libres: si una mutación dejó la marca de invalidación
// después de que este lector cargó la vacante, la vista vieja se descarta.
func (uc *UseCase) cacheSet(ctx context.Context, view *dto.JobOfferDetailView) {
	if uc.cache == nil {
		return
	}
	b, err := json.Marshal(view)
	if err != nil {
		return
	}
	for _, key := range []string{idCacheKey(view.ID), slugCacheKey(view.Slug)} {
		if _, err := uc.cache.Add(ctx, key, b, uc.cfg.CacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("cache set")
		}
	}
}

// invalidate se llama tras cada mutación de la vacante. Sobrescribe ambas claves con la
// marca durante invalidationHold en lugar de borrarlas.
func (uc *UseCase) invalidate(ctx context.Context, o *entity.JobOffer) {
	if uc.cache == nil {
		return
	}
	for _, key := range []string{idCacheKey(o.ID), slugCacheKey(o.Slug)} {
		if err := uc.cache.Set(ctx, key, invalidatedMarker, invalidationHold); err != nil {
			uc.log.Warn().Err(err).Str("job_offer_id", o.ID).Str("key", key).Msg("cache invalidate")
		}
	}
}
