package joboffer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/testutil/memstore"
)

var testNow = time.Date(2019, 1, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memstore.Store
	repo    *interleavingRepo
	cache   *memstore.Cache
	pdf     *fakePDF
	uc      *joboffer.UseCase
	company *entity.Company
	clock   time.Time
}

type fakePDF struct {
	gotURL   string
	gotTitle string
}

func (f *fakePDF) GenerateJobOfferPDF(_ context.Context, v *dto.JobOfferDetailView, url string) ([]byte, error) {
	f.gotURL = url
	f.gotTitle = v.Title
	return []byte("%PDF-1.4"), nil
}

// interleavingRepo ejecuta una sola vez una operación concurrente justo después de leer
// la vacante o justo antes de escribirla.
type interleavingRepo struct {
	*memstore.JobOfferRepo
	afterGet     func()
	beforeUpdate func()
}

func (r *interleavingRepo) GetByID(ctx context.Context, id string) (*entity.JobOffer, error) {
	o, err := r.JobOfferRepo.GetByID(ctx, id)
	if hook := r.afterGet; hook != nil {
		r.afterGet = nil
		hook()
	}
	return o, err
}

func (r *interleavingRepo) Update(ctx context.Context, o *entity.JobOffer) error {
	if hook := r.beforeUpdate; hook != nil {
		r.beforeUpdate = nil
		hook()
	}
	return r.JobOfferRepo.Update(ctx, o)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), cache: memstore.NewCache(), pdf: &fakePDF{}, clock: testNow}
	f.repo = &interleavingRepo{JobOfferRepo: f.store.Offers()}
	f.uc = joboffer.NewUseCase(joboffer.Deps{
		Offers:    f.repo,
		Companies: f.store.Companies(),
		Tags:      f.store.Tags(),
		Tx:        f.store.TxRunner(),
		Cache:     f.cache,
		PDF:       f.pdf,
		Config:    joboffer.Config{CacheTTL: time.Minute, PublicBaseURL: "https://jobs.example.com"},
	})
	f.uc.SetClock(func() time.Time { return f.clock })

	f.company = &entity.Company{ID: "c-1", Name: "Dunder Mifflin", Email: "rh@dundermifflin.com", Logo: "https://example.com/dm.png"}
	require.NoError(t, f.store.Companies().Create(context.Background(), f.company))
	return f
}

func (f *fixture) post(t *testing.T, title string) *dto.JobOfferAdminView {
	t.Helper()
	v, err := f.uc.Create(context.Background(), f.company.ID, dto.PostJobOfferRequest{
		Title:          title,
		Description:    "You will support engineers developing services and infrastructure.",
		SeniorityLevel: "Senior",
		MinimumSalary:  4000,
		MaximumSalary:  4500,
		AllowRemote:    true,
	})
	require.NoError(t, err)
	f.clock = f.clock.Add(time.Minute)
	return v
}

// cachedTitle título de la vista guardada en la clave; "" si no hay vista (vacía o marcada).
func (f *fixture) cachedTitle(key string) string {
	b, ok := f.cache.Value(key)
	if !ok {
		return ""
	}
	var v dto.JobOfferDetailView
	if err := json.Unmarshal(b, &v); err != nil {
		return ""
	}
	return v.Title
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPendienteConSlug(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Site Reliability Engineering Manager")

	assert.Equal(t, "PENDING_REVIEW", v.Status)
	assert.Equal(t, "CLT", v.HiringType)
	assert.Equal(t, "site-reliability-engineering-manager", v.Slug)
	assert.Nil(t, v.PublishedAt)
	require.NotNil(t, v.Company)
	assert.Equal(t, "Dunder Mifflin", v.Company.Name)
	assert.Equal(t, testNow, v.CreatedAt)
}

func TestCreate_SlugRepetidoRecibeSufijo(t *testing.T) {
	f := newFixture(t)
	a := f.post(t, "PHP Developer")
	b := f.post(t, "PHP Developer")
	c := f.post(t, "php developer!")

	assert.Equal(t, "php-developer", a.Slug)
	assert.Equal(t, "php-developer-1", b.Slug)
	assert.Equal(t, "php-developer-2", c.Slug)
}

func TestCreate_ReintentaSiOtraPeticionGanoElSlug(t *testing.T) {
	f := newFixture(t)
	f.store.DuplicateOnCreate = 2

	v := f.post(t, "Go Developer")
	assert.Equal(t, "go-developer", v.Slug)
}

func TestCreate_AgotaReintentos(t *testing.T) {
	f := newFixture(t)
	f.store.DuplicateOnCreate = 10

	_, err := f.uc.Create(context.Background(), f.company.ID, dto.PostJobOfferRequest{Title: "Go Developer"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_EmpresaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), "no-existe", dto.PostJobOfferRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compuerta de visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestGetApproved_PendienteNoEsVisible(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	ctx := context.Background()

	_, err := f.uc.GetApprovedByID(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.GetApprovedBySlug(ctx, v.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.GetApprovedByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound, "inexistente y pendiente son indistinguibles")
}

func TestGetApproved_TrasAprobar(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	ctx := context.Background()

	approved, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)
	require.NotNil(t, approved.PublishedAt)

	byID, err := f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", byID.Title)
	assert.Equal(t, v.Description, byID.Description)

	bySlug, err := f.uc.GetApprovedBySlug(ctx, v.Slug)
	require.NoError(t, err)
	assert.Equal(t, v.ID, bySlug.ID)
}

func TestGetApproved_PublishedAtNoFormaParteDeLaCompuerta(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	ctx := context.Background()
	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)

	future := testNow.Add(365 * 24 * time.Hour)
	_, err = f.uc.Update(ctx, v.ID, dto.UpdateJobOfferRequest{PublishedAt: &future})
	require.NoError(t, err)

	_, err = f.uc.GetApprovedByID(ctx, v.ID)
	assert.NoError(t, err)
}

func TestListApproved_SoloAprobadasOrdenadas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.post(t, "First")
	f.post(t, "Pending")
	second := f.post(t, "Second")

	_, err := f.uc.Approve(ctx, first.ID)
	require.NoError(t, err)
	f.clock = f.clock.Add(time.Hour)
	_, err = f.uc.Approve(ctx, second.ID)
	require.NoError(t, err)

	list, err := f.uc.ListApproved(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID, "publicada más recientemente primero")
	assert.Equal(t, first.ID, list.Items[1].ID)
}

func TestListApprovedByCompanyYTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "PHP Developer")
	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	withTag, err := f.uc.AttachTag(ctx, v.ID, "PHP")
	require.NoError(t, err)
	require.Len(t, withTag.Tags, 1)

	byCompany, err := f.uc.ListApprovedByCompany(ctx, f.company.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, byCompany.Items, 1)

	byTag, err := f.uc.ListApprovedByTag(ctx, withTag.Tags[0].ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, byTag.Items, 1)

	_, err = f.uc.ListApprovedByCompany(ctx, "no-existe", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.ListApprovedByTag(ctx, "no-existe", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Moderación
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DosVecesEsConflicto(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	ctx := context.Background()

	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApprove_ConservaPublishedAtExistente(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	ctx := context.Background()
	earlier := testNow.Add(-48 * time.Hour)
	_, err := f.uc.Update(ctx, v.ID, dto.UpdateJobOfferRequest{PublishedAt: &earlier})
	require.NoError(t, err)

	approved, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.PublishedAt)
	assert.True(t, earlier.Equal(*approved.PublishedAt))
}

func TestApprove_ConcurrenteSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")
	f.repo.afterGet = func() {
		_, err := f.uc.Approve(ctx, v.ID)
		require.NoError(t, err)
	}

	_, err := f.uc.Approve(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "la segunda leyó PENDING_REVIEW pero ya no lo estaba")
}

func TestUpdate_NoRevierteAprobacionConcurrente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")
	f.repo.beforeUpdate = func() {
		_, err := f.uc.Approve(ctx, v.ID)
		require.NoError(t, err)
	}

	title := "Backend Engineer II"
	edited, err := f.uc.Update(ctx, v.ID, dto.UpdateJobOfferRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", edited.Status, "la vista lleva el estado almacenado")
	assert.NotNil(t, edited.PublishedAt)

	stored, err := f.uc.GetForAdmin(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", stored.Status)
	assert.Equal(t, title, stored.Title)
	require.NotNil(t, stored.PublishedAt)

	public, err := f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, title, public.Title)
}

func TestAttachTag_NoTocaEstadoNiPublishedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")
	approved, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)

	f.clock = f.clock.Add(time.Hour)
	tagged, err := f.uc.AttachTag(ctx, v.ID, "go")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", tagged.Status)
	assert.Equal(t, f.clock, tagged.UpdatedAt)

	stored, err := f.uc.GetForAdmin(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", stored.Status)
	require.NotNil(t, stored.PublishedAt)
	assert.True(t, approved.PublishedAt.Equal(*stored.PublishedAt))
	assert.Equal(t, f.clock, stored.UpdatedAt)
}

func TestApprove_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Approve(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SlugEstableAlCambiarTitulo(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	title := "Staff Backend Engineer"

	updated, err := f.uc.Update(context.Background(), v.ID, dto.UpdateJobOfferRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, v.Slug, updated.Slug)
	assert.Equal(t, "PENDING_REVIEW", updated.Status, "update no cambia el estado")
	assert.True(t, updated.UpdatedAt.After(v.UpdatedAt))
}

func TestUpdate_TipoDeContratacionInvalido(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "Backend Engineer")
	bad := "FREELA"
	_, err := f.uc.Update(context.Background(), v.ID, dto.UpdateJobOfferRequest{HiringType: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListForAdmin_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.post(t, "A")
	f.post(t, "B")
	_, err := f.uc.Approve(ctx, a.ID)
	require.NoError(t, err)

	all, err := f.uc.ListForAdmin(ctx, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	pending, err := f.uc.ListForAdmin(ctx, "PENDING_REVIEW", 20, 0)
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "B", pending.Items[0].Title)

	_, err = f.uc.ListForAdmin(ctx, "REJECTED", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.post(t, "A")
	f.post(t, "B")
	_, err := f.uc.Approve(ctx, a.ID)
	require.NoError(t, err)

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.Items, 2)
	for _, s := range stats.Items {
		assert.Equal(t, 1, s.Total)
		assert.Equal(t, "4000", s.AverageMinimumSalary.String())
		assert.Equal(t, "4500", s.AverageMaximumSalary.String())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiquetas
// ──────────────────────────────────────────────────────────────────────────────

func TestAttachDetachTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "PHP Developer")

	attached, err := f.uc.AttachTag(ctx, v.ID, "  PHP ")
	require.NoError(t, err)
	require.Len(t, attached.Tags, 1)
	assert.Equal(t, "php", attached.Tags[0].Name)

	again, err := f.uc.AttachTag(ctx, v.ID, "php")
	require.NoError(t, err)
	assert.Len(t, again.Tags, 1, "asociar dos veces es no-op")

	detached, err := f.uc.DetachTag(ctx, v.ID, attached.Tags[0].ID)
	require.NoError(t, err)
	assert.Empty(t, detached.Tags)

	reloaded, err := f.uc.GetForAdmin(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tags)
}

func TestAttachTag_NombreVacio(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "PHP Developer")
	_, err := f.uc.AttachTag(context.Background(), v.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDetachTag_EtiquetaInexistente(t *testing.T) {
	f := newFixture(t)
	v := f.post(t, "PHP Developer")
	_, err := f.uc.DetachTag(context.Background(), v.ID, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestCache_LecturaYInvalidacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")
	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	idKey, slugKey := "joboffer:id:"+v.ID, "joboffer:slug:"+v.Slug
	_, marked := f.cache.Value(idKey)
	assert.True(t, marked, "la aprobación marca ambas claves")
	assert.Empty(t, f.cachedTitle(idKey))
	f.cache.Expire(idKey, slugKey)

	_, err = f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", f.cachedTitle(idKey))
	assert.Equal(t, "Backend Engineer", f.cachedTitle(slugKey))

	_, err = f.uc.GetApprovedBySlug(ctx, v.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Hits)

	title := "Principal Backend Engineer"
	_, err = f.uc.Update(ctx, v.ID, dto.UpdateJobOfferRequest{Title: &title})
	require.NoError(t, err)
	assert.Empty(t, f.cachedTitle(idKey))
	assert.Empty(t, f.cachedTitle(slugKey))

	fresh, err := f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, title, fresh.Title)
	assert.Empty(t, f.cachedTitle(idKey), "mientras dura la marca no se vuelve a cachear")

	f.cache.Expire(idKey, slugKey)
	_, err = f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, title, f.cachedTitle(idKey))
}

func TestCache_LectorLentoNoGuardaVistaVieja(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")
	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	idKey, slugKey := "joboffer:id:"+v.ID, "joboffer:slug:"+v.Slug
	f.cache.Expire(idKey, slugKey)

	title := "Backend Engineer II"
	f.repo.afterGet = func() {
		_, err := f.uc.Update(ctx, v.ID, dto.UpdateJobOfferRequest{Title: &title})
		require.NoError(t, err)
	}
	stale, err := f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", stale.Title, "el lector cargó antes de la edición")
	assert.Empty(t, f.cachedTitle(idKey), "la vista vieja no debe quedar en caché")
	assert.Empty(t, f.cachedTitle(slugKey))

	got, err := f.uc.GetApprovedBySlug(ctx, v.Slug)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
}

func TestCache_FallasNoRompenPeticiones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.cache.Err = errors.New("redis caído")
	v := f.post(t, "Backend Engineer")

	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	_, err = f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	_, err = f.uc.GetApprovedBySlug(ctx, v.Slug)
	require.NoError(t, err)

	title := "Staff Backend Engineer"
	updated, err := f.uc.Update(ctx, v.ID, dto.UpdateJobOfferRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	_, err = f.uc.AttachTag(ctx, v.ID, "go")
	require.NoError(t, err)

	got, err := f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	require.Len(t, got.Tags, 1)
}

func TestCache_EntradaCorruptaSeIgnora(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")
	_, err := f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	idKey := "joboffer:id:" + v.ID
	f.cache.Expire(idKey)
	f.cache.Put(idKey, []byte("{no-es-json"))

	got, err := f.uc.GetApprovedByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
}

func TestRenderPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.post(t, "Backend Engineer")

	_, _, err := f.uc.RenderPDF(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "solo vacantes publicadas")

	_, err = f.uc.Approve(ctx, v.ID)
	require.NoError(t, err)
	b, view, err := f.uc.RenderPDF(ctx, v.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Equal(t, v.Slug, view.Slug)
	assert.Equal(t, "https://jobs.example.com/api/job-offers/slug/backend-engineer", f.pdf.gotURL)
	assert.Equal(t, "Backend Engineer", f.pdf.gotTitle)
}
