package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

var testNow = time.Date(2019, 1, 1, 10, 0, 0, 0, time.UTC)

func newCompany() *entity.Company {
	return &entity.Company{ID: "c-1", Name: "Dunder Mifflin"}
}

func newOffer(t *testing.T) *entity.JobOffer {
	t.Helper()
	o := entity.NewJobOfferFromSubmission(entity.JobOfferSubmission{
		Title:          "Site Reliability Engineering Manager",
		Description:    "You will support engineers developing services and infrastructure.",
		SeniorityLevel: "Senior",
		MinimumSalary:  4000,
		MaximumSalary:  4500,
		AllowRemote:    true,
	}, newCompany(), testNow)
	o.ID = "o-1"
	return o
}

func tagIDs(tags []*entity.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación desde el formulario
// ──────────────────────────────────────────────────────────────────────────────

func TestNewJobOfferFromSubmission_CopiaCamposYFuerzaEstado(t *testing.T) {
	company := newCompany()
	o := entity.NewJobOfferFromSubmission(entity.JobOfferSubmission{
		Title:          "Database Reliability Engineer",
		Description:    "DRE team",
		SeniorityLevel: "Mid-Senior",
		MinimumSalary:  3000,
		MaximumSalary:  3200,
		AllowRemote:    true,
	}, company, testNow)

	assert.Equal(t, entity.JobOfferStatusPendingReview, o.Status, "toda vacante nueva inicia en PENDING_REVIEW")
	assert.Equal(t, entity.HiringTypeCLT, o.HiringType)
	assert.Equal(t, "Database Reliability Engineer", o.Title)
	assert.Equal(t, "Mid-Senior", o.SeniorityLevel)
	assert.Equal(t, 3000, o.MinimumSalary)
	assert.Equal(t, 3200, o.MaximumSalary)
	assert.True(t, o.AllowRemote)
	assert.Nil(t, o.PublishedAt)
	assert.Equal(t, testNow, o.CreatedAt)
	assert.Equal(t, testNow, o.UpdatedAt)
	assert.Empty(t, o.Slug, "el slug lo asigna el servicio al persistir")

	assert.Equal(t, company.ID, o.CompanyID)
	assert.Same(t, company, o.Company)
	require.Len(t, company.JobOffers, 1, "la empresa registra la vacante en su lado inverso")
	assert.Same(t, o, company.JobOffers[0])
}

func TestNewJobOfferFromSubmission_SinEmpresa(t *testing.T) {
	o := entity.NewJobOfferFromSubmission(entity.JobOfferSubmission{Title: "x"}, nil, testNow)
	assert.Empty(t, o.CompanyID)
	assert.Nil(t, o.Company)
	assert.Zero(t, o.MinimumSalary)
	assert.Zero(t, o.MaximumSalary)
}

func TestNewJobOfferFromSubmission_SalarioMaximoMenorSePermite(t *testing.T) {
	o := entity.NewJobOfferFromSubmission(entity.JobOfferSubmission{
		Title: "x", MinimumSalary: 5000, MaximumSalary: 1000,
	}, nil, testNow)
	assert.Equal(t, 5000, o.MinimumSalary)
	assert.Equal(t, 1000, o.MaximumSalary)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tags: relación bidireccional
// ──────────────────────────────────────────────────────────────────────────────

func TestAddTag_ActualizaAmbosLados(t *testing.T) {
	o := newOffer(t)
	php := &entity.Tag{ID: "t-php", Name: "php"}

	assert.True(t, o.AddTag(php))
	assert.True(t, o.HasTag(php))
	assert.True(t, php.HasJobOffer(o))
	assert.Len(t, o.Tags, 1)
	assert.Len(t, php.JobOffers, 1)
}

func TestAddTag_Idempotente(t *testing.T) {
	o := newOffer(t)
	php := &entity.Tag{ID: "t-php", Name: "php"}

	o.AddTag(php)
	assert.False(t, o.AddTag(php), "agregar dos veces es no-op")
	assert.False(t, o.AddTag(&entity.Tag{ID: "t-php", Name: "php"}), "misma etiqueta cargada en otra instancia")
	assert.Equal(t, []string{"t-php"}, tagIDs(o.Tags))
	assert.Len(t, php.JobOffers, 1)
}

func TestAddRemoveTag_RestauraConjuntoOriginal(t *testing.T) {
	o := newOffer(t)
	golang := &entity.Tag{ID: "t-go", Name: "go"}
	o.AddTag(golang)
	before := tagIDs(o.Tags)

	php := &entity.Tag{ID: "t-php", Name: "php"}
	o.AddTag(php)
	assert.True(t, o.RemoveTag(php))

	assert.Equal(t, before, tagIDs(o.Tags))
	assert.Empty(t, php.JobOffers, "no debe quedar enlace colgando en el lado inverso")
	assert.True(t, golang.HasJobOffer(o))
}

func TestRemoveTag_Idempotente(t *testing.T) {
	o := newOffer(t)
	php := &entity.Tag{ID: "t-php", Name: "php"}

	assert.False(t, o.RemoveTag(php), "quitar una etiqueta ausente es no-op")
	o.AddTag(php)
	assert.True(t, o.RemoveTag(php))
	assert.False(t, o.RemoveTag(php))
	assert.Empty(t, o.Tags)
}

func TestTagAddJobOffer_EsSimetrico(t *testing.T) {
	o := newOffer(t)
	php := &entity.Tag{ID: "t-php", Name: "php"}

	php.AddJobOffer(o)
	assert.True(t, o.HasTag(php))

	php.RemoveJobOffer(o)
	assert.False(t, o.HasTag(php))
	assert.Empty(t, php.JobOffers)
}

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "php", entity.NormalizeTagName("  PHP "))
}

// ──────────────────────────────────────────────────────────────────────────────
// Moderación
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DesdePendiente(t *testing.T) {
	o := newOffer(t)
	require.NoError(t, o.Approve())
	assert.Equal(t, entity.JobOfferStatusApproved, o.Status)
	assert.Nil(t, o.PublishedAt, "la entidad no fija publishedAt")
}

func TestApprove_DosVecesEsTransicionInvalida(t *testing.T) {
	o := newOffer(t)
	require.NoError(t, o.Approve())
	err := o.Approve()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, entity.JobOfferStatusPendingReview.CanTransitionTo(entity.JobOfferStatusApproved))
	assert.False(t, entity.JobOfferStatusApproved.CanTransitionTo(entity.JobOfferStatusPendingReview), "no hay transición de regreso")
	assert.False(t, entity.JobOfferStatusApproved.CanTransitionTo(entity.JobOfferStatusApproved))
	assert.False(t, entity.JobOfferStatusPendingReview.CanTransitionTo(entity.JobOfferStatusPendingReview))
}

func TestParseJobOfferStatus(t *testing.T) {
	st, err := entity.ParseJobOfferStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, entity.JobOfferStatusApproved, st)

	_, err = entity.ParseJobOfferStatus("REJECTED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseHiringType(t *testing.T) {
	ht, err := entity.ParseHiringType("PJ")
	require.NoError(t, err)
	assert.Equal(t, entity.HiringTypePJ, ht)

	_, err = entity.ParseHiringType("CLTX")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTouch(t *testing.T) {
	o := newOffer(t)
	later := testNow.Add(time.Hour)
	o.Touch(later)
	assert.Equal(t, later, o.UpdatedAt)
	assert.Equal(t, testNow, o.CreatedAt, "createdAt no cambia")
}
