package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/shopspring/decimal"
)

// JobOfferStatus estado de moderación de la vacante.
//
//	PENDING_REVIEW ──► APPROVED
//
// APPROVED es terminal; no existe transición de regreso.
type JobOfferStatus string

const (
	JobOfferStatusPendingReview JobOfferStatus = "PENDING_REVIEW"
	JobOfferStatusApproved      JobOfferStatus = "APPROVED"
)

var jobOfferTransitions = map[JobOfferStatus][]JobOfferStatus{
	JobOfferStatusPendingReview: {JobOfferStatusApproved},
}

// ParseJobOfferStatus convierte un string en JobOfferStatus; error si es desconocido.
func ParseJobOfferStatus(s string) (JobOfferStatus, error) {
	st := JobOfferStatus(s)
	switch st {
	case JobOfferStatusPendingReview, JobOfferStatusApproved:
		return st, nil
	}
	return "", fmt.Errorf("%w: estado de vacante desconocido %q", domain.ErrInvalidInput, s)
}

// CanTransitionTo informa si el paso from -> next está permitido.
func (s JobOfferStatus) CanTransitionTo(next JobOfferStatus) bool {
	for _, allowed := range jobOfferTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HiringType forma de contratación (mercado brasileño).
type HiringType string

const (
	HiringTypeCLT HiringType = "CLT" // nómina
	HiringTypePJ  HiringType = "PJ"  // contratista (persona jurídica)
)

// ParseHiringType valida el tipo de contratación.
func ParseHiringType(s string) (HiringType, error) {
	ht := HiringType(s)
	switch ht {
	case HiringTypeCLT, HiringTypePJ:
		return ht, nil
	}
	return "", fmt.Errorf("%w: tipo de contratación desconocido %q", domain.ErrInvalidInput, s)
}

// Límites de columna en job_offers.
const (
	JobOfferTitleMaxLen          = 50
	JobOfferSlugMaxLen           = 100
	JobOfferSeniorityLevelMaxLen = 10
)

// JobOffer raíz del agregado de vacantes.
// Slug se asigna una sola vez al crear y nunca se recalcula.
type JobOffer struct {
	ID             string
	Slug           string
	Title          string
	Description    string
	CompanyID      string   // vacío si la vacante aún no está vinculada a una empresa
	Company        *Company // cargada por el repositorio cuando existe
	SeniorityLevel string
	MinimumSalary  int
	MaximumSalary  int
	Status         JobOfferStatus
	HiringType     HiringType
	AllowRemote    bool
	Tags           []*Tag
	PublishedAt    *time.Time // lo fija la moderación, no la entidad
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JobOfferSubmission datos enviados por una empresa al publicar una vacante.
type JobOfferSubmission struct {
	Title          string
	Description    string
	SeniorityLevel string
	MinimumSalary  int
	MaximumSalary  int
	AllowRemote    bool
}

// NewJobOfferFromSubmission construye la vacante a partir del formulario.
// Siempre inicia en PENDING_REVIEW con contratación CLT, sin importar lo enviado.
func NewJobOfferFromSubmission(sub JobOfferSubmission, company *Company, now time.Time) *JobOffer {
	o := &JobOffer{
		Title:          sub.Title,
		Description:    sub.Description,
		SeniorityLevel: sub.SeniorityLevel,
		MinimumSalary:  sub.MinimumSalary,
		MaximumSalary:  sub.MaximumSalary,
		AllowRemote:    sub.AllowRemote,
		Status:         JobOfferStatusPendingReview,
		HiringType:     HiringTypeCLT,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	o.SetCompany(company)
	return o
}

// SetCompany vincula la empresa y registra la vacante en su colección inversa.
func (o *JobOffer) SetCompany(c *Company) {
	o.Company = c
	if c == nil {
		o.CompanyID = ""
		return
	}
	o.CompanyID = c.ID
	if !c.hasJobOffer(o) {
		c.JobOffers = append(c.JobOffers, o)
	}
}

// AddTag agrega la etiqueta y registra la vacante en el lado inverso.
// Devuelve false si ya estaba (no-op).
func (o *JobOffer) AddTag(t *Tag) bool {
	if t == nil || o.HasTag(t) {
		return false
	}
	o.Tags = append(o.Tags, t)
	t.AddJobOffer(o)
	return true
}

// RemoveTag quita la etiqueta de ambos lados. Devuelve false si no estaba.
func (o *JobOffer) RemoveTag(t *Tag) bool {
	if t == nil {
		return false
	}
	for i, existing := range o.Tags {
		if sameTag(existing, t) {
			o.Tags = append(o.Tags[:i], o.Tags[i+1:]...)
			t.RemoveJobOffer(o)
			return true
		}
	}
	return false
}

// HasTag informa si la etiqueta ya está asociada.
func (o *JobOffer) HasTag(t *Tag) bool {
	for _, existing := range o.Tags {
		if sameTag(existing, t) {
			return true
		}
	}
	return false
}

// Approve aplica la transición PENDING_REVIEW -> APPROVED.
// PublishedAt no se toca aquí: lo decide quien modera.
func (o *JobOffer) Approve() error {
	if !o.Status.CanTransitionTo(JobOfferStatusApproved) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, JobOfferStatusApproved)
	}
	o.Status = JobOfferStatusApproved
	return nil
}

// Touch refresca UpdatedAt; se llama en cada mutación.
func (o *JobOffer) Touch(now time.Time) {
	o.UpdatedAt = now
}

// JobOfferStats agregados por estado para el panel de moderación.
type JobOfferStats struct {
	Status               JobOfferStatus
	Total                int
	AverageMinimumSalary decimal.Decimal
	AverageMaximumSalary decimal.Decimal
}

func sameJobOffer(a, b *JobOffer) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.ID != "" && a.ID == b.ID
}
