package entity

import "strings"

// Tag etiqueta libre asociada a vacantes (muchos a muchos).
type Tag struct {
	ID   string
	Name string

	// JobOffers lado inverso de JobOffer.Tags.
	JobOffers []*JobOffer
}

// NormalizeTagName deja el nombre en minúsculas y sin espacios extremos ("  PHP " -> "php").
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddJobOffer registra la vacante en el lado inverso y mantiene la simetría con JobOffer.AddTag.
// Es idempotente.
func (t *Tag) AddJobOffer(o *JobOffer) {
	if o == nil || t.HasJobOffer(o) {
		return
	}
	t.JobOffers = append(t.JobOffers, o)
	o.AddTag(t)
}

// RemoveJobOffer quita la vacante de ambos lados. Es idempotente.
func (t *Tag) RemoveJobOffer(o *JobOffer) {
	if o == nil {
		return
	}
	for i, existing := range t.JobOffers {
		if sameJobOffer(existing, o) {
			t.JobOffers = append(t.JobOffers[:i], t.JobOffers[i+1:]...)
			o.RemoveTag(t)
			return
		}
	}
}

// HasJobOffer informa si la vacante ya está en el lado inverso.
func (t *Tag) HasJobOffer(o *JobOffer) bool {
	for _, existing := range t.JobOffers {
		if sameJobOffer(existing, o) {
			return true
		}
	}
	return false
}

// sameTag compara por ID cuando ambos están persistidos; si no, por identidad.
func sameTag(a, b *Tag) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.ID != "" && a.ID == b.ID
}
