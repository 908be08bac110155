package entity

import "time"

// Roles válidos en el token JWT.
const (
	RoleAdmin   = "admin"
	RoleCompany = "company"
)

// Company representa una empresa que publica vacantes. Es también la cuenta que inicia sesión.
type Company struct {
	ID           string
	Name         string
	Logo         string // URL del logo
	Address      string
	Email        string // único, identificador de login
	PasswordHash string // bcrypt hash, nunca se serializa
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// JobOffers lado inverso de la relación; solo se llena cuando se carga explícitamente.
	JobOffers []*JobOffer
}

func (c *Company) hasJobOffer(o *JobOffer) bool {
	for _, existing := range c.JobOffers {
		if sameJobOffer(existing, o) {
			return true
		}
	}
	return false
}
