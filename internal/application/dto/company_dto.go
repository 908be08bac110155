package dto

import "time"

// CreateCompanyRequest registro de empresa (password en texto, se hashea en el caso de uso).
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Logo        string `json:"logo" validate:"omitempty,url"`
	Address     string `json:"address" validate:"max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"max=30"`
}

// CompanyResponse salida de una empresa (sin password).
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Logo        string    `json:"logo"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
