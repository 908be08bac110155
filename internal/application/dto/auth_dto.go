package dto

// LoginRequest credenciales. Acepta "username" (formato json_login) o "email".
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// Identifier devuelve el email con el que se intenta el login.
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// LoginResponse token Bearer para las peticiones protegidas.
type LoginResponse struct {
	Token string `json:"token"`
}
