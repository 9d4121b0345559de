package dto

import "time"

// RegisterRequest entrada para registro. Identity es alias de Email.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Identity string `json:"identity,omitempty" validate:"-"`
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login. Identity es alias de Email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Identity string `json:"identity,omitempty" validate:"-"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token JWT.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // segundos
	User        UserResponse `json:"user"`
}

// MeResponse claims del token del llamador.
type MeResponse struct {
	UserID    string    `json:"user_id"`
	Identity  string    `json:"identity"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
