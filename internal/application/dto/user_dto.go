package dto

import "time"

// RegisterRequest entrada para registro público (password en texto, se hashea en use case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=manager producer assembler"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest patch de usuario para managers. Campos nil no se modifican.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Name      *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=manager producer assembler"`
	IsActive  *bool   `json:"is_active,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	LastLogin string    `json:"last_login,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada de login (form-encoded: username = email).
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// TokenResponse salida de login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
