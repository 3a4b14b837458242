package dto

import (
	"time"

	"ventasapi/internal/domain/auth"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Usuario  string `json:"usuario" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Nombre   string `json:"nombre" binding:"max=100"`
	Apellido string `json:"apellido" binding:"max=100"`
	Sucursal string `json:"sucursal" binding:"max=100"`
}

// ToInput converts the request to the domain input.
func (r RegisterRequest) ToInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:  r.Usuario,
		Password:  r.Password,
		FirstName: r.Nombre,
		LastName:  r.Apellido,
		Branch:    r.Sucursal,
	}
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Usuario  string `json:"usuario" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          int64      `json:"id"`
	Usuario     string     `json:"usuario"`
	Nombre      string     `json:"nombre"`
	Apellido    string     `json:"apellido"`
	Rol         string     `json:"rol"`
	Estatus     string     `json:"estatus"`
	Sucursal    string     `json:"sucursal_registro"`
	UltimoLogin *time.Time `json:"ultimo_login"`
	CreadoEn    time.Time  `json:"creado_en"`
}

// FromUser maps a domain user to its response shape.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Usuario:     u.Username,
		Nombre:      u.FirstName,
		Apellido:    u.LastName,
		Rol:         u.Role,
		Estatus:     u.Status,
		Sucursal:    u.Branch,
		UltimoLogin: u.LastLogin,
		CreadoEn:    u.CreatedAt,
	}
}

// FromUsers maps a user list.
func FromUsers(users []auth.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return out
}

// LoginResponse carries the access token and the logged-in account.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UpdateUserRequest is the admin-side partial edit payload.
type UpdateUserRequest struct {
	Nombre   *string `json:"nombre" binding:"omitempty,max=100"`
	Apellido *string `json:"apellido" binding:"omitempty,max=100"`
	Rol      *string `json:"rol" binding:"omitempty,oneof=admin usuario"`
	Estatus  *string `json:"estatus" binding:"omitempty,oneof=pendiente activo bloqueado"`
	Sucursal *string `json:"sucursal_registro" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
}

// ToInput converts the request to the domain input.
func (r UpdateUserRequest) ToInput() auth.UpdateInput {
	return auth.UpdateInput{
		FirstName: r.Nombre,
		LastName:  r.Apellido,
		Role:      r.Rol,
		Status:    r.Estatus,
		Branch:    r.Sucursal,
		Password:  r.Password,
	}
}
