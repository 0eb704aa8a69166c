package dto

import "time"

// CreateUserRequest entrada para crear una cuenta (password en texto, se
// hashea en el use case). El rol y la sucursal pasan por el evaluador de
// políticas antes de persistir.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=superadmin product_owner admin manager cashier pharmacist"`
	BranchID string `json:"branch_id" validate:"omitempty,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	CompanyID string    `json:"company_id,omitempty"`
	BranchID  string    `json:"branch_id,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
	// ScopeState marca estados no-error del predicado: needs_onboarding o
	// unassigned. Vacío en el caso normal.
	ScopeState string `json:"scope_state,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
