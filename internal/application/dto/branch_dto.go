package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Address   string `json:"address" validate:"omitempty,max=300"`
}

// UpdateBranchRequest entrada para actualizar una sucursal, incluida la
// reasignación de gerente (manager_id vacío = quitar gerente).
type UpdateBranchRequest struct {
	Name      string  `json:"name" validate:"omitempty,min=1,max=200"`
	Address   string  `json:"address" validate:"omitempty,max=300"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	ManagerID string    `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchListResponse listado paginado de sucursales.
type BranchListResponse struct {
	Items      []BranchResponse `json:"items"`
	Page       PageResponse     `json:"page"`
	ScopeState string           `json:"scope_state,omitempty"`
}
