package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa. El admin autenticado
// queda como dueño; BusinessType puede llegar después (empresa incompleta).
type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	BusinessType string `json:"business_type" validate:"omitempty,max=100"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (el dueño no cambia).
type UpdateCompanyRequest struct {
	Name         string `json:"name" validate:"omitempty,min=1,max=200"`
	BusinessType string `json:"business_type" validate:"omitempty,max=100"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OwnerAdminID string    `json:"owner_admin_id"`
	BusinessType string    `json:"business_type,omitempty"`
	Configured   bool      `json:"configured"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items      []CompanyResponse `json:"items"`
	Page       PageResponse      `json:"page"`
	ScopeState string            `json:"scope_state,omitempty"`
}
