package dto

import "time"

// CreateShiftRequest entrada para abrir un turno en una sucursal.
type CreateShiftRequest struct {
	BranchID        string    `json:"branch_id" validate:"required,uuid"`
	AssignedUserIDs []string  `json:"assigned_user_ids" validate:"omitempty,dive,uuid"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

// UpdateShiftRequest entrada para reasignar personal o cerrar un turno.
type UpdateShiftRequest struct {
	AssignedUserIDs []string `json:"assigned_user_ids" validate:"omitempty,dive,uuid"`
	Status          string   `json:"status" validate:"omitempty,oneof=scheduled open closed"`
}

// ShiftResponse salida de un turno.
type ShiftResponse struct {
	ID              string    `json:"id"`
	BranchID        string    `json:"branch_id"`
	AssignedUserIDs []string  `json:"assigned_user_ids"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ShiftListResponse listado paginado de turnos. Para cajeros y
// farmacéuticos el listado sólo incluye turnos donde están asignados.
type ShiftListResponse struct {
	Items      []ShiftResponse `json:"items"`
	Page       PageResponse    `json:"page"`
	ScopeState string          `json:"scope_state,omitempty"`
}
