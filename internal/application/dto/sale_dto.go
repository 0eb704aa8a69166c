package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta en una sucursal.
type CreateSaleRequest struct {
	BranchID string          `json:"branch_id" validate:"required,uuid"`
	ShiftID  string          `json:"shift_id" validate:"omitempty,uuid"`
	Total    decimal.Decimal `json:"total" validate:"required"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	BranchID  string          `json:"branch_id"`
	ShiftID   string          `json:"shift_id,omitempty"`
	Total     decimal.Decimal `json:"total"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Page       PageResponse   `json:"page"`
	ScopeState string         `json:"scope_state,omitempty"`
}
