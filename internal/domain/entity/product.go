package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de una sucursal.
type Product struct {
	ID        string
	BranchID  string
	SKU       string // código único por sucursal
	Name      string
	Price     decimal.Decimal // precio de venta
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
