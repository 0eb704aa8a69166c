package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada en una sucursal.
type Sale struct {
	ID        string
	BranchID  string
	ShiftID   *string // nil si la venta no se asoció a un turno
	Total     decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
}
