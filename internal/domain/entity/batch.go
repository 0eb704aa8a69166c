package entity

import "time"

// Batch representa un lote de producto con fecha de vencimiento (farmacia).
type Batch struct {
	ID        string
	BranchID  string
	ProductID string
	Code      string
	Quantity  int
	ExpiresAt time.Time
	CreatedAt time.Time
}
