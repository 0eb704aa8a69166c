package entity

import "time"

// Customer representa un cliente registrado en una sucursal.
type Customer struct {
	ID        string
	BranchID  string
	Name      string
	Document  string // documento de identidad
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
