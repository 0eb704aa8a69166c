package entity

import "time"

// Branch representa una sucursal/punto de venta de una Company.
// ManagerID, si está presente, debe referenciar un usuario con rol manager;
// a lo sumo un manager por sucursal en este modelo.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	ManagerID *string // nil = sin gerente asignado
	CreatedAt time.Time
	UpdatedAt time.Time
}
