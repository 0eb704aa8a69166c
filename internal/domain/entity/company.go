package entity

import "time"

// Company representa una empresa/tenant del sistema. Cada empresa pertenece a
// exactamente un admin (OwnerAdminID) y agrupa cero o más sucursales.
type Company struct {
	ID           string
	Name         string
	OwnerAdminID string
	BusinessType *string // nil = empresa incompleta, excluida de la operación normal
	Status       string  // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Configured indica si la empresa completó su configuración inicial.
// Una empresa sin tipo de negocio no debe operar hasta configurarse.
func (c *Company) Configured() bool {
	return c.BusinessType != nil && *c.BusinessType != ""
}
