package entity

import (
	"time"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un principal del sistema. El rol y las coordenadas de
// tenencia (empresa, sucursal) alimentan el motor de autorización; CreatedBy
// conserva quién aprovisionó la cuenta para la visibilidad por propiedad.
type User struct {
	ID           string
	Role         authz.Role
	CompanyID    string // vacío para superadmin / product_owner
	BranchID     string // vacío para admin; obligatorio para manager/cashier/pharmacist
	CreatedBy    string // id del usuario que creó esta cuenta
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active indica si la cuenta puede iniciar sesión.
func (u *User) Active() bool {
	return u.Status == UserStatusActive
}
