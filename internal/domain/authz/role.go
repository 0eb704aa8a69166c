package authz

// Role es la enumeración cerrada de roles del sistema, ordenada por privilegio:
// superadmin > product_owner > admin > manager > {cashier, pharmacist}.
// El orden solo importa para la verificación "puede crear cuentas de rol X";
// para todo lo demás los roles son hechos sin orden.
type Role string

const (
	RoleSuperAdmin   Role = "superadmin"
	RoleProductOwner Role = "product_owner"
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleCashier      Role = "cashier"
	RolePharmacist   Role = "pharmacist"
)

// validRoles cierra la enumeración frente a roles que llegan por la red.
var validRoles = map[Role]bool{
	RoleSuperAdmin:   true,
	RoleProductOwner: true,
	RoleAdmin:        true,
	RoleManager:      true,
	RoleCashier:      true,
	RolePharmacist:   true,
}

// creatableRoles tabla de asignación de roles al crear cuentas. Un creador solo
// puede crear roles estrictamente por debajo del suyo, y únicamente superadmin
// puede crear cuentas admin. Manager no crea cuentas en este modelo.
var creatableRoles = map[Role]map[Role]bool{
	RoleSuperAdmin: {
		RoleProductOwner: true,
		RoleAdmin:        true,
		RoleManager:      true,
		RoleCashier:      true,
		RolePharmacist:   true,
	},
	RoleProductOwner: {
		RoleManager:    true,
		RoleCashier:    true,
		RolePharmacist: true,
	},
	RoleAdmin: {
		RoleManager:    true,
		RoleCashier:    true,
		RolePharmacist: true,
	},
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	return validRoles[r]
}

// CanCreate indica si una cuenta de este rol puede crear cuentas del rol target.
// Es una consulta de tabla, no una comparación de strings dispersa.
func (r Role) CanCreate(target Role) bool {
	return creatableRoles[r][target]
}

// RequiresBranch indica si las cuentas de este rol necesitan sucursal asignada.
func (r Role) RequiresBranch() bool {
	switch r {
	case RoleManager, RoleCashier, RolePharmacist:
		return true
	default:
		return false
	}
}
