package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la jerarquía de roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRole_Valid(t *testing.T) {
	for _, r := range []authz.Role{
		authz.RoleSuperAdmin, authz.RoleProductOwner, authz.RoleAdmin,
		authz.RoleManager, authz.RoleCashier, authz.RolePharmacist,
	} {
		assert.True(t, r.Valid(), "el rol %s debe ser válido", r)
	}
	assert.False(t, authz.Role("root").Valid(), "un rol desconocido no es válido")
	assert.False(t, authz.Role("").Valid(), "el rol vacío no es válido")
}

// Cashier y pharmacist comparten nivel: ninguno crea cuentas del otro.
func TestRole_CanCreate_CashierYPharmacistCompartenNivel(t *testing.T) {
	assert.False(t, authz.RoleCashier.CanCreate(authz.RolePharmacist))
	assert.False(t, authz.RolePharmacist.CanCreate(authz.RoleCashier))
}

// Matriz completa de asignación de roles al crear cuentas. Solo superadmin
// crea admins; manager y el personal de caja no crean a nadie.
func TestRole_CanCreate_MatrizCompleta(t *testing.T) {
	all := []authz.Role{
		authz.RoleSuperAdmin, authz.RoleProductOwner, authz.RoleAdmin,
		authz.RoleManager, authz.RoleCashier, authz.RolePharmacist,
	}
	allowed := map[authz.Role]map[authz.Role]bool{
		authz.RoleSuperAdmin: {
			authz.RoleProductOwner: true,
			authz.RoleAdmin:        true,
			authz.RoleManager:      true,
			authz.RoleCashier:      true,
			authz.RolePharmacist:   true,
		},
		authz.RoleProductOwner: {
			authz.RoleManager:    true,
			authz.RoleCashier:    true,
			authz.RolePharmacist: true,
		},
		authz.RoleAdmin: {
			authz.RoleManager:    true,
			authz.RoleCashier:    true,
			authz.RolePharmacist: true,
		},
	}
	for _, creator := range all {
		for _, target := range all {
			want := allowed[creator][target]
			assert.Equal(t, want, creator.CanCreate(target),
				"creador=%s objetivo=%s", creator, target)
		}
	}
}

func TestRole_RequiresBranch(t *testing.T) {
	assert.True(t, authz.RoleManager.RequiresBranch())
	assert.True(t, authz.RoleCashier.RequiresBranch())
	assert.True(t, authz.RolePharmacist.RequiresBranch())
	assert.False(t, authz.RoleAdmin.RequiresBranch(), "el admin nace sin sucursal")
	assert.False(t, authz.RoleProductOwner.RequiresBranch())
	assert.False(t, authz.RoleSuperAdmin.RequiresBranch())
}
