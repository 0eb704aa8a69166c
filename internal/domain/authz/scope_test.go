package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del resolutor de alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SuperAdmin_AccesoGlobal(t *testing.T) {
	r := authz.NewResolver(newTestGraph())

	scope, err := r.Resolve(context.Background(), identity(authz.RoleSuperAdmin, "sa"), authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeAllowAll, scope.State, "superadmin sin override ve todo")
}

func TestResolve_SuperAdmin_OverrideAcotaLaVista(t *testing.T) {
	r := authz.NewResolver(newTestGraph())
	id := identity(authz.RoleSuperAdmin, "sa")

	id.ActingCompanyID = "c1"
	scope, err := r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeCompanyIn, scope.State)
	assert.Equal(t, []string{"c1"}, scope.CompanyIDs)

	// El override de sucursal es más específico y gana al de empresa.
	id.ActingBranchID = "b1"
	scope, err = r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeBranchIn, scope.State)
	assert.Equal(t, []string{"b1"}, scope.BranchIDs)
}

func TestResolve_ProductOwner_SoloRecursosAdministrativos(t *testing.T) {
	r := authz.NewResolver(newTestGraph())
	id := identity(authz.RoleProductOwner, "po")

	for _, kind := range []authz.ResourceKind{authz.KindCompany, authz.KindUser} {
		scope, err := r.Resolve(context.Background(), id, kind)
		require.NoError(t, err)
		assert.Equal(t, authz.ScopeAllowAll, scope.State, "kind=%s", kind)
	}
	for _, kind := range []authz.ResourceKind{authz.KindBranch, authz.KindShift, authz.KindSale, authz.KindProduct} {
		scope, err := r.Resolve(context.Background(), id, kind)
		require.NoError(t, err)
		assert.Equal(t, authz.ScopeDenyAll, scope.State,
			"product_owner no ve datos operativos, kind=%s", kind)
	}
}

func TestResolve_Admin_EmpresasPropias(t *testing.T) {
	r := authz.NewResolver(newTestGraph())

	scope, err := r.Resolve(context.Background(), identity(authz.RoleAdmin, "a1"), authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeCompanyIn, scope.State)
	assert.Equal(t, []string{"c1"}, scope.CompanyIDs, "a1 solo ve su empresa, no la de a2")
}

func TestResolve_Admin_SinEmpresas_NeedsOnboarding(t *testing.T) {
	r := authz.NewResolver(newTestGraph())

	scope, err := r.Resolve(context.Background(), identity(authz.RoleAdmin, "a3"), authz.KindCompany)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeNeedsOnboarding, scope.State,
		"admin sin empresa queda en onboarding, no en deny")
	assert.True(t, scope.Empty(), "el estado de onboarding no da visibilidad")
}

func TestResolve_Admin_OverrideVerificado(t *testing.T) {
	r := authz.NewResolver(newTestGraph())
	id := identity(authz.RoleAdmin, "a1")

	// Empresa propia: se honra.
	id.ActingCompanyID = "c1"
	scope, err := r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeCompanyIn, scope.State)

	// Empresa ajena: deny, no error.
	id.ActingCompanyID = "c2"
	scope, err = r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeDenyAll, scope.State, "el override sobre empresa ajena no escala privilegios")

	// Sucursal de otra empresa: deny.
	id.ActingCompanyID = ""
	id.ActingBranchID = "b3"
	scope, err = r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeDenyAll, scope.State)

	// Sucursal propia: se honra.
	id.ActingBranchID = "b2"
	scope, err = r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeBranchIn, scope.State)
	assert.Equal(t, []string{"b2"}, scope.BranchIDs)
}

func TestResolve_Manager_SoloSucursalesGestionadas(t *testing.T) {
	r := authz.NewResolver(newTestGraph())

	scope, err := r.Resolve(context.Background(), identity(authz.RoleManager, "m1"), authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeBranchIn, scope.State)
	assert.Equal(t, []string{"b1"}, scope.BranchIDs,
		"el manager no ve b2 aunque pertenezca a la misma empresa")
	assert.False(t, scope.Matches(authz.ResourceTenancy{CompanyID: "c1", BranchID: "b2"}),
		"nunca se ensancha a alcance de empresa")
}

func TestResolve_Manager_SinSucursal_Unassigned(t *testing.T) {
	r := authz.NewResolver(newTestGraph())

	scope, err := r.Resolve(context.Background(), identity(authz.RoleManager, "m9"), authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeUnassigned, scope.State,
		"manager sin sucursal es un estado legítimo, no deny")
}

func TestResolve_Cashier_SucursalPropia(t *testing.T) {
	r := authz.NewResolver(newTestGraph())
	id := identity(authz.RoleCashier, "u1")
	id.BranchID = "b1"

	// Ventas: toda la sucursal, sin condición de asignación.
	scope, err := r.Resolve(context.Background(), id, authz.KindSale)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeBranchIn, scope.State)
	assert.Empty(t, scope.AssignedTo, "las ventas no son autoasignables")

	// Turnos: además debe estar asignado.
	scope, err = r.Resolve(context.Background(), id, authz.KindShift)
	require.NoError(t, err)
	assert.Equal(t, "u1", scope.AssignedTo, "los turnos exigen asignación propia")

	assert.True(t, scope.Matches(authz.ResourceTenancy{
		CompanyID: "c1", BranchID: "b1", AssignedUserIDs: []string{"u1", "u2"},
	}), "turno de su sucursal donde está asignado")
	assert.False(t, scope.Matches(authz.ResourceTenancy{
		CompanyID: "c1", BranchID: "b1", AssignedUserIDs: []string{"u2"},
	}), "turno de su sucursal donde NO está asignado")
}

func TestResolve_Cashier_SinSucursal_Unassigned(t *testing.T) {
	r := authz.NewResolver(newTestGraph())

	scope, err := r.Resolve(context.Background(), identity(authz.RolePharmacist, "u9"), authz.KindShift)
	require.NoError(t, err)
	assert.Equal(t, authz.ScopeUnassigned, scope.State)
}

// Resolver dos veces la misma identidad produce el mismo predicado: la
// resolución es función pura de identidad + grafo.
func TestResolve_Idempotente(t *testing.T) {
	r := authz.NewResolver(newTestGraph())
	id := identity(authz.RoleAdmin, "a1")

	first, err := r.Resolve(context.Background(), id, authz.KindBranch)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), id, authz.KindBranch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScope_Empty(t *testing.T) {
	assert.False(t, authz.AllowAll().Empty())
	assert.False(t, authz.CompanyIn("c1").Empty())
	assert.True(t, authz.CompanyIn().Empty(), "company_in sin empresas no da visibilidad")
	assert.True(t, authz.DenyAll().Empty())
	assert.True(t, authz.NeedsOnboarding().Empty())
	assert.True(t, authz.Unassigned().Empty())
}
