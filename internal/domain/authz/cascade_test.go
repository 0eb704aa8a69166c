package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del planificador de borrado en cascada
// ──────────────────────────────────────────────────────────────────────────────

func newTestPlanner() *authz.Planner {
	graph := newTestGraph()
	return authz.NewPlanner(graph, graph)
}

// Borrar al admin a1 arrastra su empresa c1, las sucursales b1 y b2, y todo
// lo que cuelga de ellas, en orden hojas-primero y con el propio admin al
// final.
func TestPlanAdminDeletion_OrdenHojasPrimero(t *testing.T) {
	p := newTestPlanner()

	steps, err := p.PlanDeletion(context.Background(), authz.KindUser, "a1")
	require.NoError(t, err)

	kinds := make([]authz.ResourceKind, 0, len(steps))
	for _, s := range steps {
		kinds = append(kinds, s.Kind)
	}
	// Lotes y clientes no existen bajo c1: sus pasos se omiten. Hay dos pasos
	// de usuarios: primero el personal de sucursal, al final el admin raíz.
	assert.Equal(t, []authz.ResourceKind{
		authz.KindSale,
		authz.KindShift,
		authz.KindProduct,
		authz.KindUser,
		authz.KindBranch,
		authz.KindCompany,
		authz.KindUser,
	}, kinds)

	assert.ElementsMatch(t, []string{"v1", "v2", "v3", "v4"}, steps[0].IDs, "ventas de b1 y b2")
	assert.ElementsMatch(t, []string{"s1", "s2"}, steps[1].IDs)
	assert.ElementsMatch(t, []string{"m1", "u1", "u2"}, steps[3].IDs,
		"el personal de sucursal se borra antes que las sucursales")
	assert.ElementsMatch(t, []string{"b1", "b2"}, steps[4].IDs)
	assert.Equal(t, []string{"c1"}, steps[5].IDs)
	assert.Equal(t, []string{"a1"}, steps[len(steps)-1].IDs, "el admin raíz cierra el plan")
}

// Borrar solo la empresa conserva al admin dueño.
func TestPlanCompanyDeletion_NoTocaAlAdmin(t *testing.T) {
	p := newTestPlanner()

	steps, err := p.PlanDeletion(context.Background(), authz.KindCompany, "c1")
	require.NoError(t, err)

	for _, s := range steps {
		assert.NotContains(t, s.IDs, "a1", "el dueño no forma parte de la cascada de su empresa")
	}
	last := steps[len(steps)-1]
	assert.Equal(t, authz.KindCompany, last.Kind, "la empresa es el último paso")
	assert.Equal(t, []string{"c1"}, last.IDs)
}

// Un admin sin empresas produce un plan de un solo paso: su propio registro.
func TestPlanAdminDeletion_SinEmpresas(t *testing.T) {
	p := newTestPlanner()

	steps, err := p.PlanAdminDeletion(context.Background(), "a3")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, authz.KindUser, steps[0].Kind)
	assert.Equal(t, []string{"a3"}, steps[0].IDs)
}

// El plan nunca incluye pasos vacíos.
func TestPlanCompanyDeletion_OmitePasosVacios(t *testing.T) {
	p := newTestPlanner()

	steps, err := p.PlanDeletion(context.Background(), authz.KindCompany, "c2")
	require.NoError(t, err)
	for _, s := range steps {
		assert.NotEmpty(t, s.IDs, "paso %s sin ids no debe emitirse", s.Kind)
	}
	kinds := make([]authz.ResourceKind, 0, len(steps))
	for _, s := range steps {
		kinds = append(kinds, s.Kind)
	}
	// c2 solo tiene clientes y un usuario bajo b3.
	assert.Equal(t, []authz.ResourceKind{
		authz.KindCustomer, authz.KindUser, authz.KindBranch, authz.KindCompany,
	}, kinds)
}

// Las sucursales no son raíces de cascada.
func TestPlanDeletion_RaizNoSoportada(t *testing.T) {
	p := newTestPlanner()

	_, err := p.PlanDeletion(context.Background(), authz.KindBranch, "b1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
