package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FarmaPOS-api/internal/application/dto"
	"github.com/jhoicas/FarmaPOS-api/internal/application/usecase"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
	"github.com/jhoicas/FarmaPOS-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	byID map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.byID[id], nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, f repository.ScopeFilter, _, _ int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.byID {
		if f.All {
			out = append(out, c)
			continue
		}
		for _, id := range f.CompanyIDs {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// fakeTenancy implementa el grafo y el índice de recursos sobre mapas.
type fakeTenancy struct {
	companiesByOwner  map[string][]string
	branchesByCompany map[string][]string
	companyByBranch   map[string]string
	resources         map[string]map[authz.ResourceKind][]string
}

func (g *fakeTenancy) CompaniesOwnedBy(_ context.Context, adminID string) ([]string, error) {
	return g.companiesByOwner[adminID], nil
}

func (g *fakeTenancy) BranchesOfCompany(_ context.Context, companyID string) ([]string, error) {
	return g.branchesByCompany[companyID], nil
}

func (g *fakeTenancy) CompanyOfBranch(_ context.Context, branchID string) (string, error) {
	companyID, ok := g.companyByBranch[branchID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return companyID, nil
}

func (g *fakeTenancy) ManagerOfBranch(_ context.Context, _ string) (string, error) { return "", nil }

func (g *fakeTenancy) BranchesManagedBy(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (g *fakeTenancy) ResourceIDsOfBranch(_ context.Context, kind authz.ResourceKind, branchID string) ([]string, error) {
	return g.resources[branchID][kind], nil
}

// fakeExecutor captura el plan que le llega.
type fakeExecutor struct {
	applied []authz.DeletionStep
}

func (e *fakeExecutor) ApplyDeletionPlan(_ context.Context, steps []authz.DeletionStep) error {
	e.applied = steps
	return nil
}

func newCompanyFixture() (*usecase.CompanyUseCase, *fakeCompanyRepo, *fakeExecutor) {
	repo := &fakeCompanyRepo{byID: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Farmacia Central", OwnerAdminID: "a1", Status: "active"},
		"c2": {ID: "c2", Name: "Farmacia Norte", OwnerAdminID: "a2", Status: "active"},
	}}
	graph := &fakeTenancy{
		companiesByOwner:  map[string][]string{"a1": {"c1"}, "a2": {"c2"}},
		branchesByCompany: map[string][]string{"c1": {"b1"}},
		companyByBranch:   map[string]string{"b1": "c1"},
		resources: map[string]map[authz.ResourceKind][]string{
			"b1": {
				authz.KindSale: {"v1", "v2"},
				authz.KindUser: {"u1"},
			},
		},
	}
	eval := authz.NewEvaluator(authz.NewResolver(graph), graph)
	planner := authz.NewPlanner(graph, graph)
	executor := &fakeExecutor{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return usecase.NewCompanyUseCase(repo, eval, planner, executor, log), repo, executor
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CompanyUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Un admin sin empresa recibe ErrNeedsOnboarding al listar, no lista vacía.
func TestCompanyList_AdminSinEmpresa_Onboarding(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	id := authz.Identity{UserID: "a9", Role: authz.RoleAdmin}

	_, err := uc.List(context.Background(), id, 20, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNeedsOnboarding)
}

// Tras crear su empresa, el mismo admin ya la ve.
func TestCompanyCreate_SaleDelOnboarding(t *testing.T) {
	uc, repo, _ := newCompanyFixture()
	id := authz.Identity{UserID: "a9", Role: authz.RoleAdmin}

	out, err := uc.Create(context.Background(), id, dto.CreateCompanyRequest{Name: "Farmacia Sur"})
	require.NoError(t, err)
	assert.Equal(t, "a9", out.OwnerAdminID, "el creador queda como dueño")
	assert.False(t, out.Configured, "sin tipo de negocio la empresa está incompleta")
	assert.NotNil(t, repo.byID[out.ID])
}

// Solo el rol admin crea empresas.
func TestCompanyCreate_RolNoAutorizado(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	id := authz.Identity{UserID: "m1", Role: authz.RoleManager}

	_, err := uc.Create(context.Background(), id, dto.CreateCompanyRequest{Name: "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un admin no lee la empresa de otro; la denegación llega con razón.
func TestCompanyGetByID_EmpresaAjena(t *testing.T) {
	uc, _, _ := newCompanyFixture()
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	_, err := uc.GetByID(context.Background(), id, "c2")
	require.Error(t, err)
	var denied *authz.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, authz.ReasonOutOfScope, denied.Reason)
}

// Borrar la empresa ejecuta el plan completo hojas-primero en el ejecutor.
func TestCompanyDelete_EjecutaLaCascada(t *testing.T) {
	uc, _, executor := newCompanyFixture()
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	require.NoError(t, uc.Delete(context.Background(), id, "c1"))
	require.NotEmpty(t, executor.applied)

	kinds := make([]authz.ResourceKind, 0, len(executor.applied))
	for _, s := range executor.applied {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []authz.ResourceKind{
		authz.KindSale, authz.KindUser, authz.KindBranch, authz.KindCompany,
	}, kinds, "ventas, usuarios y sucursales caen antes que la empresa")
}

// Borrar una empresa fuera de alcance no llega al ejecutor.
func TestCompanyDelete_FueraDeAlcance(t *testing.T) {
	uc, repo, executor := newCompanyFixture()
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	err := uc.Delete(context.Background(), id, "c2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, executor.applied, "ninguna cascada debe ejecutarse")
	assert.NotNil(t, repo.byID["c2"], "la empresa ajena sigue intacta")
}
