package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
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
// Fakes en memoria (recursos operativos)
// ──────────────────────────────────────────────────────────────────────────────

type fakeBranchRepo struct {
	byID map[string]*entity.Branch
}

func (r *fakeBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	return r.byID[id], nil
}

func (r *fakeBranchRepo) Update(_ context.Context, b *entity.Branch) error {
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) List(_ context.Context, _ repository.ScopeFilter, _, _ int) ([]*entity.Branch, error) {
	return nil, nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.ScopeFilter, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeShiftRepo struct {
	byID map[string]*entity.Shift
}

func (r *fakeShiftRepo) Create(_ context.Context, s *entity.Shift) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	return r.byID[id], nil
}

func (r *fakeShiftRepo) Update(_ context.Context, s *entity.Shift) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeShiftRepo) List(_ context.Context, _ repository.ScopeFilter, _, _ int) ([]*entity.Shift, error) {
	return nil, nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeSaleRepo struct {
	byID map[string]*entity.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return r.byID[id], nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ repository.ScopeFilter, _, _ int) ([]*entity.Sale, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un admin con una empresa sin configurar (c1/b1) y otra ya
// configurada (c2/b2)
// ──────────────────────────────────────────────────────────────────────────────

type operationalFixture struct {
	branches  *fakeBranchRepo
	users     *fakeUserRepo
	shifts    *fakeShiftRepo
	sales     *fakeSaleRepo
	companies *fakeCompanyRepo
	graph     *fakeTenancy
	eval      *authz.Evaluator
	log       *logger.Logger
}

func newOperationalFixture() *operationalFixture {
	farmacia := "farmacia"
	companies := &fakeCompanyRepo{byID: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Farmacia Central", OwnerAdminID: "a1", Status: "active"},
		"c2": {ID: "c2", Name: "Farmacia Norte", OwnerAdminID: "a1", BusinessType: &farmacia, Status: "active"},
	}}
	graph := &fakeTenancy{
		companiesByOwner:  map[string][]string{"a1": {"c1", "c2"}},
		branchesByCompany: map[string][]string{"c1": {"b1"}, "c2": {"b2"}},
		companyByBranch:   map[string]string{"b1": "c1", "b2": "c2"},
	}
	return &operationalFixture{
		branches:  &fakeBranchRepo{byID: map[string]*entity.Branch{}},
		users:     &fakeUserRepo{byID: map[string]*entity.User{}},
		shifts:    &fakeShiftRepo{byID: map[string]*entity.Shift{}},
		sales:     &fakeSaleRepo{byID: map[string]*entity.Sale{}},
		companies: companies,
		graph:     graph,
		eval:      authz.NewEvaluator(authz.NewResolver(graph), graph),
		log:       logger.New(logger.Config{Env: "production", Level: "error"}),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: una empresa sin tipo de negocio queda fuera de la operación normal
// ──────────────────────────────────────────────────────────────────────────────

// Crear una sucursal en una empresa sin configurar se rechaza, aun para su dueño.
func TestBranchCreate_EmpresaSinConfigurar(t *testing.T) {
	f := newOperationalFixture()
	uc := usecase.NewBranchUseCase(f.branches, f.users, f.companies, f.eval, f.log)
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	_, err := uc.Create(context.Background(), id, dto.CreateBranchRequest{CompanyID: "c1", Name: "Sucursal Sur"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompanyNotConfigured)
	assert.Empty(t, f.branches.byID, "no debe persistirse ninguna sucursal")
}

// Con el tipo de negocio definido, el mismo admin sí crea sucursales.
func TestBranchCreate_EmpresaConfigurada(t *testing.T) {
	f := newOperationalFixture()
	uc := usecase.NewBranchUseCase(f.branches, f.users, f.companies, f.eval, f.log)
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	out, err := uc.Create(context.Background(), id, dto.CreateBranchRequest{CompanyID: "c2", Name: "Sucursal Sur"})
	require.NoError(t, err)
	assert.Equal(t, "c2", out.CompanyID)
	assert.NotNil(t, f.branches.byID[out.ID])
}

// Tampoco se contrata personal operativo en sucursales de empresas sin configurar.
func TestUserCreate_EmpresaSinConfigurar(t *testing.T) {
	f := newOperationalFixture()
	uc := usecase.NewUserUseCase(f.users, f.companies, f.graph, f.eval, authz.NewPlanner(f.graph, f.graph), &fakeExecutor{}, f.log)
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	_, err := uc.Create(context.Background(), id, dto.CreateUserRequest{
		Email: "caja@farmacia.co", Password: "secreto123", Name: "Caja 1",
		Role: "cashier", BranchID: "b1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompanyNotConfigured)
	assert.Empty(t, f.users.byID)
}

// Ni abrir turnos en sus sucursales.
func TestShiftCreate_EmpresaSinConfigurar(t *testing.T) {
	f := newOperationalFixture()
	uc := usecase.NewShiftUseCase(f.shifts, f.companies, f.graph, f.eval, f.log)
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	now := time.Now()
	_, err := uc.Create(context.Background(), id, dto.CreateShiftRequest{
		BranchID: "b1", StartsAt: now, EndsAt: now.Add(8 * time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompanyNotConfigured)
	assert.Empty(t, f.shifts.byID)
}

// Ni registrar ventas.
func TestSaleCreate_EmpresaSinConfigurar(t *testing.T) {
	f := newOperationalFixture()
	uc := usecase.NewSaleUseCase(f.sales, f.shifts, f.companies, f.graph, f.eval, f.log)
	id := authz.Identity{UserID: "a1", Role: authz.RoleAdmin}

	_, err := uc.Create(context.Background(), id, dto.CreateSaleRequest{
		BranchID: "b1", Total: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompanyNotConfigured)
	assert.Empty(t, f.sales.byID)
}
