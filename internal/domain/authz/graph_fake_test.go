package authz_test

import (
	"context"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Grafo de tenencia en memoria para los tests del motor
// ──────────────────────────────────────────────────────────────────────────────

// fakeGraph implementa TenancyGraph y ResourceIndex sobre mapas. Los ids
// inexistentes producen domain.ErrNotFound, igual que el adaptador real.
type fakeGraph struct {
	companiesByOwner  map[string][]string
	branchesByCompany map[string][]string
	companyByBranch   map[string]string
	managerByBranch   map[string]string
	branchesByManager map[string][]string
	// resources: branchID -> kind -> ids (incluye KindUser para usuarios de sucursal)
	resources map[string]map[authz.ResourceKind][]string
}

func (g *fakeGraph) CompaniesOwnedBy(_ context.Context, adminID string) ([]string, error) {
	return g.companiesByOwner[adminID], nil
}

func (g *fakeGraph) BranchesOfCompany(_ context.Context, companyID string) ([]string, error) {
	branches, ok := g.branchesByCompany[companyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return branches, nil
}

func (g *fakeGraph) CompanyOfBranch(_ context.Context, branchID string) (string, error) {
	companyID, ok := g.companyByBranch[branchID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return companyID, nil
}

func (g *fakeGraph) ManagerOfBranch(_ context.Context, branchID string) (string, error) {
	return g.managerByBranch[branchID], nil
}

func (g *fakeGraph) BranchesManagedBy(_ context.Context, userID string) ([]string, error) {
	return g.branchesByManager[userID], nil
}

func (g *fakeGraph) ResourceIDsOfBranch(_ context.Context, kind authz.ResourceKind, branchID string) ([]string, error) {
	return g.resources[branchID][kind], nil
}

// newTestGraph arma el escenario compartido por los tests:
//
//	admin a1 ─ c1 ─ b1 (manager m1, cajero u1), b2
//	admin a2 ─ c2 ─ b3
//	admin a3 ─ (sin empresas: onboarding pendiente)
func newTestGraph() *fakeGraph {
	return &fakeGraph{
		companiesByOwner: map[string][]string{
			"a1": {"c1"},
			"a2": {"c2"},
		},
		branchesByCompany: map[string][]string{
			"c1": {"b1", "b2"},
			"c2": {"b3"},
		},
		companyByBranch: map[string]string{
			"b1": "c1",
			"b2": "c1",
			"b3": "c2",
		},
		managerByBranch: map[string]string{
			"b1": "m1",
		},
		branchesByManager: map[string][]string{
			"m1": {"b1"},
		},
		resources: map[string]map[authz.ResourceKind][]string{
			"b1": {
				authz.KindSale:    {"v1", "v2", "v3"},
				authz.KindShift:   {"s1", "s2"},
				authz.KindProduct: {"p1"},
				authz.KindUser:    {"m1", "u1"},
			},
			"b2": {
				authz.KindSale: {"v4"},
				authz.KindUser: {"u2"},
			},
			"b3": {
				authz.KindCustomer: {"cl1"},
				authz.KindUser:     {"u3"},
			},
		},
	}
}

func identity(role authz.Role, userID string) authz.Identity {
	return authz.Identity{UserID: userID, Role: role}
}
