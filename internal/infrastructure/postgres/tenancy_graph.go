package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

var _ authz.TenancyGraph = (*TenancyGraphRepo)(nil)
var _ authz.ResourceIndex = (*TenancyGraphRepo)(nil)

// TenancyGraphRepo implementa el grafo de tenencia del motor de autorización
// con lecturas puras sobre PostgreSQL. No realiza escritura alguna.
type TenancyGraphRepo struct {
	pool *pgxpool.Pool
}

// NewTenancyGraph construye el adaptador de lectura del grafo.
func NewTenancyGraph(pool *pgxpool.Pool) *TenancyGraphRepo {
	return &TenancyGraphRepo{pool: pool}
}

// BranchesOfCompany devuelve los ids de las sucursales de una empresa.
func (r *TenancyGraphRepo) BranchesOfCompany(ctx context.Context, companyID string) ([]string, error) {
	return r.queryIDs(ctx, `SELECT id FROM branches WHERE company_id = $1`, companyID)
}

// CompanyOfBranch devuelve la empresa dueña de una sucursal.
// Retorna domain.ErrNotFound si la sucursal no existe.
func (r *TenancyGraphRepo) CompanyOfBranch(ctx context.Context, branchID string) (string, error) {
	var companyID string
	err := r.pool.QueryRow(ctx, `SELECT company_id FROM branches WHERE id = $1`, branchID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("company of branch: %w", err)
	}
	return companyID, nil
}

// ManagerOfBranch devuelve el gerente de una sucursal ("" si no tiene).
// Retorna domain.ErrNotFound si la sucursal no existe.
func (r *TenancyGraphRepo) ManagerOfBranch(ctx context.Context, branchID string) (string, error) {
	var managerID *string
	err := r.pool.QueryRow(ctx, `SELECT manager_id FROM branches WHERE id = $1`, branchID).Scan(&managerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("manager of branch: %w", err)
	}
	if managerID == nil {
		return "", nil
	}
	return *managerID, nil
}

// BranchesManagedBy devuelve las sucursales gestionadas por un usuario.
func (r *TenancyGraphRepo) BranchesManagedBy(ctx context.Context, userID string) ([]string, error) {
	return r.queryIDs(ctx, `SELECT id FROM branches WHERE manager_id = $1`, userID)
}

// CompaniesOwnedBy devuelve las empresas propiedad de un admin.
func (r *TenancyGraphRepo) CompaniesOwnedBy(ctx context.Context, adminID string) ([]string, error) {
	return r.queryIDs(ctx, `SELECT id FROM companies WHERE owner_admin_id = $1`, adminID)
}

// resourceTables tabla física por tipo de recurso para el índice de cascada.
var resourceTables = map[authz.ResourceKind]string{
	authz.KindUser:     "users",
	authz.KindShift:    "shifts",
	authz.KindSale:     "sales",
	authz.KindProduct:  "products",
	authz.KindBatch:    "batches",
	authz.KindCustomer: "customers",
}

// ResourceIDsOfBranch enumera los ids de recursos de un tipo en una sucursal.
func (r *TenancyGraphRepo) ResourceIDsOfBranch(ctx context.Context, kind authz.ResourceKind, branchID string) ([]string, error) {
	table, ok := resourceTables[kind]
	if !ok {
		return nil, fmt.Errorf("tipo de recurso sin tabla: %s: %w", kind, domain.ErrInvalidInput)
	}
	return r.queryIDs(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE branch_id = $1`, table), branchID)
}

func (r *TenancyGraphRepo) queryIDs(ctx context.Context, query string, arg any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
